// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/ctxutil"
)

// # Client Address

// ProxyPolicy lists the reverse proxies whose forwarding headers are believed.
//
// A nil or empty policy trusts nobody, so the socket address is always used.
type ProxyPolicy struct {
	trusted []netip.Prefix
}

// NewProxyPolicy parses a list of IPs and CIDRs ("10.0.0.0/8", "192.0.2.10").
func NewProxyPolicy(entries []string) (*ProxyPolicy, error) {
	policy := &ProxyPolicy{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("middleware: invalid trusted proxy %q: %w", entry, err)
			}
			policy.trusted = append(policy.trusted, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("middleware: invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		policy.trusted = append(policy.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return policy, nil
}

func (policy *ProxyPolicy) trusts(raw string) bool {
	if policy == nil {
		return false
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range policy.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve returns the client address of a request.
//
// Forwarding headers are only read when the socket peer is a trusted proxy.
// X-Forwarded-For is walked from the right, skipping trusted hops, so a client
// cannot choose its own address by prepending entries.
func (policy *ProxyPolicy) Resolve(request *http.Request) string {
	peer := socketHost(request)
	if !policy.trusts(peer) {
		return peer
	}

	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); isIP(ip) {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if !isIP(hop) {
				break
			}
			if !policy.trusts(hop) {
				return hop
			}
		}
	}

	return peer
}

// ClientIP resolves the client address once and stores it in the request context
// for [StructuredLogger] and [RateLimit].
func ClientIP(policy *ProxyPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := ctxutil.WithClientIP(request.Context(), policy.Resolve(request))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RealIP returns the address resolved by [ClientIP], or the socket address when
// the resolver did not run.
func RealIP(request *http.Request) string {
	if ip, ok := ctxutil.GetClientIP(request.Context()); ok {
		return ip
	}
	return socketHost(request)
}

func socketHost(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

func isIP(raw string) bool {
	_, err := netip.ParseAddr(raw)
	return err == nil
}
