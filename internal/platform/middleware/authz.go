// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/ctxutil"
	"github.com/taibuivan/inkpost/internal/platform/respond"
	"github.com/taibuivan/inkpost/internal/platform/sec"
)

// TokenVerifier turns a raw bearer token into a verified [sec.Identity].
//
// Errors must be [apperr.AppError] values of kind INVALID_TOKEN, EXPIRED_TOKEN
// or MALFORMED_PAYLOAD; they are written to the client unchanged.
type TokenVerifier interface {
	Verify(token string) (sec.Identity, error)
}

// RevocationChecker reports whether a token was revoked before it expired (logout).
// The token is identified by [sec.HashToken].
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

// BearerToken extracts the token from an 'Authorization: Bearer <token>' header.
//
// The header is split on whitespace and must have exactly two parts, the first
// being the Bearer scheme. Anything else is a MISSING_CREDENTIAL error.
func BearerToken(request *http.Request) (string, error) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if strings.TrimSpace(header) == "" {
		return "", apperr.MissingCredential("Authorization header is required")
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) {
		return "", apperr.MissingCredential("Authorization header must be 'Bearer <token>'")
	}

	return parts[1], nil
}

// Authenticate is the guard for protected routes.
//
// # Flow
//  1. Extract the bearer token, or reject with MISSING_CREDENTIAL.
//  2. Verify it via [TokenVerifier], or reject with the verifier's error.
//  3. Reject revoked tokens with INVALID_TOKEN (when revocations is non-nil).
//  4. Bind the [sec.Identity] into the request context.
//
// The next handler is never invoked unless all steps succeed.
func Authenticate(verifier TokenVerifier, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity, err := resolve(request, verifier, revocations)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request.WithContext(bind(request.Context(), identity)))
		})
	}
}

// Identify is the optional guard for public read routes.
//
// A valid token binds the identity exactly like [Authenticate]; a missing or
// unusable token lets the request continue anonymously.
func Identify(verifier TokenVerifier, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Header.Get(constants.HeaderAuthorization) == "" {
				next.ServeHTTP(writer, request)
				return
			}

			identity, err := resolve(request, verifier, revocations)
			if err != nil {
				if appErr := apperr.As(err); appErr == nil || appErr.HTTPStatus >= http.StatusInternalServerError {
					respond.Error(writer, request, err)
					return
				}
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "optional_auth_ignored",
					slog.String("reason", err.Error()),
				)
				next.ServeHTTP(writer, request)
				return
			}

			next.ServeHTTP(writer, request.WithContext(bind(request.Context(), identity)))
		})
	}
}

func resolve(request *http.Request, verifier TokenVerifier, revocations RevocationChecker) (sec.Identity, error) {
	token, err := BearerToken(request)
	if err != nil {
		return sec.Identity{}, err
	}

	identity, err := verifier.Verify(token)
	if err != nil {
		return sec.Identity{}, err
	}

	if revocations != nil {
		revoked, err := revocations.IsRevoked(request.Context(), sec.HashToken(token))
		if err != nil {
			return sec.Identity{}, apperr.Internal(err)
		}
		if revoked {
			return sec.Identity{}, apperr.InvalidToken("Token has been revoked")
		}
	}

	return identity, nil
}

// bind attaches the identity to the context, the request logger and the active span.
func bind(ctx context.Context, identity sec.Identity) context.Context {
	ctx = ctxutil.WithIdentity(ctx, identity)

	logger := ctxutil.GetLogger(ctx).With(slog.Int64("user_id", identity.SubjectID))
	ctx = ctxutil.WithLogger(ctx, logger)

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("enduser.id", identity.SubjectID))

	return ctx
}
