// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces declared by the consumers.
package sec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/constants"
)

// Claims carry millisecond timestamps so exp lands on now+ttl instead of being
// cut down to the whole second.
func init() {
	jwt.TimePrecision = time.Millisecond
}

// Identity is the verified caller attached to a request.
//
// It lives for exactly one request and is never persisted.
type Identity struct {
	SubjectID int64  `json:"sub"`
	Email     string `json:"email"`
}

// AuthClaims represents the payload embedded inside an access token.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
}

// TokenService issues and verifies HS256 access tokens with a shared secret.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a [TokenService].
type Option func(*TokenService)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, ttl time.Duration, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("sec: token ttl must not be negative, got %s", ttl)
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: constants.AuthIssuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// TTL reports the lifetime given to newly issued tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue signs a token for the given subject using the configured TTL.
func (service *TokenService) Issue(subjectID int64, email string) (string, error) {
	return service.issue(subjectID, email, service.ttl)
}

func (service *TokenService) issue(subjectID int64, email string, ttl time.Duration) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(ttl)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, expiry and payload of a token string.
//
// Signature problems yield INVALID_TOKEN, an elapsed expiry yields EXPIRED_TOKEN,
// and a missing or mistyped subject/email yields MALFORMED_PAYLOAD.
func (service *TokenService) Verify(tokenString string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
		jwt.WithJSONNumber(),
	)

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return service.secret, nil
	})
	if err != nil {
		return Identity{}, classify(err)
	}

	return identityFrom(claims)
}

// classify maps jwt parser errors onto the token error taxonomy.
//
// The parser checks the signature before the registered claims, so a token
// signed with another secret is INVALID_TOKEN even when it has also expired.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperr.ExpiredToken("Token has expired").WithCause(err)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return apperr.MalformedPayload("Invalid token payload").WithCause(err)
	default:
		return apperr.InvalidToken("Invalid token").WithCause(err)
	}
}

// identityFrom extracts the subject and email claims.
//
// The subject is accepted as a decimal string or as a JSON number.
func identityFrom(claims jwt.MapClaims) (Identity, error) {
	subjectID, ok := subjectFrom(claims["sub"])
	if !ok {
		return Identity{}, apperr.MalformedPayload("Invalid token payload")
	}

	email, _ := claims["email"].(string)
	if strings.TrimSpace(email) == "" {
		return Identity{}, apperr.MalformedPayload("Invalid token payload")
	}

	return Identity{SubjectID: subjectID, Email: email}, nil
}

func subjectFrom(value any) (int64, bool) {
	var (
		id  int64
		err error
	)

	switch typed := value.(type) {
	case string:
		id, err = strconv.ParseInt(typed, 10, 64)
	case json.Number:
		id, err = typed.Int64()
	default:
		return 0, false
	}

	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// # Stateless helpers

// Issue signs a token for subjectID/email with secret, expiring ttl from now.
func Issue(subjectID int64, email, secret string, ttl time.Duration) (string, error) {
	service, err := NewTokenService(secret, ttl)
	if err != nil {
		return "", err
	}
	return service.Issue(subjectID, email)
}

// Verify checks token against secret and returns the embedded [Identity].
func Verify(token, secret string) (Identity, error) {
	service, err := NewTokenService(secret, 0)
	if err != nil {
		return Identity{}, err
	}
	return service.Verify(token)
}

// HashToken returns the hex SHA-256 digest of a token, used as a storage key.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
