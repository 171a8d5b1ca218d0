// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package users implements account registration, login, logout and profile management.

Architecture:

  - Service: business rules (validation, password hashing, token issuance).
  - Repository: PostgreSQL persistence for accounts.
  - RevocationStore: Redis deny-list consulted by the auth guard.

Profile mutations are restricted to the account owner through the ownership policy.
*/
package users

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/policy"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/validate"
	"github.com/taibuivan/inkpost/pkg/pointer"
)

// # Contracts

// TokenIssuer signs access tokens. Satisfied by [*sec.TokenService].
type TokenIssuer interface {
	Issue(subjectID int64, email string) (string, error)
	TTL() time.Duration
}

// PasswordHasher hashes and checks passwords. Satisfied by [*sec.PasswordHasher].
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// Service implements the user use cases.
type Service struct {
	repo        Repository
	revocations RevocationStore
	tokens      TokenIssuer
	hasher      PasswordHasher
	logger      *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, revocations RevocationStore, tokens TokenIssuer, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		revocations: revocations,
		tokens:      tokens,
		hasher:      hasher,
		logger:      logger,
	}
}

// # Queries

// List returns a page of users and the total count.
func (service *Service) List(context context.Context, limit, offset int) ([]*User, int, error) {
	return service.repo.List(context, limit, offset)
}

// Get returns a single user.
func (service *Service) Get(context context.Context, id int64) (*User, error) {
	return service.repo.FindByID(context, id)
}

// # Authentication

// Register creates a new account. A duplicate email is a CONFLICT.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxNameLength)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validatePassword(validator, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Friendly conflict before hitting the unique index
	if _, err := service.repo.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	hash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{Name: input.Name, Email: input.Email, PasswordHash: hash}
	if err := service.repo.Create(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, err
	}

	service.logger.Info("user_registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Login checks credentials and issues an access token.
//
// Unknown emails and wrong passwords produce the same UNAUTHORIZED error.
func (service *Service) Login(context context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	invalid := apperr.Unauthorized("Invalid email or password")

	user, err := service.repo.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if !service.hasher.Check(password, user.PasswordHash) {
		service.logger.Warn("login_failed", slog.Int64("user_id", user.ID))
		return nil, invalid
	}

	token, err := service.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("user_logged_in", slog.Int64("user_id", user.ID))
	return &Session{
		AccessToken: token,
		TokenType:   constants.TokenType,
		ExpiresIn:   int64(service.tokens.TTL().Seconds()),
		User:        user,
	}, nil
}

// Logout revokes the presented access token for the rest of its lifetime.
func (service *Service) Logout(context context.Context, actor sec.Identity, token string) error {
	if err := service.revocations.Revoke(context, sec.HashToken(token), service.tokens.TTL()); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("user_logged_out", slog.Int64("user_id", actor.SubjectID))
	return nil
}

// # Profile Management

// Update changes the name and/or password of the actor's own account.
func (service *Service) Update(context context.Context, actor sec.Identity, id int64, input UpdateInput) (*User, error) {
	user, err := policy.LoadOwned(context, actor, id, service.repo.FindByID, "update this user")
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
		validator.Required(FieldName, trimmed).MaxLen(FieldName, trimmed, MaxNameLength)
	}
	if input.Password != nil {
		validatePassword(validator, *input.Password)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	pointer.Assign(&user.Name, input.Name)
	if input.Password != nil {
		hash, err := service.hasher.Hash(*input.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		user.PasswordHash = hash
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.Int64("user_id", user.ID))
	return user, nil
}

// Delete removes the actor's own account and returns it.
func (service *Service) Delete(context context.Context, actor sec.Identity, id int64) (*User, error) {
	user, err := policy.LoadOwned(context, actor, id, service.repo.FindByID, "delete this user")
	if err != nil {
		return nil, err
	}

	if err := service.repo.Delete(context, user.ID); err != nil {
		return nil, err
	}

	service.logger.Warn("user_deleted", slog.Int64("user_id", user.ID))
	return user, nil
}

// # Helpers

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(validator *validate.Validator, password string) {
	validator.Required(FieldPassword, password).
		MinLen(FieldPassword, password, MinPasswordLength).
		Custom(FieldPassword, len(password) > MaxPasswordLength, "Must be at most 72 bytes")
}
