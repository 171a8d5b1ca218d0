// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/users"
	"github.com/taibuivan/inkpost/pkg/pointer"
)

const testSecret = "users-test-secret"

type fixture struct {
	repo        *memoryRepository
	revocations *memoryRevocations
	tokens      *sec.TokenService
	service     *users.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	repo := newMemoryRepository()
	revocations := newMemoryRevocations()
	logger := slog.New(slog.DiscardHandler)
	service := users.NewService(repo, revocations, tokens, sec.NewPasswordHasher(bcrypt.MinCost), logger)

	return &fixture{repo: repo, revocations: revocations, tokens: tokens, service: service}
}

func (f *fixture) register(t *testing.T, name, email string) *users.User {
	t.Helper()
	user, err := f.service.Register(context.Background(), users.RegisterInput{
		Name: name, Email: email, Password: "correct horse",
	})
	require.NoError(t, err)
	return user
}

/*
TestRegister verifies validation, normalisation and duplicate detection.
*/
func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, users.RegisterInput{
		Name: "  Ada  ", Email: " Ada@Example.COM ", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	_, err = f.service.Register(ctx, users.RegisterInput{Name: "Other", Email: "ada@example.com", Password: "correct horse"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	tests := []struct {
		name  string
		input users.RegisterInput
		field string
	}{
		{"missing_name", users.RegisterInput{Email: "x@example.com", Password: "correct horse"}, users.FieldName},
		{"bad_email", users.RegisterInput{Name: "X", Email: "nope", Password: "correct horse"}, users.FieldEmail},
		{"short_password", users.RegisterInput{Name: "X", Email: "x@example.com", Password: "short"}, users.FieldPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Register(ctx, tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			require.NotEmpty(t, appErr.Details)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

/*
TestLogin verifies the issued token resolves to the user and bad credentials are rejected uniformly.
*/
func TestLogin(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "Ada", "ada@example.com")
	ctx := context.Background()

	session, err := f.service.Login(ctx, "ADA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, int64(3600), session.ExpiresIn)
	assert.Equal(t, user.ID, session.User.ID)

	identity, err := f.tokens.Verify(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sec.Identity{SubjectID: user.ID, Email: "ada@example.com"}, identity)

	_, err = f.service.Login(ctx, "ada@example.com", "wrong password")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = f.service.Login(ctx, "ghost@example.com", "correct horse")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, "Invalid email or password", err.Error())
}

/*
TestLogout verifies the token hash is revoked for the token lifetime.
*/
func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ada", "ada@example.com")
	ctx := context.Background()

	session, err := f.service.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, sec.Identity{SubjectID: session.User.ID}, session.AccessToken))

	revoked, err := f.revocations.IsRevoked(ctx, sec.HashToken(session.AccessToken))
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, time.Hour, f.revocations.revoked[sec.HashToken(session.AccessToken)])
}

/*
TestUpdate verifies owners can update themselves and others cannot.
*/
func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ada := f.register(t, "Ada", "ada@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	ctx := context.Background()
	actor := sec.Identity{SubjectID: ada.ID, Email: ada.Email}

	t.Run("owner_name", func(t *testing.T) {
		updated, err := f.service.Update(ctx, actor, ada.ID, users.UpdateInput{Name: pointer.To("Ada L.")})
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", updated.Name)
	})

	t.Run("owner_password", func(t *testing.T) {
		_, err := f.service.Update(ctx, actor, ada.ID, users.UpdateInput{Password: pointer.To("new password!")})
		require.NoError(t, err)

		_, err = f.service.Login(ctx, ada.Email, "new password!")
		assert.NoError(t, err)
	})

	t.Run("stranger", func(t *testing.T) {
		_, err := f.service.Update(ctx, actor, bob.ID, users.UpdateInput{Name: pointer.To("Hacked")})
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

		stored, _ := f.repo.FindByID(ctx, bob.ID)
		assert.Equal(t, "Bob", stored.Name)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.service.Update(ctx, actor, 999, users.UpdateInput{Name: pointer.To("X")})
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("blank_name", func(t *testing.T) {
		_, err := f.service.Update(ctx, actor, ada.ID, users.UpdateInput{Name: pointer.To("   ")})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})
}

/*
TestDelete verifies only the owner may delete an account.
*/
func TestDelete(t *testing.T) {
	f := newFixture(t)
	ada := f.register(t, "Ada", "ada@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	ctx := context.Background()

	_, err := f.service.Delete(ctx, sec.Identity{SubjectID: bob.ID}, ada.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	deleted, err := f.service.Delete(ctx, sec.Identity{SubjectID: ada.ID}, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, deleted.ID)

	_, err = f.service.Get(ctx, ada.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
