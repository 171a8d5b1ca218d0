// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"time"
)

// Repository persists user accounts.
//
// Lookups of a missing user return an apperr NOT_FOUND error.
type Repository interface {
	List(context context.Context, limit, offset int) ([]*User, int, error)
	FindByID(context context.Context, id int64) (*User, error)
	FindByEmail(context context.Context, email string) (*User, error)
	Create(context context.Context, user *User) error
	Update(context context.Context, user *User) error
	Delete(context context.Context, id int64) error
}

// RevocationStore is the deny-list of access tokens revoked before expiry.
// Tokens are identified by their SHA-256 hash, never stored in clear.
type RevocationStore interface {
	Revoke(context context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(context context.Context, tokenHash string) (bool, error)
}
