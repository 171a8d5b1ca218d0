// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import "time"

// User is a registered account. A user is the owner of its own record.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnerID implements policy.Owned.
func (user *User) OwnerID() int64 { return user.ID }

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateInput holds the optional fields of a profile update.
type UpdateInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// Session is returned by a successful login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}

// Field names for validation
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldUserID   = "userId"
)

// Validation limits
const (
	MaxNameLength     = 100
	MinPasswordLength = 8

	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)
