// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns shared by every Postgres repository.
package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    string
	UpdatedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	Name:         "name",
	Email:        "email",
	PasswordHash: "password_hash",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.PasswordHash, t.CreatedAt, t.UpdatedAt}
}
