// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
)

const resourceUser = "User"

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectUser = fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s`,
	schema.User.ID, schema.User.Name, schema.User.Email, schema.User.PasswordHash,
	schema.User.CreatedAt, schema.User.UpdatedAt, schema.User.Table,
)

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.User.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceUser)
	}

	query := selectUser + fmt.Sprintf(` ORDER BY %s ASC LIMIT $1 OFFSET $2`, schema.User.ID)
	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceUser)
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceUser)
		}
		users = append(users, user)
	}

	return users, total, dberr.Wrap(rows.Err(), resourceUser)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := selectUser + fmt.Sprintf(` WHERE %s = $1`, schema.User.ID)

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := selectUser + fmt.Sprintf(` WHERE %s = $1`, schema.User.Email)

	user, err := scanUser(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s
	`,
		schema.User.Table, schema.User.Name, schema.User.Email, schema.User.PasswordHash,
		schema.User.ID, schema.User.CreatedAt, schema.User.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, resourceUser)
}

func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.User.Table, schema.User.Name, schema.User.PasswordHash, schema.User.UpdatedAt,
		schema.User.ID, schema.User.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, user.ID, user.Name, user.PasswordHash).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, resourceUser)
}

// Delete removes the account. Blogs, comments and reactions cascade in the schema.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.User.Table, schema.User.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}
