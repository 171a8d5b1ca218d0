// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into a meaningful [apperr.AppError].
//
// resource names the record the query targeted ("Blog", "Comment") and is used
// in NOT_FOUND messages. Internal details never reach the client.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(fmt.Sprintf("%s already exists", resource)).WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound(referenced(pgErr.ConstraintName, resource)).WithCause(err)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.StringDataRightTruncationDataException:
			return apperr.ValidationError(fmt.Sprintf("Invalid %s data", resource)).WithCause(err)
		}
	}

	return apperr.Internal(err)
}

// referenced guesses the missing parent of a foreign-key violation from its constraint name.
func referenced(constraint, fallback string) string {
	switch constraint {
	case "fk_blogs_author", "fk_comments_author", "fk_reactions_user":
		return "User"
	case "fk_comments_blog", "fk_reactions_blog":
		return "Blog"
	}
	return fallback
}
