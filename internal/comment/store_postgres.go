// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
)

const resourceComment = "Comment"

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectComment = fmt.Sprintf(`
	SELECT c.%s, c.%s, c.%s, c.%s, u.%s, c.%s, c.%s
	FROM %s c
	JOIN %s u ON u.%s = c.%s
`,
	schema.Comment.ID, schema.Comment.Content, schema.Comment.BlogID, schema.Comment.AuthorID,
	schema.User.Name, schema.Comment.CreatedAt, schema.Comment.UpdatedAt,
	schema.Comment.Table, schema.User.Table, schema.User.ID, schema.Comment.AuthorID,
)

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(&comment.ID, &comment.Content, &comment.BlogID, &comment.AuthorID,
		&comment.AuthorName, &comment.CreatedAt, &comment.UpdatedAt)
	return comment, err
}

func (repository *PostgresRepository) ListByBlog(context context.Context, blogID int64, limit, offset int) ([]*Comment, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.Comment.Table, schema.Comment.BlogID)
	if err := repository.db.QueryRow(context, countQuery, blogID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}

	query := selectComment + fmt.Sprintf(` WHERE c.%s = $1 ORDER BY c.%s ASC, c.%s ASC LIMIT $2 OFFSET $3`,
		schema.Comment.BlogID, schema.Comment.CreatedAt, schema.Comment.ID,
	)
	rows, err := repository.db.Query(context, query, blogID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceComment)
		}
		comments = append(comments, comment)
	}

	return comments, total, dberr.Wrap(rows.Err(), resourceComment)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Comment, error) {
	query := selectComment + fmt.Sprintf(` WHERE c.%s = $1`, schema.Comment.ID)

	comment, err := scanComment(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s
	`,
		schema.Comment.Table, schema.Comment.Content, schema.Comment.BlogID, schema.Comment.AuthorID,
		schema.Comment.ID, schema.Comment.CreatedAt, schema.Comment.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, comment.Content, comment.BlogID, comment.AuthorID).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	return dberr.Wrap(err, resourceComment)
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Comment.Table, schema.Comment.Content, schema.Comment.UpdatedAt,
		schema.Comment.ID, schema.Comment.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	return dberr.Wrap(err, resourceComment)
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Comment.Table, schema.Comment.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceComment)
	}
	return nil
}
