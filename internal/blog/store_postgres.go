// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
)

const resourceBlog = "Blog"

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Queries

var (
	blogColumns = fmt.Sprintf(`b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s`,
		schema.Blog.ID, schema.Blog.Title, schema.Blog.Slug, schema.Blog.Content,
		schema.Blog.BlogImage, schema.Blog.AuthorID, schema.Blog.CreatedAt, schema.Blog.UpdatedAt,
	)

	// selectSummary joins the author and counts reactions and comments per blog.
	selectSummary = fmt.Sprintf(`
		SELECT %[1]s, u.%[2]s,
			(SELECT count(*) FROM %[3]s r WHERE r.%[4]s = b.id AND r.%[5]s = 'like'),
			(SELECT count(*) FROM %[3]s r WHERE r.%[4]s = b.id AND r.%[5]s = 'dislike'),
			(SELECT count(*) FROM %[6]s c WHERE c.%[7]s = b.id)
		FROM %[8]s b
		JOIN %[9]s u ON u.%[10]s = b.%[11]s
	`,
		blogColumns, schema.User.Name,
		schema.Reaction.Table, schema.Reaction.BlogID, schema.Reaction.Kind,
		schema.Comment.Table, schema.Comment.BlogID,
		schema.Blog.Table, schema.User.Table, schema.User.ID, schema.Blog.AuthorID,
	)

	selectReactors = fmt.Sprintf(`
		SELECT u.%s, u.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		WHERE r.%s = $1 AND r.%s = $2
		ORDER BY r.%s ASC
	`,
		schema.User.ID, schema.User.Name,
		schema.Reaction.Table, schema.User.Table, schema.User.ID, schema.Reaction.UserID,
		schema.Reaction.BlogID, schema.Reaction.Kind, schema.Reaction.CreatedAt,
	)

	selectComments = fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s ASC, c.%s ASC
	`,
		schema.Comment.ID, schema.Comment.Content, schema.Comment.AuthorID, schema.User.Name, schema.Comment.CreatedAt,
		schema.Comment.Table, schema.User.Table, schema.User.ID, schema.Comment.AuthorID,
		schema.Comment.BlogID, schema.Comment.CreatedAt, schema.Comment.ID,
	)
)

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner, blog *Blog, extra ...any) error {
	dest := append([]any{
		&blog.ID, &blog.Title, &blog.Slug, &blog.Content,
		&blog.BlogImage, &blog.AuthorID, &blog.CreatedAt, &blog.UpdatedAt,
	}, extra...)
	return row.Scan(dest...)
}

func scanSummary(row scanner) (*Summary, error) {
	summary := &Summary{}
	err := scanBlog(row, &summary.Blog,
		&summary.Author.Name, &summary.LikesCount, &summary.DislikesCount, &summary.CommentsCount,
	)
	summary.Author.ID = summary.AuthorID
	return summary, err
}

// # Reads

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Summary, int, error) {
	where := ""
	args := []any{}

	if filter.Title != "" {
		where = fmt.Sprintf(` WHERE b.%s = $1`, schema.Blog.Title)
		args = append(args, filter.Title)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s b`, schema.Blog.Table) + where
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceBlog)
	}

	query := selectSummary + where + fmt.Sprintf(` ORDER BY b.%s DESC, b.%s DESC LIMIT $%d OFFSET $%d`,
		schema.Blog.CreatedAt, schema.Blog.ID, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceBlog)
	}
	defer rows.Close()

	blogs := make([]*Summary, 0, limit)
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceBlog)
		}
		blogs = append(blogs, summary)
	}

	return blogs, total, dberr.Wrap(rows.Err(), resourceBlog)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s b WHERE b.%s = $1`, blogColumns, schema.Blog.Table, schema.Blog.ID)

	blog := &Blog{}
	if err := scanBlog(repository.db.QueryRow(context, query, id), blog); err != nil {
		return nil, dberr.Wrap(err, resourceBlog)
	}
	return blog, nil
}

// Detail loads the summary, then likers, dislikers and comments in one round trip.
func (repository *PostgresRepository) Detail(context context.Context, id int64) (*Detail, error) {
	query := selectSummary + fmt.Sprintf(` WHERE b.%s = $1`, schema.Blog.ID)

	summary, err := scanSummary(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBlog)
	}

	detail := &Detail{
		Summary:   *summary,
		Likers:    []Author{},
		Dislikers: []Author{},
		Comments:  []CommentView{},
	}

	batch := &pgx.Batch{}
	batch.Queue(selectReactors, id, "like").Query(func(rows pgx.Rows) error {
		return collectAuthors(rows, &detail.Likers)
	})
	batch.Queue(selectReactors, id, "dislike").Query(func(rows pgx.Rows) error {
		return collectAuthors(rows, &detail.Dislikers)
	})
	batch.Queue(selectComments, id).Query(func(rows pgx.Rows) error {
		for rows.Next() {
			var comment CommentView
			if err := rows.Scan(&comment.ID, &comment.Content, &comment.Author.ID, &comment.Author.Name, &comment.CreatedAt); err != nil {
				return err
			}
			detail.Comments = append(detail.Comments, comment)
		}
		return rows.Err()
	})

	if err := repository.db.SendBatch(context, batch).Close(); err != nil {
		return nil, dberr.Wrap(err, resourceBlog)
	}

	return detail, nil
}

func collectAuthors(rows pgx.Rows, into *[]Author) error {
	for rows.Next() {
		var author Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return err
		}
		*into = append(*into, author)
	}
	return rows.Err()
}

// # Writes

func (repository *PostgresRepository) Create(context context.Context, blog *Blog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s
	`,
		schema.Blog.Table, schema.Blog.Title, schema.Blog.Slug, schema.Blog.Content, schema.Blog.BlogImage, schema.Blog.AuthorID,
		schema.Blog.ID, schema.Blog.CreatedAt, schema.Blog.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, blog.Title, blog.Slug, blog.Content, blog.BlogImage, blog.AuthorID).
		Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	return dberr.Wrap(err, resourceBlog)
}

// Update writes the mutable fields. The author is never changed.
func (repository *PostgresRepository) Update(context context.Context, blog *Blog) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Blog.Table, schema.Blog.Title, schema.Blog.Slug, schema.Blog.Content, schema.Blog.BlogImage, schema.Blog.UpdatedAt,
		schema.Blog.ID, schema.Blog.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, blog.ID, blog.Title, blog.Slug, blog.Content, blog.BlogImage).Scan(&blog.UpdatedAt)
	return dberr.Wrap(err, resourceBlog)
}

// Delete removes the blog. Comments and reactions cascade in the schema.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Blog.Table, schema.Blog.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceBlog)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resourceBlog)
	}
	return nil
}
