// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reaction

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/postgres"
)

const resourceReaction = "Reaction"

// PostgresRepository implements [Repository] on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	deleteReaction = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		schema.Reaction.Table, schema.Reaction.BlogID, schema.Reaction.UserID, schema.Reaction.Kind,
	)

	insertReaction = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`,
		schema.Reaction.Table, schema.Reaction.BlogID, schema.Reaction.UserID, schema.Reaction.Kind,
	)

	selectState = fmt.Sprintf(`
		SELECT
			count(*) FILTER (WHERE %[2]s = 'like'),
			count(*) FILTER (WHERE %[2]s = 'dislike'),
			COALESCE(bool_or(%[3]s = $2 AND %[2]s = 'like'), false),
			COALESCE(bool_or(%[3]s = $2 AND %[2]s = 'dislike'), false)
		FROM %[1]s
		WHERE %[4]s = $1
	`,
		schema.Reaction.Table, schema.Reaction.Kind, schema.Reaction.UserID, schema.Reaction.BlogID,
	)
)

func (repository *PostgresRepository) Toggle(context context.Context, blogID, userID int64, kind Kind) (*State, error) {
	state := &State{BlogID: blogID}

	err := postgres.InTx(context, repository.db, func(transaction pgx.Tx) error {
		removed, err := transaction.Exec(context, deleteReaction, blogID, userID, kind)
		if err != nil {
			return err
		}

		if removed.RowsAffected() == 0 {
			if _, err := transaction.Exec(context, insertReaction, blogID, userID, kind); err != nil {
				return err
			}
			if _, err := transaction.Exec(context, deleteReaction, blogID, userID, kind.Opposite()); err != nil {
				return err
			}
		}

		return transaction.QueryRow(context, selectState, blogID, userID).
			Scan(&state.Likes, &state.Dislikes, &state.Liked, &state.Disliked)
	})
	if err != nil {
		return nil, dberr.Wrap(err, resourceReaction)
	}

	return state, nil
}
