package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/askgate/internal/core"
	"github.com/sandevgo/askgate/pkg/log"
)

type InteractionsRepo struct {
	db *sql.DB
}

func NewInteractionsRepo(db *sql.DB) *InteractionsRepo {
	return &InteractionsRepo{db: db}
}

func (r *InteractionsRepo) Insert(ctx context.Context, contextText, question, answer string) (int64, error) {
	query := `INSERT INTO interactions (context, question, answer) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, contextText, question, answer)
	if err != nil {
		return 0, fmt.Errorf("failed to insert interaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read interaction id: %w", err)
	}

	log.FromCtx(ctx).Debug().Int64("id", id).Msg("saved interaction")
	return id, nil
}

// UpdateRating sets the rating of a single record. A repeated update
// simply overwrites the previous value. The bool result reports whether
// a record with that id existed.
func (r *InteractionsRepo) UpdateRating(ctx context.Context, id, rating int64) (bool, error) {
	query := `UPDATE interactions SET rating = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, rating, id)
	if err != nil {
		return false, fmt.Errorf("failed to update rating: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *InteractionsRepo) ListRecent(ctx context.Context, limit int) ([]core.Interaction, error) {
	// id is the tiebreaker for records sharing a CURRENT_TIMESTAMP second
	query := `SELECT id, context, question, answer, rating, created_at
		FROM interactions ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var records []core.Interaction
	for rows.Next() {
		var rec core.Interaction
		var contextText sql.NullString
		var rating sql.NullInt64

		if err := rows.Scan(&rec.ID, &contextText, &rec.Question, &rec.Answer, &rating, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}

		rec.Context = contextText.String
		if rating.Valid {
			v := rating.Int64
			rec.Rating = &v
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(records)).Msg("loaded interactions")
	return records, nil
}

func (r *InteractionsRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	return nil
}
