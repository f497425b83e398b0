package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/work"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
)

type postgresWorkRepo struct {
	db *pgxpool.Pool
}

func NewPostgresWorkRepo(db *pgxpool.Pool) work.Repository {
	return &postgresWorkRepo{db: db}
}

func (r *postgresWorkRepo) ListByOwner(ctx context.Context, userID int64) ([]work.Work, error) {
	query := `
		SELECT id, user_id, work_title, work_description
		FROM works
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list works", err)
	}
	defer rows.Close()

	works := make([]work.Work, 0)
	for rows.Next() {
		var w work.Work
		if err := rows.Scan(&w.ID, &w.UserID, &w.Title, &w.Description); err != nil {
			return nil, apperror.NewInternal("failed to scan work", err)
		}
		works = append(works, w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating works", err)
	}
	return works, nil
}

func (r *postgresWorkRepo) Create(ctx context.Context, w *work.Work) error {
	query := `
		INSERT INTO works (user_id, work_title, work_description)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRow(ctx, query, w.UserID, w.Title, w.Description).Scan(&w.ID); err != nil {
		return apperror.NewInternal("failed to insert work", err)
	}
	return nil
}
