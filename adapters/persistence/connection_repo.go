package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/connection"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type postgresConnectionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresConnectionRepo(db *pgxpool.Pool, logger logger.Logger) connection.Repository {
	return &postgresConnectionRepo{db: db, logger: logger}
}

// Create relies on the partial unique index on (from_user, to_user) for
// pending rows: a repeated request before the counterpart answers inserts
// nothing and reports created=false.
func (r *postgresConnectionRepo) Create(ctx context.Context, fromUser, toUser int64) (bool, error) {
	query := `
		INSERT INTO connections (from_user, to_user, status)
		VALUES ($1, $2, 'pending')
		ON CONFLICT (from_user, to_user) WHERE status = 'pending' DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, fromUser, toUser)
	if err != nil {
		return false, apperror.NewInternal("failed to insert connection request", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresConnectionRepo) Accept(ctx context.Context, fromUser, toUser int64) error {
	query := `
		UPDATE connections
		SET status = 'accepted'
		WHERE from_user = $1 AND to_user = $2 AND status = 'pending'
	`
	_, err := r.db.Exec(ctx, query, fromUser, toUser)
	if err != nil {
		return apperror.NewInternal("failed to accept connection request", err)
	}
	return nil
}

func (r *postgresConnectionRepo) Decline(ctx context.Context, fromUser, toUser int64) error {
	query := `DELETE FROM connections WHERE from_user = $1 AND to_user = $2`
	_, err := r.db.Exec(ctx, query, fromUser, toUser)
	if err != nil {
		return apperror.NewInternal("failed to decline connection request", err)
	}
	return nil
}

func (r *postgresConnectionRepo) ListAccepted(ctx context.Context, userID int64) ([]connection.Peer, error) {
	query := `
		SELECT p.user_id, p.name, p.profession, p.username
		FROM connections c
		JOIN profiles p ON p.user_id = CASE
			WHEN c.from_user = $1 THEN c.to_user
			ELSE c.from_user
		END
		WHERE (c.from_user = $1 OR c.to_user = $1)
		AND c.status = 'accepted'
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list connections", err)
	}
	defer rows.Close()

	peers := make([]connection.Peer, 0)
	for rows.Next() {
		var p connection.Peer
		if err := rows.Scan(&p.UserID, &p.Name, &p.Profession, &p.Username); err != nil {
			return nil, apperror.NewInternal("failed to scan connection peer", err)
		}
		peers = append(peers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating connection peers", err)
	}
	return peers, nil
}

func (r *postgresConnectionRepo) ExistsBetween(ctx context.Context, a, b int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM connections
			WHERE (from_user = $1 AND to_user = $2)
			OR (from_user = $2 AND to_user = $1)
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, a, b).Scan(&exists); err != nil {
		return false, apperror.NewInternal("failed to check connection existence", err)
	}
	return exists, nil
}

func (r *postgresConnectionRepo) CountAccepted(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM connections WHERE status = 'accepted'`).Scan(&n); err != nil {
		return 0, apperror.NewInternal("failed to count accepted connections", err)
	}
	return n, nil
}
