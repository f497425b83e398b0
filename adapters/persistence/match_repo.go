package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/match"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type postgresMatchRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresMatchRepo(db *pgxpool.Pool, logger logger.Logger) match.Repository {
	return &postgresMatchRepo{db: db, logger: logger}
}

var psqlMatch = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// NextCandidate excludes the searcher, anyone linked by a connection row of
// any status in either direction, and the session skip-list.
func (r *postgresMatchRepo) NextCandidate(ctx context.Context, searcherID int64, excluded []int64) (*profile.Profile, error) {
	builder := psqlMatch.
		Select("u.user_id", "u.name", "u.profession", "u.skills", "u.bio", "u.photo_id", "u.username", "u.social_link", "u.is_premium", "u.subscription_end").
		From("profiles u").
		Where(sq.NotEq{"u.user_id": searcherID}).
		Where(`NOT EXISTS (
			SELECT 1 FROM connections c
			WHERE (c.from_user = ? AND c.to_user = u.user_id)
			OR (c.to_user = ? AND c.from_user = u.user_id)
		)`, searcherID, searcherID).
		OrderBy("RANDOM()").
		Limit(1)

	if len(excluded) > 0 {
		builder = builder.Where(sq.NotEq{"u.user_id": excluded})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build candidate query", err)
	}

	p := &profile.Profile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.UserID,
		&p.Name,
		&p.Profession,
		&p.Skills,
		&p.Bio,
		&p.PhotoID,
		&p.Username,
		&p.SocialLink,
		&p.IsPremium,
		&p.SubscriptionEnd,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("candidate", "next")
		}
		return nil, apperror.NewInternal("failed to query next candidate", err)
	}

	return p, nil
}
