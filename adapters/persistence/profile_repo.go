package persistence

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetByID(ctx context.Context, userID int64) (*profile.Profile, error) {
	query := `
		SELECT user_id, name, profession, skills, bio, photo_id, username, social_link, is_premium, subscription_end
		FROM profiles
		WHERE user_id = $1
	`
	p := &profile.Profile{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
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
			return nil, apperror.NewNotFound("profile", strconv.FormatInt(userID, 10))
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	return p, nil
}

// Upsert is a full-record put for the mutable fields. The premium columns are
// deliberately absent from the update set so a stale caller cannot clobber them.
func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, profession, skills, bio, photo_id, username, social_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			profession = EXCLUDED.profession,
			skills = EXCLUDED.skills,
			bio = EXCLUDED.bio,
			photo_id = EXCLUDED.photo_id,
			username = EXCLUDED.username,
			social_link = EXCLUDED.social_link
	`
	_, err := r.db.Exec(ctx, query,
		p.UserID,
		p.Name,
		p.Profession,
		p.Skills,
		p.Bio,
		p.PhotoID,
		p.Username,
		p.SocialLink,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) SetPremium(ctx context.Context, userID int64, until *time.Time) error {
	query := `
		UPDATE profiles
		SET is_premium = $2, subscription_end = $3
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, until != nil, until)
	if err != nil {
		return apperror.NewInternal("failed to update premium status", err)
	}
	return nil
}

func (r *postgresProfileRepo) ListPremiumIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM profiles WHERE is_premium`)
	if err != nil {
		return nil, apperror.NewInternal("failed to list premium profiles", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.NewInternal("failed to scan premium id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating premium ids", err)
	}
	return ids, nil
}

func (r *postgresProfileRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, apperror.NewInternal("failed to count profiles", err)
	}
	return n, nil
}

func (r *postgresProfileRepo) CountPremium(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE is_premium`).Scan(&n); err != nil {
		return 0, apperror.NewInternal("failed to count premium profiles", err)
	}
	return n, nil
}
