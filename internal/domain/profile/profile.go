package profile

import (
	"context"
	"time"
)

// Profile is keyed by the Telegram user id. Premium state lives on the same
// row but is never written through Upsert.
type Profile struct {
	UserID          int64      `json:"user_id"`
	Name            string     `json:"name"`
	Profession      string     `json:"profession"`
	Skills          string     `json:"skills"`
	Bio             string     `json:"bio"`
	PhotoID         *string    `json:"photo_id"`
	Username        *string    `json:"username"`
	SocialLink      *string    `json:"social_link"`
	IsPremium       bool       `json:"is_premium"`
	SubscriptionEnd *time.Time `json:"subscription_end"`
}

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*Profile, error)
	// Upsert writes all mutable fields of the row. is_premium and
	// subscription_end are excluded from the update set and survive as stored.
	Upsert(ctx context.Context, p *Profile) error
	// SetPremium with a non-nil until activates, with nil demotes.
	SetPremium(ctx context.Context, userID int64, until *time.Time) error
	ListPremiumIDs(ctx context.Context) ([]int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountPremium(ctx context.Context) (int64, error)
}
