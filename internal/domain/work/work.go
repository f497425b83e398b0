package work

import "context"

// Work is a portfolio item. Visible on premium profiles only.
type Work struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Repository interface {
	ListByOwner(ctx context.Context, userID int64) ([]Work, error)
	Create(ctx context.Context, w *Work) error
}
