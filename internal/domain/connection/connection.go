package connection

import "context"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

// Connection is a directed introduction request. Once accepted the link is
// symmetric for query purposes. Declined requests are deleted, not archived.
type Connection struct {
	ID       int64  `json:"id"`
	FromUser int64  `json:"from_user"`
	ToUser   int64  `json:"to_user"`
	Status   Status `json:"status"`
}

// Peer is the counterpart side of an accepted connection, joined to the
// profile fields the connection list displays.
type Peer struct {
	UserID     int64   `json:"user_id"`
	Name       string  `json:"name"`
	Profession string  `json:"profession"`
	Username   *string `json:"username"`
}

type Repository interface {
	// Create inserts a pending row. Returns false when an identical pending
	// request already exists (the insert is suppressed by the store).
	Create(ctx context.Context, fromUser, toUser int64) (bool, error)
	// Accept flips pending rows (fromUser -> toUser) to accepted. A miss is
	// not an error.
	Accept(ctx context.Context, fromUser, toUser int64) error
	// Decline removes rows (fromUser -> toUser) unconditionally.
	Decline(ctx context.Context, fromUser, toUser int64) error
	ListAccepted(ctx context.Context, userID int64) ([]Peer, error)
	// ExistsBetween reports whether any row of any status links the pair,
	// in either direction.
	ExistsBetween(ctx context.Context, a, b int64) (bool, error)
	CountAccepted(ctx context.Context) (int64, error)
}
