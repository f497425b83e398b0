package match

import (
	"context"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
)

type Repository interface {
	// NextCandidate picks one profile uniformly at random among those that
	// are not the searcher, not linked to the searcher by any connection row
	// in either direction, and not in excluded. Returns apperror.ErrNotFound
	// when the candidate set is empty.
	NextCandidate(ctx context.Context, searcherID int64, excluded []int64) (*profile.Profile, error)
}
