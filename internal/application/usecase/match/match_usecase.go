package match

import (
	"context"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/match"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/session"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type UseCase struct {
	matchRepo match.Repository
	sessions  session.Store
	logger    logger.Logger
}

func NewUseCase(repo match.Repository, sessions session.Store, log logger.Logger) *UseCase {
	return &UseCase{matchRepo: repo, sessions: sessions, logger: log}
}

// StartSearch clears the session skip-list and returns the first candidate.
func (uc *UseCase) StartSearch(ctx context.Context, searcherID int64) (*profile.Profile, error) {
	if err := uc.sessions.ResetSkipped(ctx, searcherID); err != nil {
		return nil, err
	}
	return uc.Next(ctx, searcherID)
}

// Next returns apperror.ErrNotFound when the candidate pool is exhausted;
// the caller shows an end-of-results notice rather than retrying.
func (uc *UseCase) Next(ctx context.Context, searcherID int64) (*profile.Profile, error) {
	excluded, err := uc.sessions.ListSkipped(ctx, searcherID)
	if err != nil {
		return nil, err
	}
	return uc.matchRepo.NextCandidate(ctx, searcherID, excluded)
}

// Skip hides a profile for the rest of the search session only. Connected
// profiles are excluded by the candidate query itself, permanently.
func (uc *UseCase) Skip(ctx context.Context, searcherID, skippedID int64) error {
	return uc.sessions.AddSkipped(ctx, searcherID, skippedID)
}
