package work

import (
	"context"

	"github.com/colleaguesnet/colleagues-bot/internal/application/usecase/subscription"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/work"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type UseCase struct {
	workRepo work.Repository
	subs     *subscription.UseCase
	logger   logger.Logger
}

func NewUseCase(repo work.Repository, subs *subscription.UseCase, log logger.Logger) *UseCase {
	return &UseCase{workRepo: repo, subs: subs, logger: log}
}

func (uc *UseCase) ListByOwner(ctx context.Context, userID int64) ([]work.Work, error) {
	return uc.workRepo.ListByOwner(ctx, userID)
}

// Add is premium-gated: portfolio items are a subscriber feature.
func (uc *UseCase) Add(ctx context.Context, userID int64, title, description string) (*work.Work, error) {
	active, err := uc.subs.IsActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperror.NewPermissionDenied("adding works requires an active premium subscription")
	}

	w := &work.Work{UserID: userID, Title: title, Description: description}
	if err := uc.workRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
