package subscription

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/colleaguesnet/colleagues-bot/adapters/event"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type UseCase struct {
	profileRepo profile.Repository
	publisher   event.Publisher
	logger      logger.Logger
	days        int
	now         func() time.Time
}

func NewUseCase(repo profile.Repository, publisher event.Publisher, log logger.Logger, subscriptionDays int) *UseCase {
	return &UseCase{
		profileRepo: repo,
		publisher:   publisher,
		logger:      log,
		days:        subscriptionDays,
		now:         time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// IsActive reads the stored premium state and lazily demotes an expired
// subscription as a side effect of the read.
func (uc *UseCase) IsActive(ctx context.Context, userID int64) (bool, error) {
	p, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if !p.IsPremium {
		return false, nil
	}

	if p.SubscriptionEnd != nil && uc.now().Before(*p.SubscriptionEnd) {
		return true, nil
	}

	if err := uc.profileRepo.SetPremium(ctx, userID, nil); err != nil {
		return false, err
	}
	uc.logger.Info("Subscription expired", zap.Int64("user_id", userID))
	uc.publisher.PublishSubscriptionEvent(ctx, event.SubscriptionExpired, userID, nil)
	return false, nil
}

// Activate grants premium for the configured period, overwriting any prior
// expiry. Remaining time does not stack.
func (uc *UseCase) Activate(ctx context.Context, userID int64) (time.Time, error) {
	until := uc.now().Add(time.Duration(uc.days) * 24 * time.Hour)
	if err := uc.profileRepo.SetPremium(ctx, userID, &until); err != nil {
		return time.Time{}, err
	}
	uc.logger.Info("Subscription activated", zap.Int64("user_id", userID), zap.Time("until", until))
	uc.publisher.PublishSubscriptionEvent(ctx, event.SubscriptionActivated, userID, &until)
	return until, nil
}

// Sweep forces demotion side effects for every currently-premium user.
// Per-user store errors are logged and the sweep moves on.
func (uc *UseCase) Sweep(ctx context.Context) error {
	uc.logger.Info("Running subscription sweep")

	ids, err := uc.profileRepo.ListPremiumIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		active, err := uc.IsActive(ctx, id)
		if err != nil {
			uc.logger.Error("Sweep check failed", err, zap.Int64("user_id", id))
			continue
		}
		if !active {
			uc.logger.Info("Sweep demoted expired subscription", zap.Int64("user_id", id))
		}
	}
	return nil
}
