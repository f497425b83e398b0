package connection

import (
	"context"

	"go.uber.org/zap"

	"github.com/colleaguesnet/colleagues-bot/adapters/event"
	"github.com/colleaguesnet/colleagues-bot/internal/application/usecase/subscription"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/connection"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/session"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

// Notifier delivers counterpart messages through the transport. Delivery is
// best-effort: a failure is logged and the initiating action still succeeds.
type Notifier interface {
	NotifyRequest(ctx context.Context, toUser, fromUser int64, fromName string) error
	NotifyAccepted(ctx context.Context, toUser int64, acceptorName string) error
	NotifyDeclined(ctx context.Context, toUser int64, declinerName string) error
}

type Limits struct {
	Free    int
	Premium int
}

type UseCase struct {
	connRepo  connection.Repository
	sessions  session.Store
	subs      *subscription.UseCase
	notifier  Notifier
	publisher event.Publisher
	logger    logger.Logger
	limits    Limits
}

func NewUseCase(
	repo connection.Repository,
	sessions session.Store,
	subs *subscription.UseCase,
	notifier Notifier,
	publisher event.Publisher,
	log logger.Logger,
	limits Limits,
) *UseCase {
	return &UseCase{
		connRepo:  repo,
		sessions:  sessions,
		subs:      subs,
		notifier:  notifier,
		publisher: publisher,
		logger:    log,
		limits:    limits,
	}
}

type RequestOutput struct {
	// Granted is false when the daily quota was spent; nothing was inserted.
	Granted bool
	Limit   int
	Premium bool
}

// Request takes a quota slot, inserts the pending row, then notifies the
// target. The row stays regardless of delivery outcome.
func (uc *UseCase) Request(ctx context.Context, fromUser, toUser int64, fromName string) (*RequestOutput, error) {
	premium, err := uc.subs.IsActive(ctx, fromUser)
	if err != nil {
		return nil, err
	}

	limit := uc.limits.Free
	if premium {
		limit = uc.limits.Premium
	}

	ok, err := uc.sessions.ConsumeQuota(ctx, fromUser, limit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &RequestOutput{Granted: false, Limit: limit, Premium: premium}, nil
	}

	created, err := uc.connRepo.Create(ctx, fromUser, toUser)
	if err != nil {
		return nil, err
	}
	if !created {
		// A pending request to the same person already exists; nothing new
		// to deliver, the requester still sees "sent".
		uc.logger.Info("Duplicate connection request suppressed",
			zap.Int64("from", fromUser), zap.Int64("to", toUser))
		return &RequestOutput{Granted: true, Limit: limit, Premium: premium}, nil
	}

	if err := uc.notifier.NotifyRequest(ctx, toUser, fromUser, fromName); err != nil {
		uc.logger.Error("Failed to deliver connection request", err,
			zap.Int64("from", fromUser), zap.Int64("to", toUser))
	}

	uc.publisher.PublishConnectionEvent(ctx, event.ConnectionRequested, fromUser, toUser)
	return &RequestOutput{Granted: true, Limit: limit, Premium: premium}, nil
}

// Accept flips the pending row. A miss (already accepted, wrong direction)
// is a no-op and the acceptor still sees success.
func (uc *UseCase) Accept(ctx context.Context, fromUser, toUser int64, acceptorName string) error {
	if err := uc.connRepo.Accept(ctx, fromUser, toUser); err != nil {
		return err
	}

	if err := uc.notifier.NotifyAccepted(ctx, fromUser, acceptorName); err != nil {
		uc.logger.Error("Failed to deliver acceptance notice", err,
			zap.Int64("from", fromUser), zap.Int64("to", toUser))
	}

	uc.publisher.PublishConnectionEvent(ctx, event.ConnectionAccepted, fromUser, toUser)
	return nil
}

// Decline removes the request entirely; no declined state is retained, and
// the pair becomes matchable again.
func (uc *UseCase) Decline(ctx context.Context, fromUser, toUser int64, declinerName string) error {
	if err := uc.connRepo.Decline(ctx, fromUser, toUser); err != nil {
		return err
	}

	if err := uc.notifier.NotifyDeclined(ctx, fromUser, declinerName); err != nil {
		uc.logger.Error("Failed to deliver decline notice", err,
			zap.Int64("from", fromUser), zap.Int64("to", toUser))
	}

	uc.publisher.PublishConnectionEvent(ctx, event.ConnectionDeclined, fromUser, toUser)
	return nil
}

func (uc *UseCase) List(ctx context.Context, userID int64) ([]connection.Peer, error) {
	return uc.connRepo.ListAccepted(ctx, userID)
}
