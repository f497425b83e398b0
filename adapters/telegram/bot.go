package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	connectionUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/connection"
	matchUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/match"
	profileUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/profile"
	subscriptionUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/subscription"
	workUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/work"
	"github.com/colleaguesnet/colleagues-bot/internal/config"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	profiles *profileUC.UseCase
	works    *workUC.UseCase
	subs     *subscriptionUC.UseCase
	conns    *connectionUC.UseCase
	matches  *matchUC.UseCase
	states   *stateStore
	logger   logger.Logger
	tracer   trace.Tracer

	paymentToken string
	priceMinor   int
	currency     string
}

func NewBot(
	api *tgbotapi.BotAPI,
	profiles *profileUC.UseCase,
	works *workUC.UseCase,
	subs *subscriptionUC.UseCase,
	conns *connectionUC.UseCase,
	matches *matchUC.UseCase,
	cfg config.Config,
	log logger.Logger,
) *Bot {
	return &Bot{
		api:          api,
		profiles:     profiles,
		works:        works,
		subs:         subs,
		conns:        conns,
		matches:      matches,
		states:       newStateStore(),
		logger:       log,
		tracer:       otel.Tracer("telegram"),
		paymentToken: cfg.Bot.PaymentToken,
		priceMinor:   cfg.Billing.PriceMinor,
		currency:     cfg.Billing.Currency,
	}
}

// Run consumes the long-poll update stream until ctx is cancelled. Updates
// are handled concurrently; nothing here is mutually exclusive.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot update loop started", zap.String("account", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, span := b.tracer.Start(ctx, "telegram.update",
		trace.WithAttributes(attribute.Int("update_id", update.UpdateID)))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic in update handler", nil, zap.Any("panic", r))
		}
	}()

	switch {
	case update.PreCheckoutQuery != nil:
		b.handlePreCheckout(ctx, update.PreCheckoutQuery)
	case update.Message != nil && update.Message.SuccessfulPayment != nil:
		b.handleSuccessfulPayment(ctx, update.Message)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("Failed to send message", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.send(msg)
}

func (b *Bot) answerCallback(id string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		b.logger.Error("Failed to answer callback", err)
	}
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	b.send(tgbotapi.NewEditMessageText(chatID, messageID, text))
}
