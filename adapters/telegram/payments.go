package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) sendInvoice(ctx context.Context, chatID, userID int64) {
	active, err := b.subs.IsActive(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to check subscription before invoice", err, zap.Int64("user_id", userID))
		b.reply(chatID, "❌ Ошибка оплаты. Попробуйте позже.")
		return
	}
	if active {
		b.reply(chatID, "❌ У вас уже есть активная подписка!")
		return
	}

	invoice := tgbotapi.InvoiceConfig{
		BaseChat:      tgbotapi.BaseChat{ChatID: chatID},
		Title:         invoiceTitle,
		Description:   invoiceDescription,
		Payload:       invoicePayload,
		ProviderToken: b.paymentToken,
		Currency:      b.currency,
		Prices: []tgbotapi.LabeledPrice{
			{Label: invoiceItemLabel, Amount: b.priceMinor},
		},
		NeedEmail: true,
	}

	if _, err := b.api.Send(invoice); err != nil {
		b.logger.Error("Failed to send invoice", err, zap.Int64("user_id", userID))
		b.reply(chatID, "❌ Ошибка оплаты. Попробуйте позже.")
	}
}

// handlePreCheckout is the last gate before the charge: a duplicate active
// subscription or a foreign payload rejects the payment with a visible reason.
func (b *Bot) handlePreCheckout(ctx context.Context, query *tgbotapi.PreCheckoutQuery) {
	userID := query.From.ID

	answer := func(ok bool, errorMessage string) {
		if _, err := b.api.Request(tgbotapi.PreCheckoutConfig{
			PreCheckoutQueryID: query.ID,
			OK:                 ok,
			ErrorMessage:       errorMessage,
		}); err != nil {
			b.logger.Error("Failed to answer pre-checkout query", err, zap.Int64("user_id", userID))
		}
	}

	active, err := b.subs.IsActive(ctx, userID)
	if err != nil {
		b.logger.Error("Pre-checkout subscription check failed", err, zap.Int64("user_id", userID))
		answer(false, "Ошибка обработки платежа")
		return
	}
	if active {
		answer(false, "У вас уже есть активная подписка!")
		return
	}

	if query.InvoicePayload != invoicePayload {
		answer(false, "Ошибка платежа")
		return
	}

	answer(true, "")
}

// handleSuccessfulPayment runs after the charge went through. An activation
// failure here leaves the user charged but unactivated; it is surfaced as
// "contact support" and resolved manually.
func (b *Bot) handleSuccessfulPayment(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	if _, err := b.subs.Activate(ctx, userID); err != nil {
		b.logger.Error("Premium activation failed after successful payment", err,
			zap.Int64("user_id", userID),
			zap.String("telegram_charge_id", msg.SuccessfulPayment.TelegramPaymentChargeID))
		b.reply(msg.Chat.ID, "❌ Ошибка активации. Обратитесь в поддержку.")
		return
	}

	b.replyMarkdown(msg.Chat.ID, premiumActivatedText)
}
