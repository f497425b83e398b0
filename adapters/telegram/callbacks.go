package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
)

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	b.answerCallback(query.ID)

	userID := query.From.ID
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data

	switch {
	case data == "premium_purchase":
		b.sendInvoice(ctx, chatID, userID)

	case data == "cancel_premium":
		b.editText(chatID, messageID, "❌ Отмена премиум подписки.")

	case data == "update_profile":
		b.openProfileEditor(ctx, chatID, userID, query.From.UserName)

	case data == "cancel_edit":
		b.states.Delete(userID)
		b.editText(chatID, messageID, "❌ Редактирование отменено")

	case strings.HasPrefix(data, "edit_"):
		b.handleEditChoice(chatID, messageID, userID, data)

	case strings.HasPrefix(data, "connect_"):
		b.handleConnect(ctx, query, parseCallbackID(data))

	case strings.HasPrefix(data, "skip_"):
		b.handleSkip(ctx, query, parseCallbackID(data))

	case strings.HasPrefix(data, "accept_"):
		b.handleAccept(ctx, query, parseCallbackID(data))

	case strings.HasPrefix(data, "decline_"):
		b.handleDecline(ctx, query, parseCallbackID(data))

	case strings.HasPrefix(data, "view_"):
		b.handleViewPeer(ctx, chatID, parseCallbackID(data))

	default:
		b.editText(chatID, messageID, "⚠️ Неверный выбор. Попробуйте еще раз.")
	}
}

func parseCallbackID(data string) int64 {
	parts := strings.SplitN(data, "_", 2)
	if len(parts) != 2 {
		return 0
	}
	id, _ := strconv.ParseInt(parts[1], 10, 64)
	return id
}

func (b *Bot) handleEditChoice(chatID int64, messageID int, userID int64, choice string) {
	prompts := map[string]struct {
		next   step
		prompt string
	}{
		"edit_photo":      {stepEditPhoto, "📸 Отправьте новое фото профиля (или /skip)"},
		"edit_name":       {stepEditName, "👤 Введите новое имя:"},
		"edit_profession": {stepEditProfession, "💼 Введите новую профессию:"},
		"edit_skills":     {stepEditSkills, "🛠 Введите новые навыки (через запятую):"},
		"edit_bio":        {stepEditBio, "📖 Введите новое описание:"},
		"edit_social":     {stepEditSocial, "🌐 Введите новую ссылку на соцсеть:"},
	}

	p, ok := prompts[choice]
	if !ok {
		b.editText(chatID, messageID, "⚠️ Неверный выбор. Попробуйте еще раз.")
		return
	}

	b.states.Set(userID, &conversation{step: p.next})
	b.editText(chatID, messageID, p.prompt)
}

func (b *Bot) handleConnect(ctx context.Context, query *tgbotapi.CallbackQuery, targetID int64) {
	userID := query.From.ID
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	fromName := strings.TrimSpace(query.From.FirstName + " " + query.From.LastName)

	out, err := b.conns.Request(ctx, userID, targetID, fromName)
	if err != nil {
		b.logger.Error("Connection request failed", err,
			zap.Int64("from", userID), zap.Int64("to", targetID))
		b.editText(chatID, messageID, "⚠️ Ошибка отправки запроса.")
		return
	}

	if !out.Granted {
		msg := fmt.Sprintf("❌ Достигнут дневной лимит соединений (%d).\n"+
			"💎 Премиум-пользователи имеют увеличенный лимит.", out.Limit)
		if !out.Premium {
			msg += "\n\nИспользуйте /premium для расширения возможностей"
		}
		b.reply(chatID, msg)
		return
	}

	b.editText(chatID, messageID, "📩 Запрос успешно отправлен!")
	b.showNextCandidate(ctx, chatID, userID)
}

func (b *Bot) handleSkip(ctx context.Context, query *tgbotapi.CallbackQuery, skippedID int64) {
	userID := query.From.ID
	chatID := query.Message.Chat.ID

	if err := b.matches.Skip(ctx, userID, skippedID); err != nil {
		b.logger.Error("Failed to record skip", err, zap.Int64("user_id", userID))
	}

	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, query.Message.MessageID)); err != nil {
		b.logger.Error("Failed to delete candidate card", err)
	}

	b.showNextCandidate(ctx, chatID, userID)
}

func (b *Bot) handleAccept(ctx context.Context, query *tgbotapi.CallbackQuery, fromID int64) {
	chatID := query.Message.Chat.ID
	acceptorName := strings.TrimSpace(query.From.FirstName + " " + query.From.LastName)

	if err := b.conns.Accept(ctx, fromID, query.From.ID, acceptorName); err != nil {
		b.logger.Error("Failed to accept request", err,
			zap.Int64("from", fromID), zap.Int64("to", query.From.ID))
		b.editText(chatID, query.Message.MessageID, "⚠️ Ошибка. Попробуйте позже.")
		return
	}

	b.editText(chatID, query.Message.MessageID, "✅ Запрос принят!")
}

func (b *Bot) handleDecline(ctx context.Context, query *tgbotapi.CallbackQuery, fromID int64) {
	chatID := query.Message.Chat.ID
	declinerName := strings.TrimSpace(query.From.FirstName + " " + query.From.LastName)

	if err := b.conns.Decline(ctx, fromID, query.From.ID, declinerName); err != nil {
		b.logger.Error("Failed to decline request", err,
			zap.Int64("from", fromID), zap.Int64("to", query.From.ID))
		b.editText(chatID, query.Message.MessageID, "⚠️ Ошибка. Попробуйте позже.")
		return
	}

	b.editText(chatID, query.Message.MessageID, "❌ Запрос отклонен.")
}

func (b *Bot) handleViewPeer(ctx context.Context, chatID, peerID int64) {
	p, err := b.profiles.Get(ctx, peerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			b.reply(chatID, "❌ Профиль не найден.")
			return
		}
		b.logger.Error("Failed to load peer profile", err, zap.Int64("peer_id", peerID))
		b.reply(chatID, "⚠️ Ошибка отображения профиля")
		return
	}

	b.sendProfileCard(chatID, p, nil, nil)
}
