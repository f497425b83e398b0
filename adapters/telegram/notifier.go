package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	connectionUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/connection"
)

// Notifier delivers connection workflow messages to counterpart users. It is
// separate from Bot so the connection use case can be wired before the bot
// itself exists.
type Notifier struct {
	api *tgbotapi.BotAPI
}

var _ connectionUC.Notifier = (*Notifier)(nil)

func NewNotifier(api *tgbotapi.BotAPI) *Notifier {
	return &Notifier{api: api}
}

func (n *Notifier) NotifyRequest(ctx context.Context, toUser, fromUser int64, fromName string) error {
	msg := tgbotapi.NewMessage(toUser, fmt.Sprintf("📩 Новый запрос на связь от %s!", fromName))
	msg.ReplyMarkup = requestKeyboard(fromUser)
	_, err := n.api.Send(msg)
	return err
}

func (n *Notifier) NotifyAccepted(ctx context.Context, toUser int64, acceptorName string) error {
	msg := tgbotapi.NewMessage(toUser, fmt.Sprintf("🎉 %s принял(а) ваш запрос на связь!", acceptorName))
	_, err := n.api.Send(msg)
	return err
}

func (n *Notifier) NotifyDeclined(ctx context.Context, toUser int64, declinerName string) error {
	msg := tgbotapi.NewMessage(toUser, fmt.Sprintf("😞 %s отклонил(а) ваш запрос на связь.", declinerName))
	_, err := n.api.Send(msg)
	return err
}
