package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/connection"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/work"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuProfile),
			tgbotapi.NewKeyboardButton(menuSearch),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuConnections),
			tgbotapi.NewKeyboardButton(menuPremium),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.InputFieldPlaceholder = "Выберите действие"
	return kb
}

func editMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Фото", "edit_photo"),
			tgbotapi.NewInlineKeyboardButtonData("👤 Имя", "edit_name"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💼 Профессия", "edit_profession"),
			tgbotapi.NewInlineKeyboardButtonData("🛠 Навыки", "edit_skills"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Описание", "edit_bio"),
			tgbotapi.NewInlineKeyboardButtonData("🌐 Соцсеть", "edit_social"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "cancel_edit"),
		),
	)
}

func candidateKeyboard(candidateID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤝 Связаться", fmt.Sprintf("connect_%d", candidateID)),
			tgbotapi.NewInlineKeyboardButtonData("➡️ Пропустить", fmt.Sprintf("skip_%d", candidateID)),
		),
	)
}

func requestKeyboard(fromUser int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Принять", fmt.Sprintf("accept_%d", fromUser)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", fmt.Sprintf("decline_%d", fromUser)),
		),
	)
}

func premiumKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Купить премиум", "premium_purchase"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "cancel_premium"),
		),
	)
}

func ownProfileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить профиль", "update_profile"),
		),
	)
}

func connectionsKeyboard(peers []connection.Peer) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(peers))
	for _, p := range peers {
		contactURL := fmt.Sprintf("tg://user?id=%d", p.UserID)
		if p.Username != nil && *p.Username != "" {
			contactURL = fmt.Sprintf("https://t.me/%s", *p.Username)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s - %s", p.Name, p.Profession),
				fmt.Sprintf("view_%d", p.UserID),
			),
			tgbotapi.NewInlineKeyboardButtonURL("📨 Написать", contactURL),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func profileText(p *profile.Profile, works []work.Work) string {
	badge := ""
	if p.IsPremium {
		badge = " 💎"
	}

	text := fmt.Sprintf(
		"👤 *Имя:* %s%s\n\n💼 *Профессия:* %s\n\n🛠️ *Навыки:* %s\n\n📖 *О себе:* %s",
		p.Name, badge, p.Profession, p.Skills, p.Bio,
	)

	if p.SocialLink != nil && *p.SocialLink != "" {
		text += fmt.Sprintf("\n\n🌐 *Соцсеть:* [Ссылка](%s)", *p.SocialLink)
	}

	if p.IsPremium && len(works) > 0 {
		text += "\n\n🎨 *Примеры работ:*"
		for i, w := range works {
			text += fmt.Sprintf("\n%d. *%s*: %s", i+1, w.Title, w.Description)
		}
	}

	return text
}
