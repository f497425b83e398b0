package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/work"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	// /skip is meaningful inside a conversation, every other command resets it
	if msg.IsCommand() && msg.Command() != "skip" {
		switch msg.Command() {
		case "start":
			b.states.Delete(userID)
			b.handleStart(msg)
		case "help":
			b.replyMarkdown(chatID, helpText)
		case "profile":
			b.openProfileEditor(ctx, chatID, userID, msg.From.UserName)
		case "premium":
			b.handlePremium(ctx, chatID, userID)
		case "addwork":
			b.startAddWork(ctx, chatID, userID)
		case "cancel":
			b.states.Delete(userID)
			b.reply(chatID, "❌ Действие отменено.")
		default:
			b.reply(chatID, "Неизвестная команда. Используйте кнопки меню.")
		}
		return
	}

	switch msg.Text {
	case menuProfile:
		b.showOwnProfile(ctx, chatID, userID)
		return
	case menuSearch:
		b.startSearch(ctx, chatID, userID)
		return
	case menuConnections:
		b.showConnections(ctx, chatID, userID)
		return
	case menuPremium:
		b.handlePremium(ctx, chatID, userID)
		return
	case menuHelp:
		b.replyMarkdown(chatID, helpText)
		return
	}

	if st := b.states.Get(userID); st != nil {
		b.handleConversationInput(ctx, msg, st)
		return
	}

	b.reply(chatID, "Используйте кнопки меню или /help.")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	text := fmt.Sprintf(
		"👋 Привет, %s!\n"+
			"Добро пожаловать в профессиональную сеть Colleagues Bot!\n\n"+
			"🚀 Начни с создания профиля и находи нужные связи!\n"+
			"👇 Используй кнопки ниже для навигации:",
		msg.From.FirstName,
	)

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyMarkup = mainMenuKeyboard()
	b.send(reply)
}

// openProfileEditor shows the field menu for an existing profile or starts
// the creation flow for a first-time user.
func (b *Bot) openProfileEditor(ctx context.Context, chatID, userID int64, username string) {
	_, err := b.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			st := &conversation{step: stepCreateName, draft: profile.Profile{UserID: userID}}
			if username != "" {
				st.draft.Username = &username
			}
			b.states.Set(userID, st)
			b.reply(chatID, "📝 Давайте создадим ваш профиль. Как вас зовут?")
			return
		}
		b.logger.Error("Failed to load profile for editing", err, zap.Int64("user_id", userID))
		b.reply(chatID, "⚠️ Ошибка. Попробуйте позже.")
		return
	}

	b.states.Set(userID, &conversation{step: stepEditMenu})

	msg := tgbotapi.NewMessage(chatID, "✏️ *Редактирование профиля:*\nВыберите что хотите изменить:")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = editMenuKeyboard()
	b.send(msg)
}

func (b *Bot) handleConversationInput(ctx context.Context, msg *tgbotapi.Message, st *conversation) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch st.step {
	case stepEditPhoto:
		if msg.IsCommand() && msg.Command() == "skip" {
			b.states.Delete(userID)
			b.reply(chatID, "✅ Фото осталось без изменений")
			return
		}
		if len(msg.Photo) == 0 {
			b.reply(chatID, "📸 Отправьте фото профиля (или /skip)")
			return
		}
		photoID := msg.Photo[len(msg.Photo)-1].FileID
		b.finishEdit(ctx, chatID, userID, "✅ Фото профиля обновлено!",
			b.profiles.SetPhoto(ctx, userID, photoID))

	case stepEditName:
		b.finishEdit(ctx, chatID, userID, "✅ Имя обновлено!",
			b.profiles.SetName(ctx, userID, msg.Text))

	case stepEditProfession:
		b.finishEdit(ctx, chatID, userID, "✅ Профессия обновлена!",
			b.profiles.SetProfession(ctx, userID, msg.Text))

	case stepEditSkills:
		b.finishEdit(ctx, chatID, userID, "✅ Навыки обновлены!",
			b.profiles.SetSkills(ctx, userID, msg.Text))

	case stepEditBio:
		b.finishEdit(ctx, chatID, userID, "✅ Описание обновлено!",
			b.profiles.SetBio(ctx, userID, msg.Text))

	case stepEditSocial:
		if msg.IsCommand() && msg.Command() == "skip" {
			b.states.Delete(userID)
			b.reply(chatID, "✅ Ссылка на соцсеть осталась без изменений")
			return
		}
		err := b.profiles.SetSocialLink(ctx, userID, msg.Text)
		if errors.Is(err, apperror.ErrInvalidInput) {
			// stay in this step
			b.reply(chatID, "❌ Некорректная ссылка! Попробуйте еще раз.")
			return
		}
		b.finishEdit(ctx, chatID, userID, "✅ Ссылка на соцсеть обновлена!", err)

	case stepCreateName:
		st.draft.Name = msg.Text
		st.step = stepCreateProfession
		b.states.Set(userID, st)
		b.reply(chatID, "💼 Кем вы работаете?")

	case stepCreateProfession:
		st.draft.Profession = msg.Text
		st.step = stepCreateSkills
		b.states.Set(userID, st)
		b.reply(chatID, "🛠 Перечислите ваши навыки (через запятую):")

	case stepCreateSkills:
		st.draft.Skills = msg.Text
		st.step = stepCreateBio
		b.states.Set(userID, st)
		b.reply(chatID, "📖 Расскажите немного о себе:")

	case stepCreateBio:
		st.draft.Bio = msg.Text
		b.states.Delete(userID)
		if err := b.profiles.Create(ctx, &st.draft); err != nil {
			b.logger.Error("Failed to create profile", err, zap.Int64("user_id", userID))
			b.reply(chatID, "⚠️ Не удалось сохранить профиль. Попробуйте позже.")
			return
		}
		reply := tgbotapi.NewMessage(chatID, "✅ Профиль создан! Теперь вы в поиске.")
		reply.ReplyMarkup = mainMenuKeyboard()
		b.send(reply)

	case stepWorkTitle:
		st.workTitle = msg.Text
		st.step = stepWorkDescription
		b.states.Set(userID, st)
		b.reply(chatID, "📝 Добавьте описание работы:")

	case stepWorkDescription:
		b.states.Delete(userID)
		if _, err := b.works.Add(ctx, userID, st.workTitle, msg.Text); err != nil {
			if errors.Is(err, apperror.ErrPermission) {
				b.reply(chatID, "💎 Добавление работ доступно только премиум-пользователям.")
				return
			}
			b.logger.Error("Failed to add work", err, zap.Int64("user_id", userID))
			b.reply(chatID, "⚠️ Не удалось сохранить работу. Попробуйте позже.")
			return
		}
		b.reply(chatID, "✅ Работа добавлена в портфолио!")

	default:
		// stepEditMenu expects a button press, not text
		b.reply(chatID, "Выберите поле кнопкой выше или /cancel.")
	}
}

func (b *Bot) finishEdit(ctx context.Context, chatID, userID int64, successText string, err error) {
	b.states.Delete(userID)
	if err != nil {
		b.logger.Error("Failed to update profile field", err, zap.Int64("user_id", userID))
		b.reply(chatID, "⚠️ Не удалось сохранить изменения. Попробуйте позже.")
		return
	}
	b.reply(chatID, successText)
}

func (b *Bot) startAddWork(ctx context.Context, chatID, userID int64) {
	active, err := b.subs.IsActive(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to check subscription", err, zap.Int64("user_id", userID))
		b.reply(chatID, "⚠️ Ошибка. Попробуйте позже.")
		return
	}
	if !active {
		b.reply(chatID, "💎 Добавление работ доступно только премиум-пользователям. Используйте /premium")
		return
	}
	b.states.Set(userID, &conversation{step: stepWorkTitle})
	b.reply(chatID, "🎨 Введите название работы:")
}

func (b *Bot) showOwnProfile(ctx context.Context, chatID, userID int64) {
	p, err := b.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			b.reply(chatID, "❌ Профиль не найден. Используйте команду /profile для создания")
			return
		}
		b.logger.Error("Failed to load profile", err, zap.Int64("user_id", userID))
		b.reply(chatID, "⚠️ Ошибка отображения профиля")
		return
	}

	var works []work.Work
	if p.IsPremium {
		works, err = b.works.ListByOwner(ctx, userID)
		if err != nil {
			b.logger.Error("Failed to load works", err, zap.Int64("user_id", userID))
			works = nil
		}
	}

	kb := ownProfileKeyboard()
	b.sendProfileCard(chatID, p, works, &kb)
}

func (b *Bot) sendProfileCard(chatID int64, p *profile.Profile, works []work.Work, kb *tgbotapi.InlineKeyboardMarkup) {
	text := profileText(p, works)

	if p.PhotoID != nil && *p.PhotoID != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(*p.PhotoID))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeMarkdown
		if kb != nil {
			photo.ReplyMarkup = *kb
		}
		b.send(photo)
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	b.send(msg)
}

func (b *Bot) startSearch(ctx context.Context, chatID, userID int64) {
	candidate, err := b.matches.StartSearch(ctx, userID)
	b.showCandidate(ctx, chatID, candidate, err)
}

func (b *Bot) showNextCandidate(ctx context.Context, chatID, userID int64) {
	candidate, err := b.matches.Next(ctx, userID)
	b.showCandidate(ctx, chatID, candidate, err)
}

func (b *Bot) showCandidate(ctx context.Context, chatID int64, p *profile.Profile, err error) {
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			b.reply(chatID, "🌟 Больше нет профилей для показа. Попробуйте позже!")
			return
		}
		b.logger.Error("Failed to pick next candidate", err, zap.Int64("chat_id", chatID))
		b.reply(chatID, "⚠️ Ошибка отображения профиля")
		return
	}

	kb := candidateKeyboard(p.UserID)
	b.sendProfileCard(chatID, p, nil, &kb)
}

func (b *Bot) showConnections(ctx context.Context, chatID, userID int64) {
	peers, err := b.conns.List(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to list connections", err, zap.Int64("user_id", userID))
		b.reply(chatID, "⚠️ Ошибка. Попробуйте позже.")
		return
	}

	if len(peers) == 0 {
		b.reply(chatID, "🤷 У вас пока нет связей. Используйте поиск!")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🤝 *Ваши связи:*")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = connectionsKeyboard(peers)
	b.send(msg)
}

func (b *Bot) handlePremium(ctx context.Context, chatID, userID int64) {
	active, err := b.subs.IsActive(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to check subscription", err, zap.Int64("user_id", userID))
		b.reply(chatID, "⚠️ Ошибка. Попробуйте позже.")
		return
	}
	if active {
		b.reply(chatID, "✅ У вас уже есть активная премиум подписка!")
		return
	}

	msg := tgbotapi.NewMessage(chatID, premiumPitchText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = premiumKeyboard()
	b.send(msg)
}
