package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/leafwise/florabot/internal/domain"
	tg "github.com/leafwise/florabot/internal/telegram"
)

func (h *Handler) handleLanguage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendLanguageMenu(ctx, b, update.Message.Chat.ID)
}

func (h *Handler) sendLanguageMenu(ctx context.Context, b *bot.Bot, chatID int64) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🌐 Choose the language for my answers. Your conversation is kept.",
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("🇬🇧 English", "lang_"+string(domain.LanguageEnglish)),
				tg.InlineButton("🇪🇸 Español", "lang_"+string(domain.LanguageSpanish)),
			),
		),
	})
}

func (h *Handler) handleLanguageSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	chatID := cb.Message.Message.Chat.ID

	if cb.Data == "lang_menu" {
		answerCallback(ctx, b, cb.ID, "")
		h.sendLanguageMenu(ctx, b, chatID)
		return
	}

	lang := domain.Language(strings.TrimPrefix(cb.Data, "lang_"))
	if lang != domain.LanguageEnglish && lang != domain.LanguageSpanish {
		answerCallback(ctx, b, cb.ID, "")
		return
	}

	sess := h.sessions.Get(chatID)
	sess.SetLanguage(lang)
	answerCallback(ctx, b, cb.ID, "")

	confirmation := "✅ I'll answer in English from now on."
	if lang == domain.LanguageSpanish {
		confirmation = "✅ A partir de ahora responderé en español."
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   confirmation,
	})
}
