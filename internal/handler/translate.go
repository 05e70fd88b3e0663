package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/leafwise/florabot/internal/config"
	"github.com/leafwise/florabot/internal/domain"
	tg "github.com/leafwise/florabot/internal/telegram"
)

// handleTranslate toggles the translation overlay of the bot message the
// button is attached to, editing the message in place. A failed
// translation keeps the original text visible and only raises an alert.
func (h *Handler) handleTranslate(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	id := strings.TrimPrefix(cb.Data, "tr_")
	chatID := cb.Message.Message.Chat.ID
	sess := h.sessions.Get(chatID)

	reqCtx, cancel := context.WithTimeout(ctx, config.TranslateTimeout)
	defer cancel()

	result, err := sess.Translate(reqCtx, id)
	switch {
	case errors.Is(err, domain.ErrTranslationPending):
		answerCallback(ctx, b, cb.ID, "⏳ Another translation is still in progress.")
		return
	case errors.Is(err, domain.ErrMessageNotFound):
		answerCallback(ctx, b, cb.ID, "This message is no longer part of the conversation.")
		return
	case err != nil:
		slog.Error("translate message", "error", err, "chat_id", chatID, "message_id", id)
		answerCallback(ctx, b, cb.ID, "❌ Translation failed, showing the original.")
		return
	}

	label := "🌐 Translate"
	if result.ShowingTranslation {
		label = "🌐 Show original"
	}
	markup := tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton(label, "tr_"+id)),
	)
	if err := tg.EditRendered(ctx, b, chatID, cb.Message.Message.ID, result.Text, markup); err != nil {
		slog.Warn("edit translated message", "error", err, "chat_id", chatID)
	}
	answerCallback(ctx, b, cb.ID, "")
}
