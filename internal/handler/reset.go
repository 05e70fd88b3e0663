package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleReset clears the conversation and returns to the landing menu.
func (h *Handler) handleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess := h.sessions.Get(chatID)
	sess.NavigateLanding()

	h.sendLanding(ctx, b, chatID, "🔄 Conversation cleared. Pick a mode to start again:")
}

// handleCancel discards the pending photo attachment, if any.
func (h *Handler) handleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess := h.sessions.Get(chatID)
	if sess.CurrentAttachment() == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Nothing is attached right now.",
		})
		return
	}
	sess.ClearAttachment()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🗑 Attachment discarded.",
	})
}
