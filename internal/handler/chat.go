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
	"github.com/leafwise/florabot/internal/prompts"
	"github.com/leafwise/florabot/internal/session"
	tg "github.com/leafwise/florabot/internal/telegram"
)

// HandleChat processes a conversation turn: an optional photo routed
// through the attachment manager, then the text (or caption) sent through
// the session engine.
func (h *Handler) HandleChat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}
	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}
	chatID := msg.Chat.ID
	sess := h.sessions.Get(chatID)

	if len(msg.Photo) > 0 {
		// Highest resolution variant is last.
		photo := msg.Photo[len(msg.Photo)-1]
		if !h.attachFile(ctx, b, sess, chatID, photo.FileID) {
			return
		}
	} else if msg.Document != nil {
		if !h.attachFile(ctx, b, sess, chatID, msg.Document.FileID) {
			return
		}
	}

	text := msg.Text
	if msg.Caption != "" {
		text = msg.Caption
	}

	if sess.View() == domain.ViewLanding {
		notice := welcomeText
		if sess.CurrentAttachment() != nil {
			notice = "📎 Photo saved. Pick a mode and I'll take a look:"
		}
		h.sendLanding(ctx, b, chatID, notice)
		return
	}

	if strings.TrimSpace(text) == "" && sess.CurrentAttachment() != nil {
		text = prompts.PhotoPrompt(sess.Language())
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	result, err := sess.Send(reqCtx, text)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return
	case errors.Is(err, domain.ErrRequestInFlight):
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⏳ Please wait for the reply to your previous message.",
		})
		return
	case errors.Is(err, domain.ErrConversationReset):
		// The user switched modes or went back to the menu while the
		// reply was being generated; it belongs to the old conversation.
		slog.Debug("reply dropped after reset", "chat_id", chatID)
		return
	case err != nil:
		slog.Error("send turn", "error", err, "chat_id", chatID)
		return
	}

	markup := tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("🌐 Translate", "tr_"+result.Bot.ID)),
	)
	if _, err := tg.SendRendered(ctx, b, chatID, result.Bot.Text, markup); err != nil {
		slog.Error("send reply", "error", err, "chat_id", chatID)
	}
}

// attachFile downloads a Telegram file into the session's attachment
// manager. Returns false when the turn should stop (download or type
// failure already reported to the user).
func (h *Handler) attachFile(ctx context.Context, b *bot.Bot, sess *session.Session, chatID int64, fileID string) bool {
	data, mimeType, name, err := tg.DownloadFile(ctx, b, fileID, config.MaxAttachmentBytes)
	if err != nil {
		slog.Error("download attachment", "error", err, "chat_id", chatID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ I couldn't download that file. Please try again.",
		})
		return false
	}
	if _, err := sess.Attach(data, mimeType, name); err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "📎 I can only look at images. Please send a photo.",
			})
		} else {
			slog.Error("attach file", "error", err, "chat_id", chatID)
		}
		return false
	}
	return true
}
