package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const MaxMessageLen = 4096

// SendRendered sends assistant text rendered as Telegram HTML, splitting
// long replies. The reply markup goes on the last part, and only when the
// reply fits a single message does it stay attached to the full text (the
// translate toggle edits the message it is attached to). Falls back to
// plain text if HTML parsing fails.
func SendRendered(ctx context.Context, b *bot.Bot, chatID int64, text string, replyMarkup models.ReplyMarkup) (*models.Message, error) {
	parts := SplitMessage(RenderHTML(text), MaxMessageLen)

	var last *models.Message
	for i, part := range parts {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      part,
			ParseMode: models.ParseModeHTML,
		}
		if replyMarkup != nil && i == len(parts)-1 && len(parts) == 1 {
			params.ReplyMarkup = replyMarkup
		}

		msg, err := b.SendMessage(ctx, params)
		if err != nil {
			slog.Warn("html send failed, falling back to plain text", "error", err)
			params.ParseMode = ""
			params.Text = part
			msg, err = b.SendMessage(ctx, params)
			if err != nil {
				return nil, fmt.Errorf("send message: %w", err)
			}
		}
		last = msg
	}

	return last, nil
}

// EditRendered replaces a previously sent message with newly rendered
// text, keeping the given markup attached.
func EditRendered(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, replyMarkup models.ReplyMarkup) error {
	rendered := RenderHTML(text)
	if len([]rune(rendered)) > MaxMessageLen {
		rendered = string([]rune(rendered)[:MaxMessageLen-3]) + "..."
	}

	params := &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        rendered,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: replyMarkup,
	}

	_, err := b.EditMessageText(ctx, params)
	if err != nil {
		params.ParseMode = ""
		_, err = b.EditMessageText(ctx, params)
	}
	return err
}

// StartTyping sends the typing action every 4 seconds until the returned
// cancel function is called.
func StartTyping(ctx context.Context, b *bot.Bot, chatID int64) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(4 * time.Second)
		defer ticker.Stop()
		b.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatActionTyping,
		})
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.SendChatAction(ctx, &bot.SendChatActionParams{
					ChatID: chatID,
					Action: models.ChatActionTyping,
				})
			}
		}
	}()
	return cancel
}
