package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/leafwise/florabot/internal/domain"
	"github.com/leafwise/florabot/internal/prompts"
	tg "github.com/leafwise/florabot/internal/telegram"
)

const welcomeText = "👋 Hello! I'm Flora, your AI gardening assistant.\n\n" +
	"Upload a photo of a plant to identify it, or ask me any gardening question. " +
	"Pick a mode to start a conversation:"

var modeLabels = map[domain.Mode]string{
	domain.ModeIdentify: "🔍 Identify a plant",
	domain.ModeDiagnose: "🩺 Diagnose a problem",
	domain.ModeCare:     "🌿 Care guide",
	domain.ModeExpert:   "💬 Ask an expert",
}

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sess := h.sessions.Get(chatID)
	sess.NavigateLanding()

	h.sendLanding(ctx, b, chatID, welcomeText)
}

func (h *Handler) sendLanding(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: landingKeyboard(),
	})
}

func landingKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton(modeLabels[domain.ModeIdentify], "mode_"+string(domain.ModeIdentify)),
			tg.InlineButton(modeLabels[domain.ModeDiagnose], "mode_"+string(domain.ModeDiagnose)),
		),
		tg.ButtonRow(
			tg.InlineButton(modeLabels[domain.ModeCare], "mode_"+string(domain.ModeCare)),
			tg.InlineButton(modeLabels[domain.ModeExpert], "mode_"+string(domain.ModeExpert)),
		),
		tg.ButtonRow(
			tg.InlineButton("🌐 Language", "lang_menu"),
		),
	)
}

func (h *Handler) handleModeSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	mode := domain.Mode(strings.TrimPrefix(cb.Data, "mode_"))
	if !mode.Valid() {
		answerCallback(ctx, b, cb.ID, "")
		return
	}
	chatID := cb.Message.Message.Chat.ID

	sess := h.sessions.Get(chatID)
	if sess.View() == domain.ViewLanding {
		sess.SelectMode(mode)
	} else {
		sess.Navigate(mode)
	}
	answerCallback(ctx, b, cb.ID, "")

	intro := prompts.Intro(mode, sess.Language())
	if sess.CurrentAttachment() != nil {
		intro += attachedHint(sess.Language())
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   intro,
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("⬅️ Menu", "home")),
		),
	})
}

func (h *Handler) handleHome(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	chatID := cb.Message.Message.Chat.ID

	sess := h.sessions.Get(chatID)
	sess.NavigateLanding()
	answerCallback(ctx, b, cb.ID, "")

	h.sendLanding(ctx, b, chatID, welcomeText)
}

func attachedHint(l domain.Language) string {
	if l == domain.LanguageSpanish {
		return "\n\n📎 Tu foto sigue adjunta. Envía un mensaje para usarla."
	}
	return "\n\n📎 Your photo is still attached. Send a message to use it."
}
