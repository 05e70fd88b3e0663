package handler

import "github.com/go-telegram/bot"

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/menu", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/language", bot.MatchTypePrefix, h.handleLanguage)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypePrefix, h.handleReset)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, h.handleCancel)

	// Mode selection
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "mode_", bot.MatchTypePrefix, h.handleModeSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "home", bot.MatchTypeExact, h.handleHome)

	// Language selection
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "lang_", bot.MatchTypePrefix, h.handleLanguageSelect)

	// Per-message translation toggle
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tr_", bot.MatchTypePrefix, h.handleTranslate)

	// Note: plain text and photo messages are routed to HandleChat via the
	// default handler in main.go.
}
