package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"

	"github.com/leafwise/florabot/internal/config"
	"github.com/leafwise/florabot/internal/gemini"
	"github.com/leafwise/florabot/internal/handler"
	"github.com/leafwise/florabot/internal/middleware"
	"github.com/leafwise/florabot/internal/prompts"
	"github.com/leafwise/florabot/internal/session"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, closeLogger := config.SetupLogger(cfg.LogFile, config.ParseLogLevel(cfg.LogLevel))
	defer closeLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("failed to create generation backend", "error", err)
		os.Exit(1)
	}

	table := prompts.Table{}
	sessions, err := session.NewRegistry(cfg.MaxSessions, func() *session.Session {
		return session.New(backend, table, cfg.PreviewDir)
	})
	if err != nil {
		slog.Error("failed to create session registry", "error", err)
		os.Exit(1)
	}

	// Handler pointer for use in the default handler closure.
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			h.HandleChat(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true})
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	h = handler.New(handler.Deps{
		Bot:      b,
		Sessions: sessions,
	})
	h.Register()

	slog.Info("starting bot", "username", me.Username, "id", me.ID, "model", backend.Name())
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
