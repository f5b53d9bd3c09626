// Package bot implements the core bot lifecycle: the Telegram listener,
// the Notification Relay, and the deletion janitor run side by side
// until shutdown.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/fen0x/marvin/internal/config"
	"github.com/fen0x/marvin/internal/database"
)

// Bot represents the main application and manages its components' lifecycle.
type Bot struct {
	logger  *slog.Logger
	cfg     *config.Config
	db      *sqlx.DB
	store   database.Store
	tgBot   *tgbot.Bot
	relay   *Relay
	janitor *Janitor
}

// NewBot creates a new instance of the bot with all required dependencies.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	db *sqlx.DB,
	store database.Store,
	tgBot *tgbot.Bot,
	relay *Relay,
	janitor *Janitor,
) *Bot {
	return &Bot{
		logger:  logger.With("component", "bot_orchestrator"),
		cfg:     cfg,
		db:      db,
		store:   store,
		tgBot:   tgBot,
		relay:   relay,
		janitor: janitor,
	}
}

// Run starts the bot and all its components, handling graceful shutdown
// on context cancellation. It returns an error if any component fails
// during startup or execution.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		if err := b.relay.Run(gCtx); err != nil && !errors.Is(err, context.Canceled) {
			b.logger.Error("Notification relay failed", "error", err)
			return fmt.Errorf("notification relay failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		b.janitor.Start()

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping janitor...")

		if err := b.janitor.Stop(); err != nil {
			b.logger.Error("Error stopping janitor", "error", err)
		}
		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
