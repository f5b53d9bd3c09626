package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-co-op/gocron/v2"

	"github.com/fen0x/marvin/internal/telegram"
)

// Janitor performs delayed best-effort message deletions as one-shot
// scheduled jobs. Pending jobs are dropped on shutdown, so a deletion
// whose delay has not elapsed when the process exits simply never
// happens.
type Janitor struct {
	scheduler gocron.Scheduler
	api       telegram.API
	logger    *slog.Logger
	timeout   time.Duration

	mu      sync.Mutex
	running bool
}

// NewJanitor creates a janitor over the given chat API. The timeout
// bounds each individual delete call.
func NewJanitor(api telegram.API, timeout time.Duration, logger *slog.Logger) (*Janitor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Janitor{
		scheduler: s,
		api:       api,
		logger:    logger.With("component", "janitor"),
		timeout:   timeout,
	}, nil
}

// Start begins processing scheduled deletions.
func (j *Janitor) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return
	}
	j.scheduler.Start()
	j.running = true
	j.logger.Debug("Janitor started")
}

// Stop shuts the scheduler down, cancelling any pending deletions.
func (j *Janitor) Stop() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return nil
	}
	j.running = false

	if err := j.scheduler.Shutdown(); err != nil {
		j.logger.Error("Error during janitor shutdown", "error", err)
		return err
	}
	j.logger.Debug("Janitor stopped")
	return nil
}

// ScheduleDelete arranges for the message to be deleted after delay.
// The deletion is fire-and-forget: failures are logged, never surfaced.
func (j *Janitor) ScheduleDelete(chatID int64, messageID int, delay time.Duration) {
	_, err := j.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(time.Now().Add(delay))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
			defer cancel()

			if _, err := j.api.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
				ChatID:    chatID,
				MessageID: messageID,
			}); err != nil {
				j.logger.Warn("Failed to delete message", "chat_id", chatID, "message_id", messageID, "error", err)
			}
		}),
	)
	if err != nil {
		j.logger.Warn("Failed to schedule message deletion", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}
