package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"github.com/fen0x/marvin/internal/config"
	"github.com/fen0x/marvin/internal/database"
	"github.com/fen0x/marvin/internal/reddit"
	"github.com/fen0x/marvin/internal/telegram"
)

// SubmissionStream delivers newly created subreddit submissions for the
// lifetime of the context.
type SubmissionStream interface {
	Submissions(ctx context.Context) <-chan reddit.Submission
}

// Relay converts newly observed subreddit submissions into Telegram
// notifications. Submissions the bot itself created are announced only
// to the admin group; the authorized group already received a
// confirmation from the workflow that created them.
type Relay struct {
	logger *slog.Logger
	cfg    *config.Config
	api    telegram.API
	stream SubmissionStream
	store  database.Store
}

// NewRelay creates the notification relay.
func NewRelay(logger *slog.Logger, cfg *config.Config, api telegram.API, stream SubmissionStream, store database.Store) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		logger: logger.With("component", "relay"),
		cfg:    cfg,
		api:    api,
		stream: stream,
		store:  store,
	}
}

// Run consumes the stream until the context is cancelled. One bad
// submission never terminates the relay; its failure is logged and the
// next item is processed.
func (r *Relay) Run(ctx context.Context) error {
	r.logger.Info("Notification relay started")

	for submission := range r.stream.Submissions(ctx) {
		r.handle(ctx, submission)
	}

	r.logger.Info("Notification relay stopped")
	return ctx.Err()
}

func (r *Relay) handle(ctx context.Context, submission reddit.Submission) {
	log := r.logger.With("post_id", submission.ID)

	// The admin group gets the full notification for every new
	// submission, self-created or not.
	if r.cfg.Telegram.AdminGroupID != 0 {
		full := fmt.Sprintf("%s\nPosted by: %s\n%s",
			submission.Title, submission.Author, submission.Shortlink())
		if _, err := r.api.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: r.cfg.Telegram.AdminGroupID,
			Text:   full,
		}); err != nil {
			log.ErrorContext(ctx, "Failed to send admin notification", "error", err)
		}
	}

	created, err := r.store.ConsumeCreatedPost(ctx, submission.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check suppression set, notifying anyway", "error", err)
	}
	if created {
		log.DebugContext(ctx, "Suppressed notification for self-created post")
		return
	}

	abbreviated := submission.Title + "\n" + submission.Shortlink()
	if _, err := r.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: r.cfg.Telegram.AuthorizedGroupID,
		Text:   abbreviated,
	}); err != nil {
		log.ErrorContext(ctx, "Failed to send group notification", "error", err)
	}
}
