package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/fen0x/marvin/internal/boilerplate"
	"github.com/fen0x/marvin/internal/config"
	"github.com/fen0x/marvin/internal/database"
	"github.com/fen0x/marvin/internal/reddit"
	"github.com/fen0x/marvin/internal/rules"
	"github.com/fen0x/marvin/internal/telegram"
)

// RedditClient is the content-platform surface the workflows need.
type RedditClient interface {
	Submission(ctx context.Context, id string) (*reddit.Submission, error)
	SubmitLink(ctx context.Context, subreddit, title, link string) (*reddit.Submission, error)
	SubmitText(ctx context.Context, subreddit, title, text string) (*reddit.Submission, error)
	Comment(ctx context.Context, parentFullName, text string) (*reddit.Comment, error)
	DistinguishSticky(ctx context.Context, commentFullName string) error
	Remove(ctx context.Context, fullName string) error
	Lock(ctx context.Context, fullName string) error
}

// TitleFetcher resolves page titles for link posts.
type TitleFetcher interface {
	PageTitle(ctx context.Context, pageURL string) (string, error)
}

// DeleteScheduler schedules best-effort delayed message deletions.
type DeleteScheduler interface {
	ScheduleDelete(chatID int64, messageID int, delay time.Duration)
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      database.Store
	Reddit     RedditClient
	Fetcher    TitleFetcher
	Rules      *rules.Table
	Comment    *boilerplate.Template
	AdminCache *telegram.AdminCache
	Janitor    DeleteScheduler
}
