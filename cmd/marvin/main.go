// Package main contains the entrypoint for the Marvin bridge bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/boilerplate"
	"github.com/fen0x/marvin/internal/bot"
	"github.com/fen0x/marvin/internal/bot/handlers"
	"github.com/fen0x/marvin/internal/config"
	"github.com/fen0x/marvin/internal/database"
	"github.com/fen0x/marvin/internal/fetcher"
	"github.com/fen0x/marvin/internal/logger"
	"github.com/fen0x/marvin/internal/reddit"
	"github.com/fen0x/marvin/internal/rules"
	"github.com/fen0x/marvin/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// db, reddit client, telegram bot, relay, janitor), handles graceful
// shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.json", "Path to configuration file")
	rulesPath := flag.String("rules", "", "Path to the removal rule file (overrides config)")
	commentPath := flag.String("comment", "", "Path to the boilerplate comment template (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}
	if *rulesPath != "" {
		cfg.RulesPath = *rulesPath
	}
	if *commentPath != "" {
		cfg.CommentTemplatePath = *commentPath
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	ruleTable, err := rules.Load(cfg.RulesPath)
	if err != nil {
		log.Error("Failed to load removal rules", "path", cfg.RulesPath, "error", err)
		return 1
	}
	log.Info("Removal rules loaded", "count", ruleTable.Len())

	commentTemplate, err := boilerplate.Load(cfg.CommentTemplatePath)
	if err != nil {
		log.Error("Failed to load comment template", "path", cfg.CommentTemplatePath, "error", err)
		return 1
	}

	redditClient, err := reddit.NewClient(reddit.Credentials{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
		UserAgent:    cfg.Reddit.UserAgent,
	}, cfg.Bot.RequestTimeout, log)
	if err != nil {
		log.Error("Failed to create reddit client", "error", err)
		return 1
	}

	pageFetcher, err := fetcher.New(ctx, store, cfg.Bot.RequestTimeout, log)
	if err != nil {
		log.Error("Failed to create page fetcher", "error", err)
		return 1
	}

	// The default handler needs the fully assembled dependencies, but
	// those include the bot's own id which is only known after GetMe.
	// The closure below observes hDeps once assembled; registration
	// happens before the bot starts consuming updates.
	var hDeps handlers.HandlerDeps
	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			handlers.NewDefaultHandler(hDeps)(ctx, b, update)
		}),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.LoginToken, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	janitor, err := bot.NewJanitor(tg, cfg.Bot.RequestTimeout, log)
	if err != nil {
		log.Error("Failed to create deletion janitor", "error", err)
		return 1
	}

	hDeps = handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Store:      store,
		Reddit:     redditClient,
		Fetcher:    pageFetcher,
		Rules:      ruleTable,
		Comment:    commentTemplate,
		AdminCache: telegram.NewAdminCache(me.ID, cfg.Bot.AdminCacheTTL),
		Janitor:    janitor,
	}

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	stream := reddit.NewStream(redditClient, cfg.Reddit.SubredditName, cfg.Bot.StreamPollInterval, log)
	relay := bot.NewRelay(log, cfg, tg, stream, store)

	app := bot.NewBot(log, cfg, db, store, tg, relay, janitor)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
