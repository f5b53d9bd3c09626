// Package config loads and validates the application configuration from
// the JSON config file, with environment variable overrides and defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// RedditConfig holds the credentials and subreddit settings for the
// content platform.
type RedditConfig struct {
	ClientID      string `mapstructure:"client_id"      validate:"required"`
	ClientSecret  string `mapstructure:"client_secret"  validate:"required"`
	UserAgent     string `mapstructure:"user_agent"     validate:"required"`
	Username      string `mapstructure:"username"       validate:"required"`
	Password      string `mapstructure:"password"       validate:"required"`
	SubredditName string `mapstructure:"subreddit_name" validate:"required"`
	TitlePrefix   string `mapstructure:"title_prefix"`
}

// TelegramConfig holds the chat platform settings. AuthorizedGroupID is
// the single group where mutating commands are accepted; AdminGroupID
// may be zero to disable the full admin notifications.
type TelegramConfig struct {
	LoginToken        string `mapstructure:"login_token"         validate:"required"`
	AuthorizedGroupID int64  `mapstructure:"authorized_group_id" validate:"required"`
	AdminGroupID      int64  `mapstructure:"admin_group_id"`
	TGGroup           string `mapstructure:"tg_group"            validate:"required"`
}

// LoggerConfig controls structured logging output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DatabaseConfig locates the SQLite file backing the suppression set
// and the cookie cache.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// BotConfig groups operational knobs and every user-facing message
// string, all overridable from the config file.
type BotConfig struct {
	RequestTimeout     time.Duration `mapstructure:"request_timeout"      validate:"min=1s,max=5m"`
	DeleteDelay        time.Duration `mapstructure:"delete_delay"         validate:"max=5m"`
	AdminCacheTTL      time.Duration `mapstructure:"admin_cache_ttl"      validate:"min=1s"`
	StreamPollInterval time.Duration `mapstructure:"stream_poll_interval" validate:"min=1s,max=10m"`

	Messages Messages `mapstructure:"messages"`
}

// Messages holds all user-facing texts. Defaults live in defaults.go;
// the %-verbs are filled in by the handlers.
type Messages struct {
	Welcome         string `mapstructure:"welcome"`
	WrongGroup      string `mapstructure:"wrong_group"`
	NeedReply       string `mapstructure:"need_reply"`
	NotAdmin        string `mapstructure:"not_admin"`
	NoLink          string `mapstructure:"no_link"`
	MultipleLinks   string `mapstructure:"multiple_links"`
	NotHTTP         string `mapstructure:"not_http"`
	NoPageTitle     string `mapstructure:"no_page_title"`
	NoTitle         string `mapstructure:"no_title"`
	ShortTitle      string `mapstructure:"short_title"`
	InvalidLink     string `mapstructure:"invalid_link"`
	WrongSubreddit  string `mapstructure:"wrong_subreddit"`
	PostLocked      string `mapstructure:"post_locked"`
	NoRuleNumber    string `mapstructure:"no_rule_number"`
	InvalidRule     string `mapstructure:"invalid_rule"`
	UnknownRule     string `mapstructure:"unknown_rule"`
	CommentAdded    string `mapstructure:"comment_added"`
	PostCreated     string `mapstructure:"post_created"`
	PostDeleted     string `mapstructure:"post_deleted"`
	SetUsernameHint string `mapstructure:"set_username_hint"`
	GeneralError    string `mapstructure:"general_error"`
	RemovalPreamble string `mapstructure:"removal_preamble"`
	RemovalModmail  string `mapstructure:"removal_modmail"`
}

// Config is the immutable process-wide configuration record.
type Config struct {
	Reddit   RedditConfig   `mapstructure:"reddit"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Database DatabaseConfig `mapstructure:"database"`
	Bot      BotConfig      `mapstructure:"bot"`

	// Paths to the companion content files, overridable via flags.
	CommentTemplatePath string `mapstructure:"comment_template_path" validate:"required"`
	RulesPath           string `mapstructure:"rules_path"            validate:"required"`
}

// LoadConfig reads the JSON config file at path, applies MARVIN_*
// environment overrides and defaults, and validates the result. A
// missing config file is a fatal startup error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetEnvPrefix("MARVIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
