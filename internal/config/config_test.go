package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fen0x/marvin/internal/config"
)

const validConfig = `{
	"reddit": {
		"client_id": "id",
		"client_secret": "secret",
		"user_agent": "marvin test agent",
		"username": "marvinbot",
		"password": "hunter2",
		"subreddit_name": "test",
		"title_prefix": "TG-"
	},
	"telegram": {
		"login_token": "123:abc",
		"authorized_group_id": -1001234,
		"admin_group_id": -1005678,
		"tg_group": "testgroup"
	}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Reddit.SubredditName != "test" {
		t.Errorf("SubredditName = %q, want %q", cfg.Reddit.SubredditName, "test")
	}
	if cfg.Telegram.AuthorizedGroupID != -1001234 {
		t.Errorf("AuthorizedGroupID = %d, want -1001234", cfg.Telegram.AuthorizedGroupID)
	}
	if cfg.Bot.RequestTimeout != config.DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want default %v", cfg.Bot.RequestTimeout, config.DefaultRequestTimeout)
	}
	if cfg.Bot.Messages.NotAdmin == "" {
		t.Error("default message for NotAdmin is empty")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("LoadConfig() with missing file did not return an error")
	}
}

func TestLoadConfigMissingCredentials(t *testing.T) {
	path := writeConfig(t, `{
		"reddit": {"subreddit_name": "test"},
		"telegram": {"login_token": "123:abc", "authorized_group_id": -1, "tg_group": "g"}
	}`)

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() with missing reddit credentials did not return an error")
	}
}
