package telegram

import (
	"context"
	"sync"
	"time"
)

// AdminCache remembers whether the bot holds admin rights in a chat.
// Entries are populated lazily on first use and expire after the TTL,
// so a rights change is picked up within one TTL window. The cache is
// shared between concurrently running handlers and must stay
// mutex-protected.
type AdminCache struct {
	botID int64
	ttl   time.Duration

	mu      sync.Mutex
	entries map[int64]adminEntry
}

type adminEntry struct {
	isAdmin bool
	expires time.Time
}

// NewAdminCache creates a cache for the given bot identity.
func NewAdminCache(botID int64, ttl time.Duration) *AdminCache {
	return &AdminCache{
		botID:   botID,
		ttl:     ttl,
		entries: make(map[int64]adminEntry),
	}
}

// BotIsAdmin reports whether the bot is an administrator in the chat,
// consulting the cache first and querying the chat platform on a miss
// or an expired entry.
func (c *AdminCache) BotIsAdmin(ctx context.Context, api API, chatID int64) (bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[chatID]
	c.mu.Unlock()

	if ok && time.Now().Before(entry.expires) {
		return entry.isAdmin, nil
	}

	isAdmin, err := IsChatAdmin(ctx, api, chatID, c.botID)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.entries[chatID] = adminEntry{isAdmin: isAdmin, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return isAdmin, nil
}
