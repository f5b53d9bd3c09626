package database

import "time"

// CreatedPost records a submission id the bot itself created. The
// Notification Relay consumes these entries to suppress self-notification.
type CreatedPost struct {
	PostID    string    `db:"post_id"`
	CreatedAt time.Time `db:"created_at"`
}

// CookieBlob persists the serialized cookies of one host from the web
// fetcher's session, restored on the next cold start.
type CookieBlob struct {
	Host      string    `db:"host"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}
