// Package boilerplate renders the comment template attached to every
// bot-created submission.
package boilerplate

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Placeholder tokens substituted verbatim into the template.
const (
	tokenMessageID = "{TG_MSG_ID}"
	tokenSubreddit = "{SUBREDDIT}"
	tokenGroup     = "{TG_GROUP}"
)

// Template holds the raw boilerplate comment text loaded at startup.
type Template struct {
	raw string
}

// Load reads the template file. A missing file aborts startup.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read comment template %s: %w", path, err)
	}
	return &Template{raw: string(data)}, nil
}

// New wraps raw template text, for tests and callers that already hold it.
func New(raw string) *Template {
	return &Template{raw: raw}
}

// Render substitutes the placeholder tokens. messageID zero renders the
// {TG_MSG_ID} token as an empty string; otherwise it becomes "/<id>" so
// the surrounding t.me link resolves to the originating message.
func (t *Template) Render(messageID int, subreddit, group string) string {
	msgToken := ""
	if messageID != 0 {
		msgToken = "/" + strconv.Itoa(messageID)
	}

	out := strings.ReplaceAll(t.raw, tokenMessageID, msgToken)
	out = strings.ReplaceAll(out, tokenSubreddit, subreddit)
	out = strings.ReplaceAll(out, tokenGroup, group)
	return out
}
