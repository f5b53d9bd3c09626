// Package links extracts and validates URLs from Telegram message entities.
package links

import (
	"errors"
	"net/url"
	"unicode/utf16"

	"github.com/go-telegram/bot/models"
)

var (
	// ErrNoLink indicates the message carried no URL entity.
	ErrNoLink = errors.New("no link found in message")
	// ErrMultipleLinks indicates the message carried more than one URL entity.
	ErrMultipleLinks = errors.New("multiple links found in message")
	// ErrUnsupportedScheme indicates a URL scheme other than http or https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)

// Extract returns the single URL referenced by the message's entities.
// Both plain "url" entities and "text_link" entities count. Zero matches
// yield ErrNoLink, more than one yield ErrMultipleLinks; ambiguity is
// never resolved on behalf of the user.
func Extract(msg *models.Message) (string, error) {
	if msg == nil {
		return "", ErrNoLink
	}

	var found []string
	for _, entity := range msg.Entities {
		switch entity.Type {
		case models.MessageEntityTypeURL:
			found = append(found, entityText(msg.Text, entity))
		case models.MessageEntityTypeTextLink:
			found = append(found, entity.URL)
		}
	}

	switch len(found) {
	case 0:
		return "", ErrNoLink
	case 1:
		return found[0], nil
	default:
		return "", ErrMultipleLinks
	}
}

// Normalize validates the URL scheme for outbound use. A schemeless URL
// defaults to https; schemes other than http/https are rejected with
// ErrUnsupportedScheme.
func Normalize(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", ErrUnsupportedScheme
	}

	switch parsed.Scheme {
	case "":
		return "https://" + raw, nil
	case "http", "https":
		return raw, nil
	default:
		return "", ErrUnsupportedScheme
	}
}

// entityText slices the entity span out of the message text. Telegram
// entity offsets count UTF-16 code units, not bytes or runes.
func entityText(text string, entity models.MessageEntity) string {
	units := utf16.Encode([]rune(text))

	start := entity.Offset
	end := entity.Offset + entity.Length
	if start < 0 || start > len(units) {
		return ""
	}
	if end > len(units) {
		end = len(units)
	}

	return string(utf16.Decode(units[start:end]))
}
