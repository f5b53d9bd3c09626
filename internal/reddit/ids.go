package reddit

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidSubmissionURL indicates the URL does not reference a reddit
// submission.
var ErrInvalidSubmissionURL = errors.New("not a valid reddit submission URL")

// SubmissionIDFromURL extracts the base36 submission id from a reddit
// URL. Recognized shapes: redd.it/<id>, .../comments/<id>/...,
// and .../gallery/<id>.
func SubmissionIDFromURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidSubmissionURL
	}

	host := strings.ToLower(parsed.Hostname())
	parts := splitPath(parsed.Path)

	if host == "redd.it" {
		if len(parts) == 1 && isBase36(parts[0]) {
			return parts[0], nil
		}
		return "", ErrInvalidSubmissionURL
	}

	if host != "reddit.com" && !strings.HasSuffix(host, ".reddit.com") {
		return "", ErrInvalidSubmissionURL
	}

	for i, part := range parts {
		if (part == "comments" || part == "gallery") && i+1 < len(parts) && isBase36(parts[i+1]) {
			return parts[i+1], nil
		}
	}

	return "", ErrInvalidSubmissionURL
}

func splitPath(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func isBase36(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
