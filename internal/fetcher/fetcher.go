// Package fetcher resolves page titles for link posts. It keeps an HTTP
// cookie jar that is restored from the store at startup and persisted
// best-effort after each fetch.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/71.0.3578.98 Safari/537.36"

const defaultOEmbedURL = "https://www.youtube.com/oembed"

// ErrNoTitle indicates the page had no usable <title> element.
var ErrNoTitle = errors.New("page has no title")

// CookieStore persists cookie blobs between runs. Absence of stored
// cookies is a cold start, never an error.
type CookieStore interface {
	SaveCookies(ctx context.Context, host string, data []byte) error
	LoadAllCookies(ctx context.Context) (map[string][]byte, error)
}

// Fetcher retrieves page titles over HTTP.
type Fetcher struct {
	httpClient *http.Client
	jar        *cookiejar.Jar
	store      CookieStore
	logger     *slog.Logger
	userAgent  string
	oembedURL  string
}

// Option customizes the fetcher, mainly for tests.
type Option func(*Fetcher)

// WithOEmbedURL overrides the video-title lookup endpoint.
func WithOEmbedURL(u string) Option {
	return func(f *Fetcher) {
		f.oembedURL = u
	}
}

// WithUserAgent overrides the request User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// New creates a fetcher and restores any persisted cookies into the jar.
// Cookie restore failures are logged and ignored.
func New(ctx context.Context, store CookieStore, timeout time.Duration, logger *slog.Logger, opts ...Option) (*Fetcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	f := &Fetcher{
		httpClient: &http.Client{Jar: jar, Timeout: timeout},
		jar:        jar,
		store:      store,
		logger:     logger.With("component", "fetcher"),
		userAgent:  defaultUserAgent,
		oembedURL:  defaultOEmbedURL,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.restoreCookies(ctx)
	return f, nil
}

// PageTitle returns the title of the given page. YouTube video links go
// through the oEmbed lookup and carry a "[YouTube] " prefix; everything
// else is fetched and parsed for its <title> element.
func (f *Fetcher) PageTitle(ctx context.Context, pageURL string) (string, error) {
	if isYouTubeURL(pageURL) {
		return f.videoTitle(ctx, pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	f.persistCookies(ctx, req.URL)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("page fetch returned status %d", resp.StatusCode)
	}

	title, err := extractTitle(resp.Body)
	if err != nil {
		return "", err
	}
	return title, nil
}

// videoTitle resolves a YouTube video title through the oEmbed endpoint.
func (f *Fetcher) videoTitle(ctx context.Context, videoURL string) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("url", videoURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.oembedURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build video title request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch video title: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video title lookup returned status %d", resp.StatusCode)
	}

	var oembed struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&oembed); err != nil {
		return "", fmt.Errorf("failed to decode video title response: %w", err)
	}
	if oembed.Title == "" {
		return "", ErrNoTitle
	}

	return "[YouTube] " + oembed.Title, nil
}

func isYouTubeURL(pageURL string) bool {
	return strings.HasPrefix(pageURL, "https://www.youtube.com/watch?v=") ||
		strings.HasPrefix(pageURL, "https://youtu.be/")
}

// extractTitle scans the HTML stream for the first <title> text.
func extractTitle(body io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(body)
	inTitle := false

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return "", ErrNoTitle
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				title := strings.TrimSpace(string(tokenizer.Text()))
				if title != "" {
					return title, nil
				}
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}

// restoreCookies loads persisted cookie blobs into the jar. A missing or
// unreadable cache is a cold start.
func (f *Fetcher) restoreCookies(ctx context.Context) {
	if f.store == nil {
		return
	}

	blobs, err := f.store.LoadAllCookies(ctx)
	if err != nil {
		f.logger.InfoContext(ctx, "Unable to load cached cookies, starting with an empty jar", "error", err)
		return
	}

	for host, data := range blobs {
		var cookies []*http.Cookie
		if err := json.Unmarshal(data, &cookies); err != nil {
			f.logger.WarnContext(ctx, "Skipping corrupt cookie blob", "host", host, "error", err)
			continue
		}
		f.jar.SetCookies(&url.URL{Scheme: "https", Host: host}, cookies)
	}

	if len(blobs) > 0 {
		f.logger.DebugContext(ctx, "Restored cookie cache", "hosts", len(blobs))
	}
}

// persistCookies saves the jar's cookies for the fetched host. Write
// failures are logged and swallowed, never surfaced to the user.
func (f *Fetcher) persistCookies(ctx context.Context, u *url.URL) {
	if f.store == nil {
		return
	}

	cookies := f.jar.Cookies(u)
	if len(cookies) == 0 {
		return
	}

	data, err := json.Marshal(cookies)
	if err != nil {
		f.logger.WarnContext(ctx, "Unable to serialize cookies", "host", u.Host, "error", err)
		return
	}

	if err := f.store.SaveCookies(ctx, u.Host, data); err != nil {
		f.logger.WarnContext(ctx, "Unable to update cached cookies", "host", u.Host, "error", err)
	}
}
