package fetcher_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fen0x/marvin/internal/fetcher"
)

type memoryCookieStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemoryCookieStore() *memoryCookieStore {
	return &memoryCookieStore{blobs: make(map[string][]byte)}
}

func (s *memoryCookieStore) SaveCookies(_ context.Context, host string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[host] = data
	return nil
}

func (s *memoryCookieStore) LoadAllCookies(_ context.Context) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]byte, len(s.blobs))
	for k, v := range s.blobs {
		out[k] = v
	}
	return out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFetcher(t *testing.T, store fetcher.CookieStore, opts ...fetcher.Option) *fetcher.Fetcher {
	t.Helper()

	f, err := fetcher.New(context.Background(), store, 5*time.Second, discardLogger(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

func TestPageTitle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><head>
			<meta charset="utf-8">
			<title>  An Interesting Article  </title>
		</head><body>text</body></html>`)
	}))
	t.Cleanup(server.Close)

	title, err := newFetcher(t, nil).PageTitle(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("PageTitle() error = %v", err)
	}
	if title != "An Interesting Article" {
		t.Errorf("PageTitle() = %q, want %q", title, "An Interesting Article")
	}
}

func TestPageTitleMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body>no title here</body></html>`)
	}))
	t.Cleanup(server.Close)

	_, err := newFetcher(t, nil).PageTitle(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrNoTitle) {
		t.Fatalf("PageTitle() error = %v, want ErrNoTitle", err)
	}
}

func TestVideoTitle(t *testing.T) {
	t.Parallel()

	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://youtu.be/dQw4w9WgXcQ" {
			t.Errorf("oembed url param = %q", got)
		}
		io.WriteString(w, `{"title": "Some Video"}`)
	}))
	t.Cleanup(oembed.Close)

	f := newFetcher(t, nil, fetcher.WithOEmbedURL(oembed.URL))

	title, err := f.PageTitle(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("PageTitle() error = %v", err)
	}
	if title != "[YouTube] Some Video" {
		t.Errorf("PageTitle() = %q, want %q", title, "[YouTube] Some Video")
	}
}

func TestCookiePersistence(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		io.WriteString(w, `<html><head><title>ok</title></head></html>`)
	}))
	t.Cleanup(server.Close)

	store := newMemoryCookieStore()

	if _, err := newFetcher(t, store).PageTitle(context.Background(), server.URL); err != nil {
		t.Fatalf("PageTitle() error = %v", err)
	}

	blobs, err := store.LoadAllCookies(context.Background())
	if err != nil {
		t.Fatalf("LoadAllCookies() error = %v", err)
	}
	if len(blobs) != 1 {
		t.Fatalf("persisted cookie hosts = %d, want 1", len(blobs))
	}

	// A second fetcher restores the jar from the store without error.
	second := newFetcher(t, store)
	if _, err := second.PageTitle(context.Background(), server.URL); err != nil {
		t.Fatalf("PageTitle() on restored jar error = %v", err)
	}
}
