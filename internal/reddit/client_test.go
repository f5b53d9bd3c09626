package reddit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fen0x/marvin/internal/reddit"
)

// newTestClient spins up a fake reddit API that serves a token from
// /api/v1/access_token and delegates everything else to handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *reddit.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/access_token" {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"access_token": "test-token", "expires_in": 3600}`)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := reddit.NewClient(reddit.Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		Username:     "marvinbot",
		Password:     "hunter2",
		UserAgent:    "marvin test",
	}, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)),
		reddit.WithBaseURLs(server.URL, server.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestSubmission(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/info" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "t3_ab12cd" {
			t.Errorf("id = %q, want t3_ab12cd", got)
		}
		io.WriteString(w, `{"data": {"children": [{"data": {
			"id": "ab12cd", "name": "t3_ab12cd", "title": "A post",
			"author": "someone", "subreddit": "test",
			"permalink": "/r/test/comments/ab12cd/a_post/", "locked": true
		}}]}}`)
	})

	submission, err := client.Submission(context.Background(), "ab12cd")
	if err != nil {
		t.Fatalf("Submission() error = %v", err)
	}

	if submission.Subreddit != "test" {
		t.Errorf("Subreddit = %q, want %q", submission.Subreddit, "test")
	}
	if !submission.Locked {
		t.Error("Locked = false, want true")
	}
	if got := submission.Shortlink(); got != "https://redd.it/ab12cd" {
		t.Errorf("Shortlink() = %q", got)
	}
	if got := submission.PermalinkURL(); got != "https://www.reddit.com/r/test/comments/ab12cd/a_post/" {
		t.Errorf("PermalinkURL() = %q", got)
	}
}

func TestSubmissionNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"children": []}}`)
	})

	_, err := client.Submission(context.Background(), "zzzzzz")
	if !errors.Is(err, reddit.ErrSubmissionNotFound) {
		t.Fatalf("Submission() error = %v, want ErrSubmissionNotFound", err)
	}
}

func TestSubmitLink(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/submit" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error = %v", err)
		}
		if got := r.PostForm.Get("kind"); got != "link" {
			t.Errorf("kind = %q, want link", got)
		}
		if got := r.PostForm.Get("sr"); got != "test" {
			t.Errorf("sr = %q, want test", got)
		}
		io.WriteString(w, `{"json": {"errors": [], "data": {
			"id": "new123", "name": "t3_new123", "url": "https://www.reddit.com/r/test/comments/new123/"
		}}}`)
	})

	submission, err := client.SubmitLink(context.Background(), "test", "[TG] title", "https://example.com")
	if err != nil {
		t.Fatalf("SubmitLink() error = %v", err)
	}
	if submission.ID != "new123" {
		t.Errorf("ID = %q, want new123", submission.ID)
	}
}

func TestSubmitRejected(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"json": {"errors": [["SUBREDDIT_NOTALLOWED", "not allowed to post there", "sr"]]}}`)
	})

	if _, err := client.SubmitText(context.Background(), "test", "title here", "body"); err == nil {
		t.Fatal("SubmitText() with API errors did not fail")
	}
}

func TestCommentAndModActions(t *testing.T) {
	t.Parallel()

	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/api/comment":
			io.WriteString(w, `{"json": {"errors": [], "data": {"things": [{"kind": "t1",
				"data": {"id": "cm1", "name": "t1_cm1", "permalink": "/r/test/comments/ab12cd/x/cm1/"}}]}}}`)
		default:
			io.WriteString(w, `{}`)
		}
	})

	ctx := context.Background()

	comment, err := client.Comment(ctx, "t3_ab12cd", "removal reason")
	if err != nil {
		t.Fatalf("Comment() error = %v", err)
	}
	if comment.FullName != "t1_cm1" {
		t.Errorf("FullName = %q, want t1_cm1", comment.FullName)
	}

	if err := client.DistinguishSticky(ctx, comment.FullName); err != nil {
		t.Fatalf("DistinguishSticky() error = %v", err)
	}
	if err := client.Remove(ctx, "t3_ab12cd"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := client.Lock(ctx, "t3_ab12cd"); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	want := []string{"/api/comment", "/api/distinguish", "/api/remove", "/api/lock"}
	if len(paths) != len(want) {
		t.Fatalf("called paths %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestTokenRefreshOnUnauthorized(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{"data": {"children": [{"data": {"id": "ab12cd"}}]}}`)
	})

	if _, err := client.Submission(context.Background(), "ab12cd"); err != nil {
		t.Fatalf("Submission() after token refresh error = %v", err)
	}
	if calls != 2 {
		t.Errorf("API calls = %d, want 2 (retry after 401)", calls)
	}
}
