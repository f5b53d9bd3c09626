package boilerplate_test

import (
	"strings"
	"testing"

	"github.com/fen0x/marvin/internal/boilerplate"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tmpl := boilerplate.New(
		"Posted from [Telegram](https://t.me/{TG_GROUP}{TG_MSG_ID}).\n" +
			"Discuss on r/{SUBREDDIT}.",
	)

	got := tmpl.Render(12345, "test", "grp")
	want := "Posted from [Telegram](https://t.me/grp/12345).\nDiscuss on r/test."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	if strings.Contains(got, "{") || strings.Contains(got, "}") {
		t.Errorf("Render() left unresolved placeholder tokens: %q", got)
	}
}

func TestRenderWithoutMessageID(t *testing.T) {
	t.Parallel()

	tmpl := boilerplate.New("link: https://t.me/{TG_GROUP}{TG_MSG_ID}")

	got := tmpl.Render(0, "test", "grp")
	want := "link: https://t.me/grp"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := boilerplate.Load("/nonexistent/comment.txt"); err == nil {
		t.Fatal("Load() with missing file did not return an error")
	}
}
