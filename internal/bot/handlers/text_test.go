package handlers

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestCommandArgument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"command only", "/posttext", ""},
		{"command with title", "/posttext A good title", "A good title"},
		{"extra whitespace", "/delrule   3   spam  ", "3   spam"},
		{"no command prefix", "just text", "just text"},
		{"newline after command", "/posttext\nMy Title", "My Title"},
		{"tab after command", "/delrule\t3 spam", "3 spam"},
		{"bot suffix", "/comment@marvin_bot well said", "well said"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := commandArgument(tt.text); got != tt.want {
				t.Errorf("commandArgument(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestComposeAttribution(t *testing.T) {
	t.Parallel()

	withHandle := composeAttribution("mygroup", 42, &models.User{Username: "alice", FirstName: "Alice"})
	if want := "\\[[Telegram](https://t.me/mygroup/42/) - [@alice](https://t.me/alice)\\]  \n"; withHandle != want {
		t.Errorf("attribution with handle = %q, want %q", withHandle, want)
	}

	noHandle := composeAttribution("mygroup", 7, &models.User{FirstName: "Bob", LastName: "Smith"})
	if want := "\\[[Telegram](https://t.me/mygroup/7/) - Bob Smith\\]  \n"; noHandle != want {
		t.Errorf("attribution without handle = %q, want %q", noHandle, want)
	}
	if strings.Contains(noHandle, "t.me/Bob") {
		t.Error("attribution without handle must not link to a fabricated profile URL")
	}
}

func TestComposeTitle(t *testing.T) {
	t.Parallel()

	got := composeTitle("Mod - ", "@alice", "Weekly thread")
	if want := "[Mod - @alice] Weekly thread"; got != want {
		t.Errorf("composeTitle = %q, want %q", got, want)
	}
}

func TestParseRemoval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		arg        string
		wantNumber int
		wantNote   string
		wantErr    error
	}{
		{"number only", "3", 3, "", nil},
		{"number with note", "3 spam again", 3, "spam again", nil},
		{"note keeps spacing trimmed", "  12   repeated offense ", 12, "repeated offense", nil},
		{"empty", "", 0, "", errNoRuleNumber},
		{"whitespace only", "   ", 0, "", errNoRuleNumber},
		{"not a number", "spam", 0, "", errInvalidRuleNumber},
		{"number glued to text", "3spam", 0, "", errInvalidRuleNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			number, note, err := parseRemoval(tt.arg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseRemoval(%q) error = %v, want %v", tt.arg, err, tt.wantErr)
			}
			if number != tt.wantNumber || note != tt.wantNote {
				t.Errorf("parseRemoval(%q) = (%d, %q), want (%d, %q)",
					tt.arg, number, note, tt.wantNumber, tt.wantNote)
			}
		})
	}
}

func TestComposeRemovalComment(t *testing.T) {
	t.Parallel()

	withNote := composeRemovalComment("Removed for:", "No spam", "second strike", "Contact modmail.")
	want := "Removed for:\n\n* No spam\n\nsecond strike\n\nContact modmail.\n"
	if withNote != want {
		t.Errorf("removal comment with note = %q, want %q", withNote, want)
	}

	withoutNote := composeRemovalComment("Removed for:", "No spam", "", "Contact modmail.")
	if strings.Contains(withoutNote, "\n\n\n") {
		t.Errorf("removal comment without note has empty paragraph: %q", withoutNote)
	}
	if !strings.Contains(withoutNote, "* No spam\n\nContact modmail.") {
		t.Errorf("removal comment without note misformatted: %q", withoutNote)
	}
}
