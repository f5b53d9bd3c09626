package links_test

import (
	"errors"
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/links"
)

func urlEntity(offset, length int) models.MessageEntity {
	return models.MessageEntity{Type: models.MessageEntityTypeURL, Offset: offset, Length: length}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     *models.Message
		want    string
		wantErr error
	}{
		{
			name:    "nil message",
			msg:     nil,
			wantErr: links.ErrNoLink,
		},
		{
			name:    "no entities",
			msg:     &models.Message{Text: "just some words"},
			wantErr: links.ErrNoLink,
		},
		{
			name: "single url entity",
			msg: &models.Message{
				Text:     "look at https://example.com/page now",
				Entities: []models.MessageEntity{urlEntity(8, 24)},
			},
			want: "https://example.com/page",
		},
		{
			name: "url after non-ascii text",
			msg: &models.Message{
				Text:     "già https://example.com",
				Entities: []models.MessageEntity{urlEntity(4, 19)},
			},
			want: "https://example.com",
		},
		{
			name: "text link entity",
			msg: &models.Message{
				Text: "click here",
				Entities: []models.MessageEntity{
					{Type: models.MessageEntityTypeTextLink, Offset: 6, Length: 4, URL: "https://example.com/hidden"},
				},
			},
			want: "https://example.com/hidden",
		},
		{
			name: "two urls rejected",
			msg: &models.Message{
				Text: "https://a.example https://b.example",
				Entities: []models.MessageEntity{
					urlEntity(0, 17),
					urlEntity(18, 17),
				},
			},
			wantErr: links.ErrMultipleLinks,
		},
		{
			name: "non-url entities ignored",
			msg: &models.Message{
				Text: "bold https://example.com",
				Entities: []models.MessageEntity{
					{Type: models.MessageEntityTypeBold, Offset: 0, Length: 4},
					urlEntity(5, 19),
				},
			},
			want: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := links.Extract(tt.msg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Extract() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "https passes through",
			input: "https://example.com/a",
			want:  "https://example.com/a",
		},
		{
			name:  "http passes through",
			input: "http://example.com",
			want:  "http://example.com",
		},
		{
			name:  "schemeless gets https",
			input: "example.com/page",
			want:  "https://example.com/page",
		},
		{
			name:    "ftp rejected",
			input:   "ftp://example.com/file",
			wantErr: links.ErrUnsupportedScheme,
		},
		{
			name:    "mailto rejected",
			input:   "mailto:user@example.com",
			wantErr: links.ErrUnsupportedScheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := links.Normalize(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
