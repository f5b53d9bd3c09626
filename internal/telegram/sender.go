package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// SendReplyOrPrivate delivers text to the sender of msg, preferring a
// private message. When the private send fails (the user never started
// the bot), it falls back to the originating chat, prefixing the text
// with the user's mention, or with usernameHint (formatted with the
// user's full name) when no public handle exists.
func SendReplyOrPrivate(ctx context.Context, api API, msg *models.Message, text, usernameHint string) error {
	if msg == nil || msg.From == nil {
		return fmt.Errorf("message has no sender")
	}

	_, err := api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.From.ID,
		Text:   text,
	})
	if err == nil {
		return nil
	}

	var prefixed string
	if msg.From.Username == "" {
		fullName := msg.From.FirstName
		if msg.From.LastName != "" {
			fullName += " " + msg.From.LastName
		}
		prefixed = fmt.Sprintf(usernameHint, fullName) + "\n" + text
	} else {
		prefixed = "@" + msg.From.Username + "\n" + text
	}

	_, err = api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   prefixed,
	})
	if err != nil {
		return fmt.Errorf("failed to deliver message to user %d: %w", msg.From.ID, err)
	}
	return nil
}
