package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// API is the subset of bot.Bot methods the handlers and helpers use,
// abstracted so tests can substitute a fake.
type API interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
}

// IsChatAdmin reports whether the user holds administrator or owner
// status in the chat. The membership status is queried on every call so
// the answer always reflects the user's current privilege.
func IsChatAdmin(ctx context.Context, api API, chatID, userID int64) (bool, error) {
	member, err := api.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to get chat member %d in %d: %w", userID, chatID, err)
	}

	return member.Type == models.ChatMemberTypeAdministrator ||
		member.Type == models.ChatMemberTypeOwner, nil
}

// DisplayName returns the user's @username when set, the full name
// otherwise.
func DisplayName(user *models.User) string {
	if user == nil {
		return ""
	}
	if user.Username != "" {
		return "@" + user.Username
	}
	if user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	return user.FirstName
}
