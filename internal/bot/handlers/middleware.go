// Package handlers contains the Telegram command and message handlers,
// their registration logic, and the shared precondition middleware.
package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/telegram"
)

// AuthorizedGroup creates a middleware that rejects commands issued
// outside the single authorized group.
func AuthorizedGroup(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if allowGroup(ctx, deps, b, update) {
				next(ctx, b, update)
			}
		}
	}
}

// allowGroup reports whether the update originates in the authorized
// group. When it does not, the denial has already been delivered, naming
// the configured group id so misdirected moderators can tell what went
// wrong.
func allowGroup(ctx context.Context, deps HandlerDeps, api telegram.API, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}

	chatID := update.Message.Chat.ID
	authorizedID := deps.Config.Telegram.AuthorizedGroupID
	if chatID == authorizedID {
		return true
	}

	deps.Logger.WarnContext(ctx, "Command from unauthorized chat",
		"chat_id", chatID, "user_id", update.Message.From.ID)

	deny(ctx, deps, api, update.Message,
		fmt.Sprintf(deps.Config.Bot.Messages.WrongGroup, authorizedID, chatID))
	return false
}
