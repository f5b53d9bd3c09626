package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/telegram"
)

// NewDefaultHandler returns the fallback handler for updates no command
// matched. Unrecognized slash commands in the authorized group are
// scheduled for deletion after a short grace period so the chat stays
// readable; everything else is ignored.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	return defaultHandler{deps}.Handle
}

type defaultHandler struct {
	deps HandlerDeps
}

func (h defaultHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h defaultHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message

	if msg.Chat.ID != h.deps.Config.Telegram.AuthorizedGroupID {
		return
	}
	if !strings.HasPrefix(msg.Text, "/") {
		return
	}

	isAdmin, err := h.deps.AdminCache.BotIsAdmin(ctx, api, msg.Chat.ID)
	if err != nil {
		h.deps.Logger.WarnContext(ctx, "Failed to check bot admin status",
			"chat_id", msg.Chat.ID, "error", err)
		return
	}
	if !isAdmin {
		return
	}

	h.deps.Logger.DebugContext(ctx, "Scheduling deletion of unrecognized command",
		"chat_id", msg.Chat.ID, "message_id", msg.ID)
	h.deps.Janitor.ScheduleDelete(msg.Chat.ID, msg.ID, h.deps.Config.Bot.DeleteDelay)
}
