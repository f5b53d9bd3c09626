package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/telegram"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h startHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	msg := update.Message

	// Inside the working group the greeting is just noise, so the
	// command message is cleaned up instead.
	if msg.Chat.ID == h.deps.Config.Telegram.AuthorizedGroupID {
		deleteCommandMessage(ctx, h.deps, api, msg)
		return
	}

	log.InfoContext(ctx, "Handling /start command", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)

	if _, err := api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   h.deps.Config.Bot.Messages.Welcome,
	}); err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", msg.Chat.ID)
	}
}
