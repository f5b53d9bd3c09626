package handlers

import (
	"context"
	"errors"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/links"
	"github.com/fen0x/marvin/internal/telegram"
)

// preconditions selects which checks apply to a command beyond the
// authorized-context check done by the AuthorizedGroup middleware.
type preconditions struct {
	command       string
	needModerator bool
	needLink      bool
}

// commandContext carries the validated pieces of an incoming command.
type commandContext struct {
	msg    *models.Message
	reply  *models.Message
	sender *models.User
	link   string
}

// checkPreconditions applies the command precondition chain in order,
// short-circuiting on the first failure: reply-target presence, then
// moderator status for admin-only commands, then link extraction from
// the reply target. On failure the specific denial has already been
// delivered and the command message deleted best-effort.
func checkPreconditions(ctx context.Context, deps HandlerDeps, api telegram.API, update *models.Update, pre preconditions) (*commandContext, bool) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil, false
	}
	msgs := deps.Config.Bot.Messages

	if msg.ReplyToMessage == nil {
		deny(ctx, deps, api, msg, fmt.Sprintf(msgs.NeedReply, "/"+pre.command))
		return nil, false
	}

	if pre.needModerator {
		isModerator, err := telegram.IsChatAdmin(ctx, api, msg.Chat.ID, msg.From.ID)
		if err != nil {
			reportFailure(ctx, deps, api, msg, err)
			return nil, false
		}
		if !isModerator {
			deny(ctx, deps, api, msg, msgs.NotAdmin)
			return nil, false
		}
	}

	cmdCtx := &commandContext{
		msg:    msg,
		reply:  msg.ReplyToMessage,
		sender: msg.From,
	}

	if pre.needLink {
		link, err := links.Extract(msg.ReplyToMessage)
		switch {
		case errors.Is(err, links.ErrNoLink):
			deny(ctx, deps, api, msg, msgs.NoLink)
			return nil, false
		case errors.Is(err, links.ErrMultipleLinks):
			deny(ctx, deps, api, msg, msgs.MultipleLinks)
			return nil, false
		case err != nil:
			reportFailure(ctx, deps, api, msg, err)
			return nil, false
		}
		cmdCtx.link = link
	}

	return cmdCtx, true
}

// deny delivers a precondition denial: the offending command message is
// deleted when the bot has rights, then the explanation is sent to the
// user, privately when possible.
func deny(ctx context.Context, deps HandlerDeps, api telegram.API, msg *models.Message, text string) {
	deleteCommandMessage(ctx, deps, api, msg)

	if err := telegram.SendReplyOrPrivate(ctx, api, msg, text, deps.Config.Bot.Messages.SetUsernameHint); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to deliver denial message",
			"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
	}
}

// deleteCommandMessage removes the command message if the bot holds
// admin rights in the chat. Best-effort UX cleanup, never fatal.
func deleteCommandMessage(ctx context.Context, deps HandlerDeps, api telegram.API, msg *models.Message) {
	isAdmin, err := deps.AdminCache.BotIsAdmin(ctx, api, msg.Chat.ID)
	if err != nil {
		deps.Logger.WarnContext(ctx, "Failed to check bot admin status",
			"chat_id", msg.Chat.ID, "error", err)
		return
	}
	if !isAdmin {
		return
	}

	if _, err := api.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	}); err != nil {
		deps.Logger.WarnContext(ctx, "Failed to delete command message",
			"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
	}
}

// confirm announces a completed workflow in the authorized group,
// threading the announcement onto the message the command replied to.
func confirm(ctx context.Context, deps HandlerDeps, api telegram.API, text string, replyToID int) {
	params := &tgbot.SendMessageParams{
		ChatID: deps.Config.Telegram.AuthorizedGroupID,
		Text:   text,
	}
	if replyToID != 0 {
		params.ReplyParameters = &models.ReplyParameters{MessageID: replyToID}
	}

	if _, err := api.SendMessage(ctx, params); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to send confirmation message",
			"chat_id", deps.Config.Telegram.AuthorizedGroupID, "error", err)
	}
}

// reportFailure handles an unexpected remote error: the full error is
// logged with the command context, and the invoking chat gets a generic
// failure notice.
func reportFailure(ctx context.Context, deps HandlerDeps, api telegram.API, msg *models.Message, err error) {
	deps.Logger.ErrorContext(ctx, "Command failed with unexpected error",
		"chat_id", msg.Chat.ID, "message_id", msg.ID, "user_id", msg.From.ID, "error", err)

	if _, sendErr := api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   deps.Config.Bot.Messages.GeneralError,
	}); sendErr != nil {
		deps.Logger.ErrorContext(ctx, "Failed to deliver failure notice", "chat_id", msg.Chat.ID, "error", sendErr)
	}
}
