package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/telegram"
)

// NewCommentHandler returns a handler for the /comment command, which
// relays the command's text as a comment on the linked submission.
func NewCommentHandler(deps HandlerDeps) bot.HandlerFunc {
	return commentHandler{deps}.Handle
}

type commentHandler struct {
	deps HandlerDeps
}

func (h commentHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h commentHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	log := h.deps.Logger.With("handler", "comment")

	ctx, cancel := context.WithTimeout(ctx, h.deps.Config.Bot.RequestTimeout)
	defer cancel()

	cmdCtx, ok := checkPreconditions(ctx, h.deps, api, update, preconditions{
		command:  "comment",
		needLink: true,
	})
	if !ok {
		return
	}

	submission, ok := resolveSubmission(ctx, h.deps, api, cmdCtx)
	if !ok {
		return
	}
	if submission.Locked {
		deny(ctx, h.deps, api, cmdCtx.msg, h.deps.Config.Bot.Messages.PostLocked)
		return
	}

	text := composeAttribution(h.deps.Config.Telegram.TGGroup, cmdCtx.msg.ID, cmdCtx.sender) +
		commandArgument(cmdCtx.msg.Text)

	comment, err := h.deps.Reddit.Comment(ctx, submission.FullName, text)
	if err != nil {
		reportFailure(ctx, h.deps, api, cmdCtx.msg, err)
		return
	}

	log.InfoContext(ctx, "Comment added to submission",
		"submission_id", submission.ID, "comment_id", comment.ID, "user_id", cmdCtx.sender.ID)

	confirm(ctx, h.deps, api,
		fmt.Sprintf(h.deps.Config.Bot.Messages.CommentAdded,
			telegram.DisplayName(cmdCtx.sender), comment.PermalinkURL()),
		cmdCtx.reply.ID)
}
