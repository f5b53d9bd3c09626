package handlers

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/telegram"
)

// Titles shorter than this are rejected as low effort.
const minTitleLength = 6

// NewPostTextHandler returns a handler for the /posttext command, which
// submits the replied-to message as a new self post titled by the
// command argument.
func NewPostTextHandler(deps HandlerDeps) bot.HandlerFunc {
	return postTextHandler{deps}.Handle
}

type postTextHandler struct {
	deps HandlerDeps
}

func (h postTextHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h postTextHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	log := h.deps.Logger.With("handler", "posttext")
	msgs := h.deps.Config.Bot.Messages

	ctx, cancel := context.WithTimeout(ctx, h.deps.Config.Bot.RequestTimeout)
	defer cancel()

	cmdCtx, ok := checkPreconditions(ctx, h.deps, api, update, preconditions{
		command:       "posttext",
		needModerator: true,
	})
	if !ok {
		return
	}

	title := commandArgument(cmdCtx.msg.Text)
	switch {
	case utf8.RuneCountInString(title) < 1:
		deny(ctx, h.deps, api, cmdCtx.msg, msgs.NoTitle)
		return
	case utf8.RuneCountInString(title) < minTitleLength:
		deny(ctx, h.deps, api, cmdCtx.msg, msgs.ShortTitle)
		return
	}

	fullTitle := composeTitle(h.deps.Config.Reddit.TitlePrefix,
		telegram.DisplayName(cmdCtx.reply.From), title)

	submission, err := h.deps.Reddit.SubmitText(ctx,
		h.deps.Config.Reddit.SubredditName, fullTitle, cmdCtx.reply.Text)
	if err != nil {
		reportFailure(ctx, h.deps, api, cmdCtx.msg, err)
		return
	}

	if err := h.deps.Store.AddCreatedPost(ctx, submission.ID); err != nil {
		log.WarnContext(ctx, "Failed to record created post",
			"submission_id", submission.ID, "error", err)
	}

	addBoilerplate(ctx, h.deps, submission, cmdCtx.msg.ID)

	log.InfoContext(ctx, "Text post created",
		"submission_id", submission.ID, "user_id", cmdCtx.sender.ID)

	confirm(ctx, h.deps, api,
		fmt.Sprintf(msgs.PostCreated, submission.Shortlink(), telegram.DisplayName(cmdCtx.sender)),
		cmdCtx.reply.ID)
}
