package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/fetcher"
	"github.com/fen0x/marvin/internal/links"
	"github.com/fen0x/marvin/internal/telegram"
)

// NewPostLinkHandler returns a handler for the /postlink command, which
// submits the link a moderator replied to as a new subreddit link post.
func NewPostLinkHandler(deps HandlerDeps) bot.HandlerFunc {
	return postLinkHandler{deps}.Handle
}

type postLinkHandler struct {
	deps HandlerDeps
}

func (h postLinkHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h postLinkHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	log := h.deps.Logger.With("handler", "postlink")
	msgs := h.deps.Config.Bot.Messages

	ctx, cancel := context.WithTimeout(ctx, h.deps.Config.Bot.RequestTimeout)
	defer cancel()

	cmdCtx, ok := checkPreconditions(ctx, h.deps, api, update, preconditions{
		command:       "postlink",
		needModerator: true,
		needLink:      true,
	})
	if !ok {
		return
	}

	link, err := links.Normalize(cmdCtx.link)
	if err != nil {
		deny(ctx, h.deps, api, cmdCtx.msg, msgs.NotHTTP)
		return
	}

	title, err := h.deps.Fetcher.PageTitle(ctx, link)
	switch {
	case errors.Is(err, fetcher.ErrNoTitle):
		deny(ctx, h.deps, api, cmdCtx.msg, msgs.NoPageTitle)
		return
	case err != nil:
		reportFailure(ctx, h.deps, api, cmdCtx.msg, err)
		return
	}

	fullTitle := composeTitle(h.deps.Config.Reddit.TitlePrefix,
		telegram.DisplayName(cmdCtx.reply.From), title)

	submission, err := h.deps.Reddit.SubmitLink(ctx,
		h.deps.Config.Reddit.SubredditName, fullTitle, link)
	if err != nil {
		reportFailure(ctx, h.deps, api, cmdCtx.msg, err)
		return
	}

	// Record the id before any notification can race the relay stream.
	if err := h.deps.Store.AddCreatedPost(ctx, submission.ID); err != nil {
		log.WarnContext(ctx, "Failed to record created post",
			"submission_id", submission.ID, "error", err)
	}

	addBoilerplate(ctx, h.deps, submission, cmdCtx.msg.ID)

	log.InfoContext(ctx, "Link post created",
		"submission_id", submission.ID, "url", link, "user_id", cmdCtx.sender.ID)

	confirm(ctx, h.deps, api,
		fmt.Sprintf(msgs.PostCreated, submission.Shortlink(), telegram.DisplayName(cmdCtx.sender)),
		cmdCtx.reply.ID)
}
