package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fen0x/marvin/internal/reddit"
	"github.com/fen0x/marvin/internal/telegram"
)

// resolveSubmission turns the link a command replied to into the
// subreddit submission it references. Links that do not parse, point at
// a missing post, or belong to a foreign subreddit are denied with the
// matching message; unexpected fetch errors are reported generically.
func resolveSubmission(ctx context.Context, deps HandlerDeps, api telegram.API, cmdCtx *commandContext) (*reddit.Submission, bool) {
	msgs := deps.Config.Bot.Messages

	id, err := reddit.SubmissionIDFromURL(cmdCtx.link)
	if err != nil {
		deny(ctx, deps, api, cmdCtx.msg, msgs.InvalidLink)
		return nil, false
	}

	submission, err := deps.Reddit.Submission(ctx, id)
	switch {
	case errors.Is(err, reddit.ErrSubmissionNotFound):
		deny(ctx, deps, api, cmdCtx.msg, msgs.InvalidLink)
		return nil, false
	case err != nil:
		reportFailure(ctx, deps, api, cmdCtx.msg, err)
		return nil, false
	}

	if !strings.EqualFold(submission.Subreddit, deps.Config.Reddit.SubredditName) {
		deny(ctx, deps, api, cmdCtx.msg,
			fmt.Sprintf(msgs.WrongSubreddit, deps.Config.Reddit.SubredditName))
		return nil, false
	}

	return submission, true
}

// addBoilerplate posts the rendered standing comment on a freshly
// created submission and pins it as a distinguished sticky. Failures
// are logged only, a missing boilerplate comment never rolls back the
// submission itself.
func addBoilerplate(ctx context.Context, deps HandlerDeps, submission *reddit.Submission, messageID int) {
	text := deps.Comment.Render(messageID,
		deps.Config.Reddit.SubredditName, deps.Config.Telegram.TGGroup)

	comment, err := deps.Reddit.Comment(ctx, submission.FullName, text)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to add boilerplate comment",
			"submission_id", submission.ID, "error", err)
		return
	}

	if err := deps.Reddit.DistinguishSticky(ctx, comment.FullName); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to sticky boilerplate comment",
			"submission_id", submission.ID, "comment_id", comment.ID, "error", err)
	}
}
