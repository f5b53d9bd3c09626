package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/fen0x/marvin/internal/telegram"
)

// NewDelRuleHandler returns a handler for the /delrule command, which
// removes the linked submission for violating a numbered rule, posting
// the removal reason as a comment and locking the thread.
func NewDelRuleHandler(deps HandlerDeps) bot.HandlerFunc {
	return delRuleHandler{deps}.Handle
}

type delRuleHandler struct {
	deps HandlerDeps
}

func (h delRuleHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h delRuleHandler) handle(ctx context.Context, api telegram.API, update *models.Update) {
	log := h.deps.Logger.With("handler", "delrule")
	msgs := h.deps.Config.Bot.Messages

	ctx, cancel := context.WithTimeout(ctx, h.deps.Config.Bot.RequestTimeout)
	defer cancel()

	cmdCtx, ok := checkPreconditions(ctx, h.deps, api, update, preconditions{
		command:       "delrule",
		needModerator: true,
		needLink:      true,
	})
	if !ok {
		return
	}

	ruleNumber, note, err := parseRemoval(commandArgument(cmdCtx.msg.Text))
	switch {
	case errors.Is(err, errNoRuleNumber):
		deny(ctx, h.deps, api, cmdCtx.msg, msgs.NoRuleNumber)
		return
	case errors.Is(err, errInvalidRuleNumber):
		deny(ctx, h.deps, api, cmdCtx.msg, msgs.InvalidRule)
		return
	}

	ruleText, found := h.deps.Rules.Lookup(ruleNumber)
	if !found {
		deny(ctx, h.deps, api, cmdCtx.msg, msgs.UnknownRule)
		return
	}

	submission, ok := resolveSubmission(ctx, h.deps, api, cmdCtx)
	if !ok {
		return
	}

	removalText := composeRemovalComment(msgs.RemovalPreamble, ruleText, note,
		fmt.Sprintf(msgs.RemovalModmail, h.deps.Config.Reddit.SubredditName))

	// The reason comment must land before the post disappears from
	// public view, and the thread is locked last.
	if _, err := h.deps.Reddit.Comment(ctx, submission.FullName, removalText); err != nil {
		reportFailure(ctx, h.deps, api, cmdCtx.msg, err)
		return
	}
	if err := h.deps.Reddit.Remove(ctx, submission.FullName); err != nil {
		reportFailure(ctx, h.deps, api, cmdCtx.msg, err)
		return
	}
	if err := h.deps.Reddit.Lock(ctx, submission.FullName); err != nil {
		reportFailure(ctx, h.deps, api, cmdCtx.msg, err)
		return
	}

	log.InfoContext(ctx, "Submission removed",
		"submission_id", submission.ID, "rule", ruleNumber, "user_id", cmdCtx.sender.ID)

	confirm(ctx, h.deps, api,
		fmt.Sprintf(msgs.PostDeleted, telegram.DisplayName(cmdCtx.sender)),
		cmdCtx.reply.ID)
}
