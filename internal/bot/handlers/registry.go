package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/fen0x/marvin/internal/telegram"
)

// RegisterAllCommands initializes and returns a map of all available
// bot commands. It configures each command with appropriate handlers
// and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]telegram.RegisteredHandler {
	handlers := make(map[string]telegram.RegisteredHandler)

	handlers["/start"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}

	groupOnly := []tgbot.Middleware{AuthorizedGroup(deps)}

	handlers["/comment"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "comment",
		Handler:     NewCommentHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  groupOnly,
	}
	handlers["/postlink"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "postlink",
		Handler:     NewPostLinkHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  groupOnly,
	}
	handlers["/posttext"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "posttext",
		Handler:     NewPostTextHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  groupOnly,
	}
	handlers["/delrule"] = telegram.RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "delrule",
		Handler:     NewDelRuleHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  groupOnly,
	}

	return handlers
}
