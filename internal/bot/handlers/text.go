package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-telegram/bot/models"
)

var (
	errNoRuleNumber      = errors.New("missing rule number")
	errInvalidRuleNumber = errors.New("invalid rule number")
)

// commandArgument strips the leading /command token from a message text
// and returns the trimmed remainder. The token ends at any whitespace,
// Telegram allows a newline right after the command.
func commandArgument(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i:])
}

// composeAttribution builds the markdown line prepended to relayed
// comments, linking back to the originating group message and naming
// the moderator. Users without a public handle get a plain name since
// there is nothing to link to.
func composeAttribution(group string, messageID int, user *models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\[[Telegram](https://t.me/%s/%d/) - ", group, messageID)
	if user != nil && user.Username != "" {
		fmt.Fprintf(&b, "[@%s](https://t.me/%s)", user.Username, user.Username)
	} else if user != nil {
		b.WriteString(user.FirstName)
		if user.LastName != "" {
			b.WriteString(" " + user.LastName)
		}
	}
	b.WriteString("\\]  \n")
	return b.String()
}

// composeTitle builds a submission title carrying the configured prefix
// and the author's display name in a bracketed tag.
func composeTitle(prefix, authorDisplay, rest string) string {
	return "[" + prefix + authorDisplay + "] " + rest
}

// parseRemoval splits a /delrule argument into the rule number and the
// optional free-form note that follows it.
func parseRemoval(arg string) (int, string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, "", errNoRuleNumber
	}

	numberToken, note, _ := strings.Cut(arg, " ")
	number, err := strconv.Atoi(numberToken)
	if err != nil {
		return 0, "", errInvalidRuleNumber
	}

	return number, strings.TrimSpace(note), nil
}

// composeRemovalComment renders the markdown removal notice: the
// preamble, the violated rule as a bullet, the moderator note when
// present, and the modmail pointer.
func composeRemovalComment(preamble, ruleText, note, modmailLine string) string {
	var b strings.Builder
	b.WriteString(preamble + "\n\n")
	b.WriteString("* " + ruleText + "\n\n")
	if note != "" {
		b.WriteString(note + "\n\n")
	}
	b.WriteString(modmailLine + "\n")
	return b.String()
}
