package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default operational settings. User-facing texts default to English
// equivalents of the historic bot messages and can be overridden per
// deployment from the config file.
const (
	DefaultRequestTimeout     = 30 * time.Second
	DefaultDeleteDelay        = 5 * time.Second
	DefaultAdminCacheTTL      = 30 * time.Minute
	DefaultStreamPollInterval = 15 * time.Second
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	v.SetDefault("database.path", "storage.db")

	v.SetDefault("comment_template_path", "content/defaultComment.txt")
	v.SetDefault("rules_path", "content/delete_post_rules.json")

	v.SetDefault("bot.request_timeout", DefaultRequestTimeout)
	v.SetDefault("bot.delete_delay", DefaultDeleteDelay)
	v.SetDefault("bot.admin_cache_ttl", DefaultAdminCacheTTL)
	v.SetDefault("bot.stream_poll_interval", DefaultStreamPollInterval)

	v.SetDefault("bot.messages.welcome",
		"Hi, welcome to Marvin! Visit the GitHub page for more information: https://github.com/fen0x/marvin")
	v.SetDefault("bot.messages.wrong_group",
		"Sorry, this bot only works in the authorized group with id %d, not in %d")
	v.SetDefault("bot.messages.need_reply",
		"To use %s you must reply to a message")
	v.SetDefault("bot.messages.not_admin",
		"Sorry, you are not an administrator.")
	v.SetDefault("bot.messages.no_link",
		"To use this command you must reply to a message containing a link")
	v.SetDefault("bot.messages.multiple_links",
		"The original message must contain a *single* URL")
	v.SetDefault("bot.messages.not_http",
		"The original message must contain an HTTP(S) link")
	v.SetDefault("bot.messages.no_page_title",
		"I could not find the page title")
	v.SetDefault("bot.messages.no_title",
		"When using the command, add a title to the post:\n/posttext <title>")
	v.SetDefault("bot.messages.short_title",
		"A longer title is needed! Try again")
	v.SetDefault("bot.messages.invalid_link",
		"The link you replied to is not a valid reddit link")
	v.SetDefault("bot.messages.wrong_subreddit",
		"You cannot act on posts that do not belong to the subreddit: %s")
	v.SetDefault("bot.messages.post_locked",
		"You cannot comment on a locked post!")
	v.SetDefault("bot.messages.no_rule_number",
		"You did not provide the rule number to remove the post...")
	v.SetDefault("bot.messages.invalid_rule",
		"You provided an invalid rule number... Use the command as /delrule <rule number> <note (optional)>")
	v.SetDefault("bot.messages.unknown_rule",
		"You provided a rule number that is not in the list...")
	v.SetDefault("bot.messages.comment_added",
		"Comment added to the post! (by: %s)\n%s")
	v.SetDefault("bot.messages.post_created",
		"Post created: %s (by: %s)")
	v.SetDefault("bot.messages.post_deleted",
		"The post has been removed! (by: %s)")
	v.SetDefault("bot.messages.set_username_hint",
		"[%s, set a username!]")
	v.SetDefault("bot.messages.general_error",
		"Something went wrong while talking to reddit, check the logs.")
	v.SetDefault("bot.messages.removal_preamble",
		"Your post has been removed for violating the following rule:")
	v.SetDefault("bot.messages.removal_modmail",
		"If you have any doubts or questions, please send a message to [modmail](https://www.reddit.com/message/compose?to=%%2Fr%%2F%s).")
}
