package metrics

import "regexp"

var (
	versionRegexp = regexp.MustCompile(`/api/v\d+`)

	channelsRegexp             = regexp.MustCompile(`/channels/\d+`)
	messagesRegexp             = regexp.MustCompile(`/messages/\d+`)
	membersRegexp              = regexp.MustCompile(`/members/\d+`)
	webhooksExecRegexp         = regexp.MustCompile(`/webhooks/\d+/[^/]+`)
	webhooksRegexp             = regexp.MustCompile(`/webhooks/\d+`)
	usersRegexp                = regexp.MustCompile(`/users/\d+`)
	rolesRegexp                = regexp.MustCompile(`/roles/\d+`)
	guildsRegexp               = regexp.MustCompile(`/guilds/\d+`)
	applicationsRegexp         = regexp.MustCompile(`/applications/\d+`)
	commandsRegexp             = regexp.MustCompile(`/commands/\d+`)
	interactionsResponseRegexp = regexp.MustCompile(`/interactions/\d+/[^{/]+`)
	interactionsRegexp         = regexp.MustCompile(`/interactions/\d+`)

	snowflakeRegexp = regexp.MustCompile(`\d{15,}`)
)

var (
	webhookToken     = regexp.MustCompile(`/webhooks/(\d+)/[^/]+`)
	interactionToken = regexp.MustCompile(`/interactions/(\d+)/[^{/]+`)
)

// NormalizePath replaces IDs and tokens in a Discord API path with placeholders.
func NormalizePath(path string) string {
	path = channelsRegexp.ReplaceAllLiteralString(path, "/channels/{channel_id}")
	path = messagesRegexp.ReplaceAllLiteralString(path, "/messages/{message_id}")
	path = membersRegexp.ReplaceAllLiteralString(path, "/members/{user_id}")
	path = webhooksExecRegexp.ReplaceAllLiteralString(path, "/webhooks/{webhook_id}/{webhook_token}")
	path = webhooksRegexp.ReplaceAllLiteralString(path, "/webhooks/{webhook_id}")
	path = usersRegexp.ReplaceAllLiteralString(path, "/users/{user_id}")
	path = rolesRegexp.ReplaceAllLiteralString(path, "/roles/{role_id}")
	path = guildsRegexp.ReplaceAllLiteralString(path, "/guilds/{guild_id}")
	path = applicationsRegexp.ReplaceAllLiteralString(path, "/applications/{application_id}")
	path = commandsRegexp.ReplaceAllLiteralString(path, "/commands/{command_id}")
	path = interactionsResponseRegexp.ReplaceAllLiteralString(path, "/interactions/{interaction_id}/{interaction_token}")
	path = interactionsRegexp.ReplaceAllLiteralString(path, "/interactions/{interaction_id}")

	path = snowflakeRegexp.ReplaceAllLiteralString(path, "{snowflake}")

	return path
}

func EndpointMetricsName(method, path string) string {
	path = versionRegexp.ReplaceAllLiteralString(path, "")

	return method + " " + NormalizePath(path)
}

// LoggingName hides webhook and interaction tokens in path.
func LoggingName(path string) string {
	path = webhookToken.ReplaceAllString(path, "/webhooks/$1/:token")
	path = interactionToken.ReplaceAllString(path, "/interactions/$1/:token")

	return path
}
