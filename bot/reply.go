package bot

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"
)

// Reply returns a plain text response. Mentions are never parsed.
func Reply(content string) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Content:         option.NewNullableString(content),
		AllowedMentions: &api.AllowedMentions{Parse: []api.AllowedMentionType{}},
	}
}

// ReplyEphemeral returns a plain text response only visible to the user.
func ReplyEphemeral(content string) *api.InteractionResponseData {
	r := Reply(content)
	r.Flags = discord.EphemeralMessage
	return r
}

// ReplyEmbeds returns a response with the given embeds.
func ReplyEmbeds(embeds ...discord.Embed) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Embeds:          &embeds,
		AllowedMentions: &api.AllowedMentions{Parse: []api.AllowedMentionType{}},
	}
}

// ReplyFiles returns a response with an embed and its attachments.
func ReplyFiles(embed discord.Embed, files []sendpart.File) *api.InteractionResponseData {
	r := ReplyEmbeds(embed)
	r.Files = files
	return r
}
