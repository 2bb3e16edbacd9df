package meta

import (
	"context"
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/common"
)

const errUserNotFound = errors.Sentinel("user not found")

// targetUser returns the user given in the "user" option, or the user who ran the command.
// If fresh is true the user is always fetched from Discord, which is needed for banners.
func (bot *Bot) targetUser(data cmdroute.CommandData, fresh bool) (*discord.User, error) {
	id := data.Event.SenderID()
	if sf, err := data.Options.Find("user").SnowflakeValue(); err == nil && sf.IsValid() {
		id = discord.UserID(sf)
	}

	var (
		u   *discord.User
		err error
	)
	if fresh {
		u, err = bot.Rest.User(id)
	} else {
		u, err = bot.User(id)
	}
	if err != nil {
		return nil, errors.Append(errUserNotFound, err)
	}
	return u, nil
}

func (bot *Bot) avatar(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	u, err := bot.targetUser(data, false)
	if err != nil {
		return replyEphemeral("User not found. Please provide a valid user ID or mention.")
	}

	return replyEmbeds(avatarEmbed(*u, *data.Event.Sender()))
}

func (bot *Bot) banner(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	u, err := bot.targetUser(data, true)
	if err != nil {
		return replyEphemeral("User not found. Please provide a valid user ID or mention.")
	}

	if u.Banner == "" {
		return reply(fmt.Sprintf("%v does not have a banner set.", u.Username))
	}

	return replyEmbeds(discord.Embed{
		Title:  u.Username + "'s Banner",
		Color:  common.ColourBlue,
		Image:  &discord.EmbedImage{URL: u.BannerURL() + "?size=1024"},
		Footer: &discord.EmbedFooter{Text: "Requested by " + data.Event.Sender().Username},
	})
}

func (bot *Bot) userInfo(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	u, err := bot.targetUser(data, true)
	if err != nil {
		return replyEphemeral("User not found. Please provide a valid user ID or mention.")
	}

	e := userInfoEmbed(*u)

	// members also get their key permissions listed
	if m, err := bot.Cabinet.Member(ctx, data.Event.GuildID, u.ID); err == nil {
		perms, err := bot.Cabinet.MemberPermissions(ctx, data.Event.GuildID, m)
		if err == nil {
			addPermissions(&e, perms)
		}
	}

	return replyEmbeds(e)
}

func (bot *Bot) profile(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	u := data.Event.Sender()
	return replyEphemeral(fmt.Sprintf("Username: %v\nID: %v", u.Username, u.ID))
}

func addPermissions(e *discord.Embed, perms discord.Permissions) {
	value := "None"
	if names := common.PermStrings(perms); len(names) > 0 {
		value = strings.Join(names, ", ")
	}
	e.Fields = append(e.Fields, discord.EmbedField{Name: "Key Permissions", Value: value})
}

func avatarEmbed(u, requester discord.User) discord.Embed {
	return discord.Embed{
		Title:  u.Username + "'s Avatar",
		Color:  common.ColourBlue,
		Image:  &discord.EmbedImage{URL: u.AvatarURLWithType(discord.PNGImage) + "?size=1024"},
		Footer: &discord.EmbedFooter{Text: "Requested by " + requester.Username},
	}
}

func userInfoEmbed(u discord.User) discord.Embed {
	banner := "No banner set"
	if u.Banner != "" {
		banner = fmt.Sprintf("[Link](%v)", u.BannerURL()+"?size=1024")
	}

	return discord.Embed{
		Title:     "User Info - " + u.Username,
		Color:     common.ColourBlue,
		Thumbnail: &discord.EmbedThumbnail{URL: u.AvatarURL()},
		Fields: []discord.EmbedField{
			{Name: "Username", Value: u.Tag(), Inline: true},
			{Name: "User ID", Value: u.ID.String(), Inline: true},
			{Name: "Account Created On", Value: common.FormatTime(u.ID.Time())},
			{Name: "Banner", Value: banner},
		},
	}
}
