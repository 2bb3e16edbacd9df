package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/common"
)

const invitePerms = discord.PermissionViewChannel |
	discord.PermissionReadMessageHistory |
	discord.PermissionAttachFiles |
	discord.PermissionEmbedLinks |
	discord.PermissionSendMessages |
	discord.PermissionManageWebhooks

func (bot *Bot) help(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	r := replyEmbeds(helpEmbed(common.Commands))
	r.Flags = discord.EphemeralMessage

	components := discord.ActionRowComponent{
		&discord.ButtonComponent{
			Label: "Invite",
			Style: discord.LinkButtonStyle(inviteURL(bot.Me().ID)),
		},
	}
	if bot.Config.Info.SupportServer != "" {
		components = append(components, &discord.ButtonComponent{
			Label: "Support server",
			Style: discord.LinkButtonStyle(bot.Config.Info.SupportServer),
		})
	}
	r.Components = &discord.ContainerComponents{&components}

	return r
}

func helpEmbed(cmds []api.CreateCommandData) discord.Embed {
	var b strings.Builder
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "`/%v`: %v\n", cmd.Name, cmd.Description)
	}

	return discord.Embed{
		Title:       "Ledger help",
		Description: "Ledger logs message edits, deletions and members joining or leaving, and shows message activity statistics.",
		Color:       common.ColourPurple,
		Fields: []discord.EmbedField{{
			Name:  "Commands",
			Value: strings.TrimSpace(b.String()),
		}},
		Footer: &discord.EmbedFooter{Text: "Version " + common.Version()},
	}
}

func inviteURL(id discord.UserID) string {
	return fmt.Sprintf("https://discord.com/api/oauth2/authorize?client_id=%v&permissions=%v&scope=bot%%20applications.commands",
		id, uint64(invitePerms))
}
