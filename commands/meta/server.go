package meta

import (
	"context"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"

	"github.com/ledgerbot/ledger/common"
)

func (bot *Bot) serverInfo(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	guildID := data.Event.GuildID

	guild, err := bot.Cabinet.Guild(ctx, guildID)
	if err != nil {
		return bot.ReportError(data.Event, errors.Wrap(err, "getting guild"))
	}

	channels, err := bot.Cabinet.Channels(ctx, guildID)
	if err != nil {
		return bot.ReportError(data.Event, errors.Wrap(err, "getting channels"))
	}

	roles, err := bot.Cabinet.Roles(ctx, guildID)
	if err != nil {
		return bot.ReportError(data.Event, errors.Wrap(err, "getting roles"))
	}

	members, err := bot.Cabinet.Members(ctx, guildID)
	if err != nil {
		return bot.ReportError(data.Event, errors.Wrap(err, "getting members"))
	}

	return replyEmbeds(serverInfoEmbed(guild, channels, len(roles), len(members)))
}

func serverInfoEmbed(g discord.Guild, channels []discord.Channel, roleCount, memberCount int) discord.Embed {
	var text, voice, categories int
	for _, ch := range channels {
		switch {
		case common.IsTextChannel(ch):
			text++
		case ch.Type == discord.GuildVoice, ch.Type == discord.GuildStageVoice:
			voice++
		case ch.Type == discord.GuildCategory:
			categories++
		}
	}

	features := "None"
	if len(g.Features) > 0 {
		fs := make([]string, 0, len(g.Features))
		for _, f := range g.Features {
			fs = append(fs, string(f))
		}
		features = strings.Join(fs, ", ")
	}

	e := discord.Embed{
		Title: "Server Info - " + g.Name,
		Color: common.ColourBlue,
		Fields: []discord.EmbedField{
			{Name: "Server Name", Value: g.Name, Inline: true},
			{Name: "Server ID", Value: g.ID.String(), Inline: true},
			{Name: "Owner", Value: g.OwnerID.Mention(), Inline: true},
			{Name: "Boost Level", Value: humanize.Comma(int64(g.NitroBoost)), Inline: true},
			{Name: "Boost Count", Value: humanize.Comma(int64(g.NitroBoosters)), Inline: true},
			{Name: "Member Count", Value: humanize.Comma(int64(memberCount)), Inline: true},
			{Name: "Role Count", Value: humanize.Comma(int64(roleCount)), Inline: true},
			{Name: "Text Channels", Value: humanize.Comma(int64(text)), Inline: true},
			{Name: "Voice Channels", Value: humanize.Comma(int64(voice)), Inline: true},
			{Name: "Categories", Value: humanize.Comma(int64(categories)), Inline: true},
			{Name: "Created On", Value: common.FormatTime(g.ID.Time()), Inline: true},
			{Name: "Server Features", Value: features},
		},
	}
	if g.Icon != "" {
		e.Thumbnail = &discord.EmbedThumbnail{URL: g.IconURL()}
	}
	return e
}
