package config

import (
	"context"
	"slices"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/db"
)

func (bot *Bot) showConfig(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	ev := data.Event
	if resp := bot.checkManage(ctx, ev); resp != nil {
		return resp
	}

	guild, err := bot.Cabinet.Guild(ctx, ev.GuildID)
	if err != nil {
		return bot.ReportError(ev, errors.Wrap(err, "getting guild"))
	}

	cfg, err := bot.DB.GuildConfig(ctx, ev.GuildID)
	if err != nil {
		return bot.ReportError(ev, errors.Wrap(err, "getting guild config"))
	}

	channels, err := bot.Cabinet.Channels(ctx, ev.GuildID)
	if err != nil {
		return bot.ReportError(ev, errors.Wrap(err, "getting guild channels"))
	}

	return replyEmbeds(configEmbed(guild, cfg, channels))
}

func configEmbed(guild discord.Guild, cfg db.GuildConfig, channels []discord.Channel) discord.Embed {
	prettyChannel := func(id discord.ChannelID) string {
		if !id.IsValid() {
			return "Not set"
		}

		if !slices.ContainsFunc(channels, func(ch discord.Channel) bool { return ch.ID == id }) {
			return "*unknown channel " + id.String() + "*"
		}
		return id.Mention()
	}

	roles := "None"
	if len(cfg.AdminRoles) > 0 {
		mentions := make([]string, 0, len(cfg.AdminRoles))
		for _, id := range cfg.AdminRoles {
			mentions = append(mentions, id.Mention())
		}
		roles = strings.Join(mentions, ", ")
	}

	return discord.Embed{
		Title: "Configuration for " + guild.Name,
		Color: common.ColourPurple,
		Fields: []discord.EmbedField{
			{Name: "Edited and deleted messages", Value: prettyChannel(cfg.Channels.Message), Inline: true},
			{Name: "Members joining and leaving", Value: prettyChannel(cfg.Channels.Member), Inline: true},
			{Name: "Roles allowed to use /modstats", Value: roles},
		},
	}
}
