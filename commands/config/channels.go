package config

import (
	"context"
	"fmt"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/db"
)

func (bot *Bot) setLogChannel(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return bot.setChannel(ctx, data, "Edited and deleted messages", func(lc *db.LogChannels) *discord.ChannelID {
		return &lc.Message
	})
}

func (bot *Bot) setMemberLog(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return bot.setChannel(ctx, data, "Members joining and leaving", func(lc *db.LogChannels) *discord.ChannelID {
		return &lc.Member
	})
}

func (bot *Bot) setChannel(
	ctx context.Context, data cmdroute.CommandData,
	subject string, field func(*db.LogChannels) *discord.ChannelID,
) *api.InteractionResponseData {
	ev := data.Event
	if resp := bot.checkManage(ctx, ev); resp != nil {
		return resp
	}

	sf, err := data.Options.Find("channel").SnowflakeValue()
	if err != nil {
		return replyEphemeral("Please provide a valid channel.")
	}
	chID := discord.ChannelID(sf)

	ch, err := bot.Cabinet.Channel(ctx, chID)
	if err != nil || ch.GuildID != ev.GuildID || ch.Type != discord.GuildText {
		return replyEphemeral("That channel can't be used as a log channel.")
	}

	_, err = bot.DB.UpdateGuildConfig(ctx, ev.GuildID, func(cfg *db.GuildConfig) error {
		*field(&cfg.Channels) = chID
		return nil
	})
	if err != nil {
		log.Errorf("setting log channel in guild %v: %v", ev.GuildID, err)
		return bot.ReportError(ev, errors.Wrap(err, "updating guild config"))
	}

	return reply(fmt.Sprintf("%v will now be logged to %v.", subject, chID.Mention()))
}
