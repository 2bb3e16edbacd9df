package meta

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/dustin/go-humanize"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

func (bot *Bot) guildCreate(ev *gateway.GuildCreateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := bot.DB.CreateGuild(ctx, ev.ID)
	if err != nil {
		log.Errorf("creating guild %v (%v) in database: %v", ev.ID, ev.Name, err)
	}

	// guild config isn't deleted when the bot leaves the guild
	// so if the guild already has a configuration, we check when we joined
	// if it's more than a minute ago it's safe to assume we were already in the guild
	if exists && ev.Joined.Time().Before(time.Now().Add(-time.Minute)) {
		return
	}

	log.Infof("Joined new guild %v (%v)", ev.ID, ev.Name)

	if !bot.Config.Bot.JoinLeaveLog.IsValid() {
		return
	}

	bot.Send(ctx, discord.NullGuildID, ev, SendData{
		ChannelID: bot.Config.Bot.JoinLeaveLog,
		Embeds: []discord.Embed{{
			Title:       "Joined guild",
			Description: fmt.Sprintf("Joined guild **%v**", ev.Name),
			Color:       common.ColourGreen,
			Timestamp:   ev.Joined,
			Thumbnail:   &discord.EmbedThumbnail{URL: ev.IconURL()},
			Fields: []discord.EmbedField{
				{Name: "Members", Value: humanize.Comma(int64(ev.MemberCount)), Inline: true},
				{Name: "Owner", Value: ev.OwnerID.Mention(), Inline: true},
			},
			Footer: &discord.EmbedFooter{
				Text: "ID: " + ev.ID.String(),
			},
		}},
	})
}

func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) {
	if ev.Unavailable {
		log.Warnf("Guild %v is unavailable", ev.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// the guild is removed from the cache at the same time, so it might already be gone
	name := "unknown guild"
	if g, err := bot.Cabinet.Guild(ctx, ev.ID); err == nil {
		name = g.Name
	}

	log.Infof("Left guild %v (%v)", ev.ID, name)

	if !bot.Config.Bot.JoinLeaveLog.IsValid() {
		return
	}

	bot.Send(ctx, discord.NullGuildID, ev, SendData{
		ChannelID: bot.Config.Bot.JoinLeaveLog,
		Embeds: []discord.Embed{{
			Title:       "Left guild",
			Description: fmt.Sprintf("Left guild **%v**", name),
			Color:       common.ColourRed,
			Timestamp:   discord.NowTimestamp(),
			Footer: &discord.EmbedFooter{
				Text: "ID: " + ev.ID.String(),
			},
		}},
	})
}
