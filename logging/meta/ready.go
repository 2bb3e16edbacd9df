package meta

import (
	"context"
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	shardID, numShards := 0, 1
	if ev.Shard != nil {
		shardID, numShards = ev.Shard.ShardID(), ev.Shard.NumShards()
	}

	log.Infof("Shard %d/%d is ready! Logged in as %v, in %d guild(s)", shardID+1, numShards, ev.User.Tag(), len(ev.Guilds))

	bot.statusOnce.Do(func() { go bot.statusLoop() })

	if !bot.Config.Bot.MetaLog.IsValid() {
		return
	}

	bot.Send(context.Background(), discord.NullGuildID, ev, SendData{
		ChannelID: bot.Config.Bot.MetaLog,
		Embeds: []discord.Embed{{
			Title:       "Shard ready",
			Description: fmt.Sprintf("Shard %d/%d is ready", shardID+1, numShards),
			Color:       common.ColourPurple,
			Timestamp:   discord.NowTimestamp(),
			Fields: []discord.EmbedField{
				{Name: "Guilds", Value: fmt.Sprint(len(ev.Guilds)), Inline: true},
				{Name: "Version", Value: common.Version(), Inline: true},
			},
			Footer: &discord.EmbedFooter{
				Text: ev.User.Tag(),
			},
		}},
	})
}
