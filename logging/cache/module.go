// Package cache contains handlers that are *only* used for caching.
// These should not call bot.Send at any point.
package cache

import (
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/session/shard"
	"github.com/diamondburned/arikawa/v3/state"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

type Bot struct {
	*bot.Bot

	// guilds waiting for their members to be fetched, by shard ID
	toFetch *common.Map[int, *common.Set[discord.GuildID]]
}

func Setup(root *bot.Bot) {
	log.Debug("Adding cache handlers")

	bot := &Bot{
		Bot:     root,
		toFetch: common.NewMap[int, *common.Set[discord.GuildID]](),
	}

	bot.AddHandler(
		// Cache guild (separate from logging as *all* guilds should be cached, not just new guilds)
		// Also add the guild to the fetch queue if needed
		bot.guildCreate,
		bot.guildUpdate,
		bot.guildDelete,
		// Cache guild members when they're received
		bot.guildMembersChunk,
		bot.memberAdd,
		bot.memberUpdate,
		bot.memberRemove,
		// Channels and roles are only used to resolve commands, so they're cached here too
		bot.channelCreate,
		bot.channelUpdate,
		bot.channelDelete,
		bot.roleCreate,
		bot.roleUpdate,
		bot.roleDelete,
	)

	// set up fetch loop
	bot.Manager.ForEach(func(shard shard.Shard) {
		s := shard.(*state.State)

		var o sync.Once
		s.AddHandler(func(*gateway.ReadyEvent) {
			o.Do(func() {
				go bot.fetchLoop(s)
			})
		})
	})
}

// queue returns the fetch queue for a shard.
func (bot *Bot) queue(shardID int) *common.Set[discord.GuildID] {
	return bot.toFetch.GetOrCreate(shardID, func() *common.Set[discord.GuildID] {
		return common.NewSet[discord.GuildID]()
	})
}
