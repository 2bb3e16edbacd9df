// Package meta logs shard and guild events to the bot's own log channels.
package meta

import (
	"sync"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common/log"
)

type SendData = bot.SendData

type Bot struct {
	*bot.Bot

	statusOnce sync.Once
}

func Setup(root *bot.Bot) {
	log.Debug("Adding meta handlers")

	bot := &Bot{Bot: root}

	bot.AddHandler(
		// shard ready logging
		bot.ready,
		// initializing guild config + logging guild join
		bot.guildCreate,
		// logging guild leave
		bot.guildDelete,
	)
}
