// Package messages archives guild messages and logs their edits and deletions.
package messages

import (
	"sync"

	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common/log"
)

type SendData = bot.SendData

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding messages handlers")

	bot := &Bot{Bot: root}

	bot.AddHandler(
		// saves messages to the archive
		bot.messageCreate,
		bot.messageUpdate,
		bot.messageDelete,
		// a guild that removed the bot doesn't get its messages logged anymore
		bot.guildDelete,
	)

	// only one purge loop for all shards
	var o sync.Once
	bot.AddHandler(func(*gateway.ReadyEvent) {
		o.Do(func() {
			go bot.purgeLoop()
		})
	})
}
