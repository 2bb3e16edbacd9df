// Package meta contains informational commands.
package meta

import (
	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common/log"
)

var (
	reply          = bot.Reply
	replyEphemeral = bot.ReplyEphemeral
	replyEmbeds    = bot.ReplyEmbeds
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding meta commands")

	bot := &Bot{Bot: root}

	bot.Router.AddFunc("ping", bot.ping)
	bot.Router.AddFunc("help", bot.help)
	bot.Router.AddFunc("avatar", bot.avatar)
	bot.Router.AddFunc("banner", bot.banner)
	bot.Router.AddFunc("userinfo", bot.userInfo)
	bot.Router.AddFunc("profile", bot.profile)
	bot.Router.AddFunc("serverinfo", bot.serverInfo)
}
