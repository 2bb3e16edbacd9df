// Package config contains the commands that change a server's configuration.
package config

import (
	"context"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/db"
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
	log.Debug("Adding config commands")

	bot := &Bot{Bot: root}

	bot.Router.AddFunc("config", bot.showConfig)
	bot.Router.AddFunc("setlogchannel", bot.setLogChannel)
	bot.Router.AddFunc("setmemberlog", bot.setMemberLog)
	bot.Router.AddFunc("setadminrole", bot.setAdminRole)
	bot.Router.AddFunc("removeadminrole", bot.removeAdminRole)
}

// checkManage returns a response if the member can't change the configuration, or nil if they can.
func (bot *Bot) checkManage(ctx context.Context, ev *discord.InteractionEvent) *api.InteractionResponseData {
	ok, err := bot.Allowed(ctx, ev, db.CapabilityManageConfig)
	if err != nil {
		return bot.ReportError(ev, err)
	}
	if !ok {
		return replyEphemeral("You need the Manage Server permission to use this command.")
	}
	return nil
}
