// Package stats contains the message activity commands.
package stats

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common/log"
)

// the receiver is named bot, so these are aliased for use in methods
var (
	replyEphemeral = bot.ReplyEphemeral
	replyEmbeds    = bot.ReplyEmbeds
	replyFiles     = bot.ReplyFiles
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding stats commands")

	bot := &Bot{Bot: root}

	bot.Router.AddFunc("serverstats", bot.serverStats)
	bot.Router.AddFunc("modstats", bot.modStats)
}

// userError returns the message shown to the user for errors caused by their input or by a running scan.
func userError(err error) (msg string, ok bool) {
	var ife *activity.InvalidFilterError
	switch {
	case errors.As(err, &ife):
		return ife.Message(), true
	case errors.Is(err, bot.ErrScanRunning):
		return "A scan is already running in this server. Please wait for it to finish.", true
	}
	return "", false
}

// errorResponse returns a reply for err, reporting it if it's an internal error.
func (bot *Bot) errorResponse(ev *discord.InteractionEvent, err error) *api.InteractionResponseData {
	if msg, ok := userError(err); ok {
		return replyEphemeral(msg)
	}
	return bot.ReportError(ev, err)
}
