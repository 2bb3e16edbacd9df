// Package owner contains commands only the bot owner can use.
package owner

import (
	"context"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common/log"
)

var (
	reply          = bot.Reply
	replyEphemeral = bot.ReplyEphemeral
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding owner commands")

	bot := &Bot{Bot: root}

	bot.Router.Group(func(r *cmdroute.Router) {
		r.Use(bot.ownerOnly)

		r.AddFunc("listguilds", bot.listGuilds)
		r.AddFunc("leaveguild", bot.leaveGuild)
		r.AddFunc("restart", bot.restart)
	})
}

// ownerOnly rejects commands not sent by the bot owner.
func (bot *Bot) ownerOnly(next cmdroute.InteractionHandler) cmdroute.InteractionHandler {
	return cmdroute.InteractionHandlerFunc(func(ctx context.Context, ev *discord.InteractionEvent) *api.InteractionResponse {
		if !bot.IsOwner(ev) {
			return &api.InteractionResponse{
				Type: api.MessageInteractionWithSource,
				Data: replyEphemeral("This command can only be used by the bot owner."),
			}
		}
		return next.HandleInteraction(ctx, ev)
	})
}
