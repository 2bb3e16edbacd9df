package owner

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"

	"github.com/ledgerbot/ledger/common/log"
)

func (bot *Bot) restart(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	log.Infof("Restart requested by %v", data.Event.SenderID())

	// give the response time to be sent
	time.AfterFunc(time.Second, bot.Restart)

	return reply("Restarting...")
}
