package bot

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/common/log"
)

func (bot *Bot) interactionCreate(ev *gateway.InteractionCreateEvent) {
	if bot.Config.Bot.TestMode {
		log.Debugf("ignoring interaction %v in test mode", ev.ID)
		return
	}

	resp := bot.handleInteraction(&ev.InteractionEvent)
	if resp == nil {
		return
	}

	err := bot.Rest.RespondInteraction(ev.ID, ev.Token, *resp)
	if err != nil {
		log.Errorf("responding to interaction %v: %v", ev.ID, err)
	}
}

func (bot *Bot) handleInteraction(ev *discord.InteractionEvent) *api.InteractionResponse {
	if _, ok := ev.Data.(*discord.CommandInteraction); !ok {
		return bot.Router.HandleInteraction(ev)
	}

	bot.Metrics.IncCommand()

	// all commands are guild-only
	if !ev.GuildID.IsValid() {
		return &api.InteractionResponse{
			Type: api.MessageInteractionWithSource,
			Data: ReplyEphemeral("This command can only be used in a server."),
		}
	}

	return bot.Router.HandleInteraction(ev)
}
