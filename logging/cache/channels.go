package cache

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/common/log"
)

func (bot *Bot) channelCreate(ev *gateway.ChannelCreateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bot.Cabinet.SetChannel(ctx, ev.GuildID, ev.Channel); err != nil {
		log.Errorf("setting channel %v in %v: %v", ev.ID, ev.GuildID, err)
	}
}

func (bot *Bot) channelUpdate(ev *gateway.ChannelUpdateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bot.Cabinet.SetChannel(ctx, ev.GuildID, ev.Channel); err != nil {
		log.Errorf("updating channel %v in %v: %v", ev.ID, ev.GuildID, err)
	}
}

func (bot *Bot) channelDelete(ev *gateway.ChannelDeleteEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// a deleted channel takes its webhooks with it
	bot.ForgetWebhook(ev.ID)

	if err := bot.Cabinet.RemoveChannel(ctx, ev.GuildID, ev.ID); err != nil {
		log.Errorf("removing channel %v from %v: %v", ev.ID, ev.GuildID, err)
	}
}
