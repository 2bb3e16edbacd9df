package cache

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/common/log"
)

func (bot *Bot) memberAdd(ev *gateway.GuildMemberAddEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bot.Cabinet.SetMember(ctx, ev.GuildID, ev.Member); err != nil {
		log.Errorf("setting member %v in %v: %v", ev.User.ID, ev.GuildID, err)
	}
}

func (bot *Bot) memberUpdate(ev *gateway.GuildMemberUpdateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// a missing member is fine, the event has every field we use
	m, err := bot.Cabinet.Member(ctx, ev.GuildID, ev.User.ID)
	if err != nil {
		m = discord.Member{}
	}
	ev.UpdateMember(&m)

	if err := bot.Cabinet.SetMember(ctx, ev.GuildID, m); err != nil {
		log.Errorf("updating member %v in %v: %v", ev.User.ID, ev.GuildID, err)
	}
}

func (bot *Bot) memberRemove(ev *gateway.GuildMemberRemoveEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bot.Cabinet.DeleteMember(ctx, ev.GuildID, ev.User.ID); err != nil {
		log.Errorf("removing member %v from %v: %v", ev.User.ID, ev.GuildID, err)
	}
}
