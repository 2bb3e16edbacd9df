package cache

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/common/log"
)

func (bot *Bot) guildCreate(ev *gateway.GuildCreateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	isCached, err := bot.cacheGuild(ctx, ev)
	if err != nil {
		log.Errorf("caching guild %v: %v", ev.ID, err)
		return
	}

	if isCached {
		return
	}

	_, shardID := bot.StateFromGuildID(ev.ID)
	bot.queue(shardID).Add(ev.ID)
}

// cacheGuild stores the guild with its roles and channels.
// It returns whether the guild's members are already cached.
func (bot *Bot) cacheGuild(ctx context.Context, ev *gateway.GuildCreateEvent) (membersCached bool, err error) {
	g := ev.Guild
	g.ApproximateMembers = uint64(ev.MemberCount)

	err = bot.Cabinet.GuildSet(ctx, g)
	if err != nil {
		return false, errors.Wrap(err, "setting guild")
	}

	err = bot.Cabinet.SetRoles(ctx, ev.ID, ev.Roles)
	if err != nil {
		return false, errors.Wrap(err, "setting roles")
	}

	err = bot.Cabinet.SetChannels(ctx, ev.ID, append(ev.Channels, ev.Threads...))
	if err != nil {
		return false, errors.Wrap(err, "setting channels")
	}

	membersCached, err = bot.Cabinet.IsGuildCached(ctx, ev.ID)
	return membersCached, errors.Wrap(err, "checking if members are cached")
}

func (bot *Bot) guildUpdate(ev *gateway.GuildUpdateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// update events don't include the member count
	g := ev.Guild
	if old, err := bot.Cabinet.Guild(ctx, ev.ID); err == nil {
		g.ApproximateMembers = old.ApproximateMembers
	}

	if err := bot.Cabinet.GuildSet(ctx, g); err != nil {
		log.Errorf("updating guild %v: %v", ev.ID, err)
	}
}

func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) {
	// the guild is only unavailable because of an outage, so keep its data
	if ev.Unavailable {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, shardID := bot.StateFromGuildID(ev.ID)
	bot.queue(shardID).Remove(ev.ID)

	if err := bot.removeGuild(ctx, ev); err != nil {
		log.Errorf("removing guild %v from cache: %v", ev.ID, err)
	}
}

func (bot *Bot) removeGuild(ctx context.Context, ev *gateway.GuildDeleteEvent) error {
	return errors.Combine(
		errors.Wrap(bot.Cabinet.GuildRemove(ctx, ev.ID), "removing guild"),
		errors.Wrap(bot.Cabinet.RemoveChannels(ctx, ev.ID), "removing channels"),
		errors.Wrap(bot.Cabinet.RemoveRoles(ctx, ev.ID), "removing roles"),
		errors.Wrap(bot.Cabinet.RemoveMembers(ctx, ev.ID), "removing members"),
	)
}
