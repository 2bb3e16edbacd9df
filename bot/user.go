package bot

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

const userCacheTTL = time.Hour

// User returns a user from the cache, or from Discord's API if the user is not cached.
func (bot *Bot) User(id discord.UserID) (*discord.User, error) {
	v, err := bot.users.Get(id.String())
	if err == nil {
		u := v.(discord.User)
		return &u, nil
	}

	u, err := bot.Rest.User(id)
	if err != nil {
		return nil, err
	}
	bot.SetUser(*u)
	return u, nil
}

// GuildUser returns a user from the given guild.
// If the user is still a member of the guild, it will grab the user from cache.
// Otherwise, it will request the user object from Discord directly.
func (bot *Bot) GuildUser(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (*discord.User, error) {
	m, err := bot.Cabinet.Member(ctx, guildID, userID)
	if err == nil {
		return &m.User, nil
	}
	return bot.User(userID)
}

func (bot *Bot) SetUser(u discord.User) {
	_ = bot.users.Set(u.ID.String(), u)
}

func (bot *Bot) handleEventForCache(iface interface{}) {
	switch ev := iface.(type) {
	case *gateway.MessageCreateEvent:
		bot.SetUser(ev.Author)
	case *gateway.GuildMemberAddEvent:
		bot.SetUser(ev.User)
	case *gateway.GuildMemberRemoveEvent:
		bot.SetUser(ev.User)
	case *gateway.GuildMemberUpdateEvent:
		bot.SetUser(ev.User)
	}
}
