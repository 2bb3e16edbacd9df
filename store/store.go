// Package store defines interfaces for the guild, channel, role and member caches.
// Guilds, channels and roles arrive in guild create events and are kept in memory.
// Members have to be requested from Discord, so they are kept in a store that survives restarts.
package store

import (
	"context"
	"slices"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/common"
)

const ErrNotFound = errors.Sentinel("value not found in store")

type GuildStore interface {
	Guild(ctx context.Context, id discord.GuildID) (discord.Guild, error)
	Guilds(ctx context.Context) ([]discord.Guild, error)
	GuildSet(ctx context.Context, g discord.Guild) error
	GuildRemove(ctx context.Context, id discord.GuildID) error
}

type ChannelStore interface {
	Channel(ctx context.Context, channelID discord.ChannelID) (discord.Channel, error)
	Channels(ctx context.Context, guildID discord.GuildID) ([]discord.Channel, error)
	SetChannel(ctx context.Context, guildID discord.GuildID, ch discord.Channel) error
	SetChannels(ctx context.Context, guildID discord.GuildID, chs []discord.Channel) error
	RemoveChannel(ctx context.Context, guildID discord.GuildID, channelID discord.ChannelID) error
	RemoveChannels(ctx context.Context, guildID discord.GuildID) error
}

type RoleStore interface {
	Role(ctx context.Context, guildID discord.GuildID, roleID discord.RoleID) (discord.Role, error)
	Roles(ctx context.Context, guildID discord.GuildID) ([]discord.Role, error)
	SetRole(ctx context.Context, guildID discord.GuildID, r discord.Role) error
	SetRoles(ctx context.Context, guildID discord.GuildID, rls []discord.Role) error
	RemoveRole(ctx context.Context, guildID discord.GuildID, roleID discord.RoleID) error
	RemoveRoles(ctx context.Context, guildID discord.GuildID) error
}

type MemberStore interface {
	IsGuildCached(ctx context.Context, guildID discord.GuildID) (bool, error)
	MarkGuildCached(ctx context.Context, guildID discord.GuildID) error

	Member(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (discord.Member, error)
	Members(ctx context.Context, guildID discord.GuildID) ([]discord.Member, error)
	MemberExists(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (bool, error)
	SetMember(ctx context.Context, guildID discord.GuildID, m discord.Member) error
	// This can easily just wrap SetMember, this function is separate for optimization reasons
	SetMembers(ctx context.Context, guildID discord.GuildID, ms []discord.Member) error
	DeleteMember(ctx context.Context, guildID discord.GuildID, userID discord.UserID) error
	// RemoveMembers deletes all members of a guild and unmarks it as cached.
	RemoveMembers(ctx context.Context, guildID discord.GuildID) error
}

// Cabinet combines all stores.
type Cabinet struct {
	GuildStore
	ChannelStore
	RoleStore
	MemberStore
}

// TextChannels returns the guild's text channels in the order the Discord client shows them.
func (c Cabinet) TextChannels(ctx context.Context, guildID discord.GuildID) ([]activity.Channel, error) {
	chs, err := c.Channels(ctx, guildID)
	if err != nil {
		return nil, errors.Wrap(err, "getting channels")
	}

	var out []activity.Channel
	for _, ch := range common.SortChannels(chs) {
		if !common.IsTextChannel(ch) {
			continue
		}
		out = append(out, activity.Channel{ID: ch.ID, Name: ch.Name})
	}
	return out, nil
}

// RoleMembers returns all cached members of the guild that have the given role, ordered by user ID.
func (c Cabinet) RoleMembers(ctx context.Context, guildID discord.GuildID, roleID discord.RoleID) ([]discord.Member, error) {
	ms, err := c.Members(ctx, guildID)
	if err != nil {
		return nil, errors.Wrap(err, "getting members")
	}

	out := make([]discord.Member, 0)
	for _, m := range ms {
		if slices.Contains(m.RoleIDs, roleID) {
			out = append(out, m)
		}
	}

	slices.SortFunc(out, func(a, b discord.Member) int {
		switch {
		case a.User.ID < b.User.ID:
			return -1
		case a.User.ID > b.User.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// MemberPermissions returns the guild-level permissions of a member.
func (c Cabinet) MemberPermissions(ctx context.Context, guildID discord.GuildID, m discord.Member) (discord.Permissions, error) {
	g, err := c.Guild(ctx, guildID)
	if err != nil {
		return 0, errors.Wrap(err, "getting guild")
	}

	if g.OwnerID == m.User.ID {
		return discord.PermissionAll, nil
	}

	roles, err := c.Roles(ctx, guildID)
	if err != nil {
		return 0, errors.Wrap(err, "getting roles")
	}

	var perms discord.Permissions
	for _, r := range roles {
		if discord.RoleID(guildID) == r.ID || slices.Contains(m.RoleIDs, r.ID) {
			perms |= r.Permissions
		}
	}

	if perms.Has(discord.PermissionAdministrator) {
		return discord.PermissionAll, nil
	}
	return perms, nil
}
