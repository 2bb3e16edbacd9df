// Package memory provides an in-memory store for guilds, channels and roles.
package memory

import (
	"slices"
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
)

type Store struct {
	guilds   map[discord.GuildID]*discord.Guild
	guildsMu sync.RWMutex

	channels      map[discord.ChannelID]*discord.Channel
	guildChannels map[discord.GuildID][]discord.ChannelID
	channelsMu    sync.RWMutex

	roles      map[discord.RoleID]*discord.Role
	guildRoles map[discord.GuildID][]discord.RoleID
	rolesMu    sync.RWMutex
}

func New() *Store {
	return &Store{
		guilds:        make(map[discord.GuildID]*discord.Guild),
		channels:      make(map[discord.ChannelID]*discord.Channel),
		guildChannels: make(map[discord.GuildID][]discord.ChannelID),
		roles:         make(map[discord.RoleID]*discord.Role),
		guildRoles:    make(map[discord.GuildID][]discord.RoleID),
	}
}

// remove returns slice without val.
func remove[T comparable](slice []T, val T) []T {
	if i := slices.Index(slice, val); i != -1 {
		return slices.Delete(slice, i, i+1)
	}
	return slice
}

// appendUnique appends val to slice if it isn't in slice yet.
func appendUnique[T comparable](slice []T, val T) []T {
	if slices.Contains(slice, val) {
		return slice
	}
	return append(slice, val)
}
