package redis

import (
	"context"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/mediocregopher/radix/v4"
)

const cachedGuildsKey = "ledger:cachedGuilds"

func (s *Store) IsGuildCached(ctx context.Context, guildID discord.GuildID) (bool, error) {
	var i int
	// SISMEMBER returns 1 if the guild is in the set
	err := s.client.Do(ctx, radix.Cmd(&i, "SISMEMBER", cachedGuildsKey, guildID.String()))
	if err != nil {
		return false, err
	}

	return i == 1, nil
}

func (s *Store) MarkGuildCached(ctx context.Context, guildID discord.GuildID) error {
	return s.client.Do(ctx, radix.Cmd(nil, "SADD", cachedGuildsKey, guildID.String()))
}

func (s *Store) RemoveMembers(ctx context.Context, guildID discord.GuildID) error {
	err := s.client.Do(ctx, radix.Cmd(nil, "SREM", cachedGuildsKey, guildID.String()))
	if err != nil {
		return err
	}

	return s.client.Do(ctx, radix.Cmd(nil, "DEL", guildMemberKey(guildID)))
}
