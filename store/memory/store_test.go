package memory

import (
	"context"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbot/ledger/store"
)

func TestChannels(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Channels(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetChannels(ctx, 1, []discord.Channel{{ID: 10, Name: "general"}, {ID: 11, Name: "random"}}))
	require.NoError(t, s.SetChannel(ctx, 1, discord.Channel{ID: 10, Name: "chat"}))

	chs, err := s.Channels(ctx, 1)
	require.NoError(t, err)
	require.Len(t, chs, 2)
	assert.Equal(t, "chat", chs[0].Name)
	assert.Equal(t, discord.GuildID(1), chs[0].GuildID)

	require.NoError(t, s.RemoveChannel(ctx, 1, 10))
	chs, err = s.Channels(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, chs, 1)

	_, err = s.Channel(ctx, 10)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.RemoveChannels(ctx, 1))
	_, err = s.Channel(ctx, 11)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRoles(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SetRole(ctx, 1, discord.Role{ID: 5, Name: "Mods"}))
	r, err := s.Role(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "Mods", r.Name)

	_, err = s.Role(ctx, 2, 5)
	assert.ErrorIs(t, err, store.ErrNotFound, "roles are scoped to their guild")

	require.NoError(t, s.SetRoles(ctx, 1, []discord.Role{{ID: 6}, {ID: 7}}))
	rls, err := s.Roles(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rls, 3)

	require.NoError(t, s.RemoveRole(ctx, 1, 6))
	rls, err = s.Roles(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rls, 2)
}

func TestGuilds(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.GuildSet(ctx, discord.Guild{ID: 1, Name: "one"}))
	require.NoError(t, s.GuildSet(ctx, discord.Guild{ID: 2, Name: "two"}))

	gs, err := s.Guilds(ctx)
	require.NoError(t, err)
	assert.Len(t, gs, 2)

	require.NoError(t, s.GuildRemove(ctx, 1))
	_, err = s.Guild(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// members is a MemberStore holding a fixed member list.
type members struct {
	store.MemberStore
	ms []discord.Member
}

func (m members) Members(context.Context, discord.GuildID) ([]discord.Member, error) {
	return m.ms, nil
}

func TestCabinet(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.GuildSet(ctx, discord.Guild{ID: 1, OwnerID: 99}))
	require.NoError(t, s.SetRoles(ctx, 1, []discord.Role{
		{ID: 1, Permissions: discord.PermissionSendMessages},
		{ID: 5, Permissions: discord.PermissionManageMessages},
		{ID: 6, Permissions: discord.PermissionAdministrator},
	}))
	require.NoError(t, s.SetChannels(ctx, 1, []discord.Channel{
		{ID: 12, Name: "voice", Type: discord.GuildVoice},
		{ID: 11, Name: "random", Type: discord.GuildText, Position: 1},
		{ID: 10, Name: "general", Type: discord.GuildText, Position: 0},
	}))

	c := store.Cabinet{
		GuildStore:   s,
		ChannelStore: s,
		RoleStore:    s,
		MemberStore: members{ms: []discord.Member{
			{User: discord.User{ID: 30}, RoleIDs: []discord.RoleID{5}},
			{User: discord.User{ID: 10}, RoleIDs: []discord.RoleID{5, 6}},
			{User: discord.User{ID: 20}},
		}},
	}

	chs, err := c.TextChannels(ctx, 1)
	require.NoError(t, err)
	require.Len(t, chs, 2)
	assert.Equal(t, "general", chs[0].Name)
	assert.Equal(t, "random", chs[1].Name)

	ms, err := c.RoleMembers(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, discord.UserID(10), ms[0].User.ID)
	assert.Equal(t, discord.UserID(30), ms[1].User.ID)

	perms, err := c.MemberPermissions(ctx, 1, discord.Member{User: discord.User{ID: 30}, RoleIDs: []discord.RoleID{5}})
	require.NoError(t, err)
	assert.True(t, perms.Has(discord.PermissionManageMessages))
	assert.True(t, perms.Has(discord.PermissionSendMessages), "@everyone permissions apply")
	assert.False(t, perms.Has(discord.PermissionBanMembers))

	perms, err = c.MemberPermissions(ctx, 1, discord.Member{User: discord.User{ID: 10}, RoleIDs: []discord.RoleID{6}})
	require.NoError(t, err)
	assert.Equal(t, discord.PermissionAll, perms)
}
