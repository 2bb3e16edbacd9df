package cache

import (
	"context"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/store"
	"github.com/ledgerbot/ledger/store/memory"
)

// members is an in-memory MemberStore.
type members struct {
	cached map[discord.GuildID]bool
	ms     map[discord.GuildID]map[discord.UserID]discord.Member
}

func newMembers() *members {
	return &members{
		cached: map[discord.GuildID]bool{},
		ms:     map[discord.GuildID]map[discord.UserID]discord.Member{},
	}
}

func (m *members) IsGuildCached(_ context.Context, id discord.GuildID) (bool, error) {
	return m.cached[id], nil
}

func (m *members) MarkGuildCached(_ context.Context, id discord.GuildID) error {
	m.cached[id] = true
	return nil
}

func (m *members) Member(_ context.Context, guildID discord.GuildID, userID discord.UserID) (discord.Member, error) {
	mem, ok := m.ms[guildID][userID]
	if !ok {
		return mem, store.ErrNotFound
	}
	return mem, nil
}

func (m *members) Members(_ context.Context, guildID discord.GuildID) (out []discord.Member, _ error) {
	for _, mem := range m.ms[guildID] {
		out = append(out, mem)
	}
	return out, nil
}

func (m *members) MemberExists(_ context.Context, guildID discord.GuildID, userID discord.UserID) (bool, error) {
	_, ok := m.ms[guildID][userID]
	return ok, nil
}

func (m *members) SetMember(_ context.Context, guildID discord.GuildID, mem discord.Member) error {
	if m.ms[guildID] == nil {
		m.ms[guildID] = map[discord.UserID]discord.Member{}
	}
	m.ms[guildID][mem.User.ID] = mem
	return nil
}

func (m *members) SetMembers(ctx context.Context, guildID discord.GuildID, ms []discord.Member) error {
	for _, mem := range ms {
		_ = m.SetMember(ctx, guildID, mem)
	}
	return nil
}

func (m *members) DeleteMember(_ context.Context, guildID discord.GuildID, userID discord.UserID) error {
	delete(m.ms[guildID], userID)
	return nil
}

func (m *members) RemoveMembers(_ context.Context, guildID discord.GuildID) error {
	delete(m.ms, guildID)
	delete(m.cached, guildID)
	return nil
}

func newTestBot() (*Bot, *members) {
	mem := memory.New()
	ms := newMembers()

	return &Bot{
		Bot: &bot.Bot{
			Cabinet: store.Cabinet{
				GuildStore:   mem,
				ChannelStore: mem,
				RoleStore:    mem,
				MemberStore:  ms,
			},
		},
		toFetch: common.NewMap[int, *common.Set[discord.GuildID]](),
	}, ms
}

func TestCacheGuild(t *testing.T) {
	ctx := context.Background()
	b, ms := newTestBot()

	ev := &gateway.GuildCreateEvent{
		Guild:    discord.Guild{ID: 1, Name: "Test", Roles: []discord.Role{{ID: 1}, {ID: 5}}},
		Channels: []discord.Channel{{ID: 10, Name: "general", Type: discord.GuildText}},
		Threads:  []discord.Channel{{ID: 20, Name: "thread", Type: discord.GuildPublicThread}},
	}
	ev.MemberCount = 42

	cached, err := b.cacheGuild(ctx, ev)
	require.NoError(t, err)
	assert.False(t, cached, "new guild needs its members fetched")

	_, err = b.Cabinet.Role(ctx, 1, 5)
	assert.NoError(t, err)

	b.guildUpdate(&gateway.GuildUpdateEvent{Guild: discord.Guild{ID: 1, Name: "Renamed"}})
	g, err := b.Cabinet.Guild(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", g.Name)
	assert.Equal(t, uint64(42), g.ApproximateMembers)

	chs, err := b.Cabinet.Channels(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, chs, 2)

	require.NoError(t, ms.MarkGuildCached(ctx, 1))
	cached, err = b.cacheGuild(ctx, ev)
	require.NoError(t, err)
	assert.True(t, cached)

	require.NoError(t, b.removeGuild(ctx, &gateway.GuildDeleteEvent{ID: 1}))
	_, err = b.Cabinet.Guild(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, ms.cached[1])
}

func TestMemberEvents(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBot()

	b.memberAdd(&gateway.GuildMemberAddEvent{GuildID: 1, Member: discord.Member{User: discord.User{ID: 100, Username: "alice"}}})
	b.memberUpdate(&gateway.GuildMemberUpdateEvent{GuildID: 1, User: discord.User{ID: 100, Username: "alice"}, RoleIDs: []discord.RoleID{5}, Nick: "Alice"})

	m, err := b.Cabinet.Member(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, "Alice", m.Nick)
	assert.Equal(t, []discord.RoleID{5}, m.RoleIDs)

	ms, err := b.Cabinet.RoleMembers(ctx, 1, 5)
	require.NoError(t, err)
	assert.Len(t, ms, 1)

	b.memberRemove(&gateway.GuildMemberRemoveEvent{GuildID: 1, User: discord.User{ID: 100}})
	_, err = b.Cabinet.Member(ctx, 1, 100)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestChannelAndRoleEvents(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBot()

	b.channelCreate(&gateway.ChannelCreateEvent{Channel: discord.Channel{ID: 10, GuildID: 1, Name: "general", Type: discord.GuildText}})
	b.channelUpdate(&gateway.ChannelUpdateEvent{Channel: discord.Channel{ID: 10, GuildID: 1, Name: "chat", Type: discord.GuildText}})

	chs, err := b.Cabinet.TextChannels(ctx, 1)
	require.NoError(t, err)
	require.Len(t, chs, 1)
	assert.Equal(t, "chat", chs[0].Name)

	b.roleCreate(&gateway.GuildRoleCreateEvent{GuildID: 1, Role: discord.Role{ID: 5, Name: "Mods"}})
	b.roleUpdate(&gateway.GuildRoleUpdateEvent{GuildID: 1, Role: discord.Role{ID: 5, Name: "Moderators"}})

	r, err := b.Cabinet.Role(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "Moderators", r.Name)

	b.roleDelete(&gateway.GuildRoleDeleteEvent{GuildID: 1, RoleID: 5})
	_, err = b.Cabinet.Role(ctx, 1, 5)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestQueue(t *testing.T) {
	b, _ := newTestBot()

	assert.True(t, b.queue(0).Add(1))
	assert.False(t, b.queue(0).Add(1))
	assert.Equal(t, 0, b.queue(1).Len(), "queues are per shard")
}
