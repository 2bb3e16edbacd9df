package meta

import (
	"strings"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpEmbed(t *testing.T) {
	e := helpEmbed([]api.CreateCommandData{
		{Name: "ping", Description: "Show the bot's latency"},
		{Name: "help", Description: "Show a list of commands"},
	})

	require.Len(t, e.Fields, 1)
	assert.Equal(t, "`/ping`: Show the bot's latency\n`/help`: Show a list of commands", e.Fields[0].Value)
}

func TestInviteURL(t *testing.T) {
	u := inviteURL(1234)
	assert.True(t, strings.HasPrefix(u, "https://discord.com/api/oauth2/authorize?client_id=1234&permissions="))
	assert.True(t, strings.HasSuffix(u, "&scope=bot%20applications.commands"))
}

func TestUserEmbeds(t *testing.T) {
	u := discord.User{ID: 1 << 22, Username: "alice"}

	e := avatarEmbed(u, discord.User{Username: "bob"})
	assert.Equal(t, "alice's Avatar", e.Title)
	assert.Equal(t, "Requested by bob", e.Footer.Text)

	e = userInfoEmbed(u)
	assert.Equal(t, "User Info - alice", e.Title)
	require.Len(t, e.Fields, 4)
	assert.Equal(t, "No banner set", e.Fields[3].Value)

	addPermissions(&e, discord.PermissionManageGuild|discord.PermissionBanMembers)
	require.Len(t, e.Fields, 5)
	assert.Equal(t, "Manage Server, Ban Members", e.Fields[4].Value)

	created := discord.UserID(1 << 22).Time().UTC().Format("2006-01-02 15:04:05 UTC")
	assert.Equal(t, created, e.Fields[2].Value)
}

func TestServerInfoEmbed(t *testing.T) {
	g := discord.Guild{
		ID:       discord.GuildID(discord.NewSnowflake(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))),
		Name:     "Test",
		OwnerID:  5,
		Features: []discord.GuildFeature{"COMMUNITY"},
	}
	channels := []discord.Channel{
		{Type: discord.GuildText},
		{Type: discord.GuildText},
		{Type: discord.GuildPublicThread},
		{Type: discord.GuildVoice},
		{Type: discord.GuildCategory},
	}

	e := serverInfoEmbed(g, channels, 3, 1500)
	assert.Equal(t, "Server Info - Test", e.Title)
	assert.Nil(t, e.Thumbnail)

	fields := map[string]string{}
	for _, f := range e.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "<@5>", fields["Owner"])
	assert.Equal(t, "1,500", fields["Member Count"])
	assert.Equal(t, "2", fields["Text Channels"])
	assert.Equal(t, "1", fields["Voice Channels"])
	assert.Equal(t, "1", fields["Categories"])
	assert.Equal(t, "2020-01-01 00:00:00 UTC", fields["Created On"])
	assert.Equal(t, "COMMUNITY", fields["Server Features"])
}
