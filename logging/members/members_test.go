package members

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbot/ledger/common"
)

func TestMemberEmbed(t *testing.T) {
	u := discord.User{ID: 42, Username: "alice", Avatar: "abc"}
	e := memberEmbed("Member Joined", common.ColourGreen, u, "Joined at 2024-06-15 12:30:00 UTC")

	assert.Equal(t, "Member Joined", e.Title)
	assert.Equal(t, common.ColourGreen, e.Color)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "User", e.Fields[0].Name)
	assert.Contains(t, e.Fields[0].Value, "(42)")
	assert.Equal(t, u.AvatarURL(), e.Thumbnail.URL)
	assert.Equal(t, "Joined at 2024-06-15 12:30:00 UTC", e.Footer.Text)
}
