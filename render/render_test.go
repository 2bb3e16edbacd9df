package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbot/ledger/activity"
)

var (
	guild   = discord.Guild{ID: 1, Name: "Test Server"}
	general = activity.Channel{ID: 10, Name: "general"}
	random  = activity.Channel{ID: 11, Name: "random"}
	now     = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
)

var pngHeader = []byte("\x89PNG")

func serverActivity() activity.ServerActivity {
	var res activity.ServerActivity
	res.Year = 2024
	res.Monthly.Add(time.May, general, 5)
	res.Monthly.Add(time.March, general, 2)
	res.Monthly.Add(time.March, random, 1)
	res.MostActiveMonth = res.Monthly.MostActive()
	return res
}

func TestServerStatsEmbedOverall(t *testing.T) {
	e, files, err := ServerStatsEmbed(guild, serverActivity(), 0, now)
	require.NoError(t, err)

	assert.Equal(t, "Server Message Statistics", e.Title)
	assert.Equal(t, "Test Server", e.Author.Name)
	assert.Equal(t, "Overall Server Statistics", e.Footer.Text)

	require.Len(t, e.Fields, 3)
	assert.Equal(t, "May Activity", e.Fields[0].Name)
	assert.Equal(t, "March Activity", e.Fields[1].Name)
	assert.Equal(t, "• **general:** 2 messages\n• **random:** 1 messages", e.Fields[1].Value)
	assert.Equal(t, "Most Active Month", e.Fields[2].Name)
	assert.Equal(t, "May", e.Fields[2].Value)

	require.Len(t, files, 1)
	assert.Equal(t, LineChartName, files[0].Name)
	assert.Equal(t, "attachment://"+LineChartName, e.Image.URL)
}

func TestServerStatsEmbedMonth(t *testing.T) {
	res := serverActivity()
	res.FilteredTotal = 3

	e, files, err := ServerStatsEmbed(guild, res, time.March, now)
	require.NoError(t, err)

	assert.Equal(t, "Statistics for March", e.Footer.Text)
	require.Len(t, e.Fields, 3)
	assert.Equal(t, "general", e.Fields[0].Name)
	assert.Equal(t, "• **2** messages", e.Fields[0].Value)
	assert.True(t, e.Fields[0].Inline)
	assert.Contains(t, e.Description, "**3** messages")

	require.Len(t, files, 1)
	assert.Equal(t, PieChartName, files[0].Name)
}

func TestServerStatsEmbedEmptyMonth(t *testing.T) {
	e, files, err := ServerStatsEmbed(guild, serverActivity(), time.January, now)
	require.NoError(t, err)

	assert.Empty(t, files)
	assert.Nil(t, e.Image)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Total Messages in January", e.Fields[0].Name)
	assert.Equal(t, "No messages found.", e.Fields[0].Value)
}

func TestServerStatsEmbedNoMessages(t *testing.T) {
	var res activity.ServerActivity
	res.MostActiveMonth = res.Monthly.MostActive()

	e, files, err := ServerStatsEmbed(guild, res, 0, now)
	require.NoError(t, err)

	assert.Empty(t, files, "no chart is drawn without data")
	require.Len(t, e.Fields, 1)
	assert.Equal(t, activity.NoMonth, e.Fields[0].Value)
}

func TestRoleStatsEmbed(t *testing.T) {
	role := discord.Role{ID: 5, Name: "Moderators"}
	members := []discord.Member{
		{User: discord.User{ID: 100, Username: "alice"}, Nick: "Alice"},
		{User: discord.User{ID: 200, Username: "bob"}},
	}

	res := activity.RoleActivity{{UserID: 100, Total: 2}, {UserID: 200}}
	res[0].Channels.Add(general, 2)

	e := RoleStatsEmbed(guild, role, members, res, activity.Filter{Month: time.March, Year: 2024}, now)

	assert.Equal(t, "Moderators Stats", e.Title)
	assert.Equal(t, "Statistics for March 2024", e.Footer.Text)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Alice | 100", e.Fields[0].Name)
	assert.Equal(t, "**Total Messages:** 2\n• **general:** 2 messages", e.Fields[0].Value)
	assert.Equal(t, "bob | 200", e.Fields[1].Name)
	assert.Equal(t, "**Total Messages:** 0\nNo messages found in any channel.", e.Fields[1].Value)
}

func TestRoleStatsEmbedLimits(t *testing.T) {
	var (
		members []discord.Member
		res     activity.RoleActivity
	)
	for i := 1; i <= 40; i++ {
		members = append(members, discord.Member{User: discord.User{ID: discord.UserID(i), Username: "user"}})
		res = append(res, activity.MemberActivity{UserID: discord.UserID(i)})
	}

	e := RoleStatsEmbed(guild, discord.Role{Name: "Everyone"}, members, res, activity.Filter{}, now)
	assert.Less(t, len(e.Fields), MaxFields)
	assert.LessOrEqual(t, e.Length(), MaxEmbedLength)
	assert.True(t, strings.HasPrefix(e.Description, "Only the first"))
	assert.Nil(t, e.Footer)
}

func TestChronological(t *testing.T) {
	res := serverActivity()
	labels, values := Chronological(&res.Monthly)

	assert.Equal(t, []string{"March", "May"}, labels)
	assert.Equal(t, []int{3, 5}, values)
}

func TestCharts(t *testing.T) {
	b, err := PieChart("title", []string{"a", "b"}, []int{1, 2})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngHeader))

	_, err = PieChart("title", []string{"a"}, []int{0})
	assert.ErrorIs(t, err, ErrNotEnoughData)

	b, err = LineChart("title", "x", "y", []string{"March", "May"}, []int{3, 5})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngHeader))

	_, err = LineChart("title", "x", "y", []string{"March"}, []int{3})
	assert.ErrorIs(t, err, ErrNotEnoughData)
}
