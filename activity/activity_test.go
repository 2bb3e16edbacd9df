package activity

import (
	"context"
	"encoding/json"
	"iter"
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	general  = Channel{ID: 1, Name: "general"}
	random   = Channel{ID: 2, Name: "random"}
	memes    = Channel{ID: 3, Name: "memes"}
	userA    = discord.UserID(100)
	userB    = discord.UserID(200)
	userC    = discord.UserID(300)
	fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
)

// fakeSource serves fixed histories per channel and counts how often each was requested.
type fakeSource struct {
	history map[discord.ChannelID][]Message
	fail    map[discord.ChannelID]error
	calls   map[discord.ChannelID]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		history: map[discord.ChannelID][]Message{},
		fail:    map[discord.ChannelID]error{},
		calls:   map[discord.ChannelID]int{},
	}
}

func (s *fakeSource) add(ch Channel, author discord.UserID, t time.Time) {
	s.history[ch.ID] = append(s.history[ch.ID], Message{AuthorID: author, ChannelID: ch.ID, Timestamp: t})
}

func (s *fakeSource) History(_ context.Context, ch Channel) iter.Seq2[Message, error] {
	s.calls[ch.ID]++

	return func(yield func(Message, error) bool) {
		for _, m := range s.history[ch.ID] {
			if !yield(m, nil) {
				return
			}
		}
		if err := s.fail[ch.ID]; err != nil {
			yield(Message{}, err)
		}
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func newTestAggregator(src HistorySource) *Aggregator {
	return &Aggregator{Source: src, Now: func() time.Time { return fixedNow }}
}

func TestCountMessages(t *testing.T) {
	src := newFakeSource()
	src.add(general, userA, date(2024, time.March, 1))
	src.add(general, userA, date(2024, time.March, 20))
	src.add(general, userB, date(2024, time.March, 2))
	src.add(general, userA, date(2024, time.April, 1))
	src.add(general, userA, date(2023, time.March, 1))

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no filter", Filter{}, 5},
		{"user", Filter{User: userA}, 4},
		{"month", Filter{Month: time.March}, 4},
		{"year", Filter{Year: 2024}, 4},
		{"user and month", Filter{User: userA, Month: time.March}, 3},
		{"all fields", Filter{User: userA, Month: time.March, Year: 2024}, 2},
		{"no match", Filter{User: userC}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := CountMessages(context.Background(), src.History(context.Background(), general), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestCountMessagesIdempotent(t *testing.T) {
	src := newFakeSource()
	for i := 1; i <= 10; i++ {
		src.add(general, userA, date(2024, time.January, i))
	}

	ctx := context.Background()
	first, err := CountMessages(ctx, src.History(ctx, general), Filter{User: userA})
	require.NoError(t, err)
	second, err := CountMessages(ctx, src.History(ctx, general), Filter{User: userA})
	require.NoError(t, err)

	assert.Equal(t, 10, first)
	assert.Equal(t, first, second)
}

func TestCountMessagesEmptyHistory(t *testing.T) {
	ctx := context.Background()
	n, err := CountMessages(ctx, newFakeSource().History(ctx, general), Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountMessagesError(t *testing.T) {
	src := newFakeSource()
	src.add(general, userA, date(2024, time.March, 1))
	src.fail[general.ID] = errors.New("connection reset")

	ctx := context.Background()
	n, err := CountMessages(ctx, src.History(ctx, general), Filter{})
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestAggregateForRole(t *testing.T) {
	// A sent 2 messages in #general, B sent 1 in #random
	src := newFakeSource()
	src.add(general, userA, date(2024, time.March, 1))
	src.add(general, userA, date(2024, time.March, 2))
	src.add(random, userB, date(2024, time.March, 3))

	ra, err := newTestAggregator(src).AggregateForRole(context.Background(), []discord.UserID{userA, userB}, []Channel{general, random}, Filter{})
	require.NoError(t, err)
	require.Len(t, ra, 2)

	assert.Equal(t, userA, ra[0].UserID)
	assert.Equal(t, 2, ra[0].Total)
	assert.Equal(t, 2, ra[0].Channels.Get(general))
	assert.Equal(t, 1, ra[0].Channels.Len(), "channels without messages are not recorded")

	assert.Equal(t, userB, ra[1].UserID)
	assert.Equal(t, 1, ra[1].Total)
	assert.Equal(t, 1, ra[1].Channels.Get(random))
	assert.Equal(t, 3, ra.Total())
}

func TestAggregateForRoleTotals(t *testing.T) {
	src := newFakeSource()
	members := []discord.UserID{userA, userB, userC}
	channels := []Channel{general, random, memes}

	for i := 0; i < 60; i++ {
		src.add(channels[i%3], members[(i/3)%3], date(2024, time.Month(i%12+1), i%28+1))
	}

	ra, err := newTestAggregator(src).AggregateForRole(context.Background(), members, channels, Filter{Year: 2024})
	require.NoError(t, err)

	sum := 0
	for i, m := range ra {
		assert.Equal(t, members[i], m.UserID, "members keep input order")
		assert.Equal(t, m.Channels.Total(), m.Total)
		sum += m.Total
	}
	assert.Equal(t, 60, sum)
}

func TestAggregateForRoleNoMembers(t *testing.T) {
	src := newFakeSource()
	src.add(general, userA, date(2024, time.March, 1))

	ra, err := newTestAggregator(src).AggregateForRole(context.Background(), nil, []Channel{general}, Filter{})
	require.NoError(t, err)
	assert.Empty(t, ra)
	assert.Zero(t, src.calls[general.ID], "no history should be read without members")
}

func TestAggregateForRoleUserFilter(t *testing.T) {
	_, err := newTestAggregator(newFakeSource()).AggregateForRole(context.Background(), []discord.UserID{userA}, []Channel{general}, Filter{User: userB})
	assert.ErrorIs(t, err, ErrUserFilterSet)
}

func TestAggregateForRoleHistoryError(t *testing.T) {
	src := newFakeSource()
	src.add(general, userA, date(2024, time.March, 1))
	cause := errors.New("missing access")
	src.fail[random.ID] = cause

	_, err := newTestAggregator(src).AggregateForRole(context.Background(), []discord.UserID{userA}, []Channel{general, random}, Filter{})
	require.Error(t, err)

	var hse *HistorySourceError
	require.True(t, errors.As(err, &hse))
	assert.Equal(t, random.ID, hse.ChannelID)
	assert.ErrorIs(t, err, cause)
}

func TestAggregateServerActivity(t *testing.T) {
	// 3 messages in March (2 in #general, 1 in #random), 1 in April, one from last year
	src := newFakeSource()
	src.add(general, userA, date(2024, time.March, 1))
	src.add(general, userB, date(2024, time.March, 2))
	src.add(general, userA, date(2024, time.April, 2))
	src.add(random, userA, date(2024, time.March, 5))
	src.add(random, userA, date(2023, time.March, 5))

	res, err := newTestAggregator(src).AggregateServerActivity(context.Background(), []Channel{general, random}, time.March)
	require.NoError(t, err)

	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, 3, res.FilteredTotal)
	assert.Equal(t, "March", res.MostActiveMonth)

	march := res.Monthly.Get(time.March)
	assert.Equal(t, 2, march.Get(general))
	assert.Equal(t, 1, march.Get(random))
	assert.Equal(t, 1, res.Monthly.Get(time.April).Get(general))
	assert.Equal(t, 4, res.Monthly.Total(), "only this year's messages are counted")
	assert.Equal(t, 1, src.calls[general.ID], "each channel is read once")
	assert.Equal(t, 1, src.calls[random.ID])
}

func TestAggregateServerActivityNoMonth(t *testing.T) {
	src := newFakeSource()
	src.add(general, userA, date(2024, time.March, 1))

	res, err := newTestAggregator(src).AggregateServerActivity(context.Background(), []Channel{general}, 0)
	require.NoError(t, err)
	assert.Zero(t, res.FilteredTotal)
	assert.Equal(t, 1, res.Monthly.Total())
}

func TestAggregateServerActivityEmpty(t *testing.T) {
	res, err := newTestAggregator(newFakeSource()).AggregateServerActivity(context.Background(), []Channel{general, random}, time.March)
	require.NoError(t, err)

	assert.Zero(t, res.Monthly.Len())
	assert.Zero(t, res.FilteredTotal)
	assert.Equal(t, NoMonth, res.MostActiveMonth)
}

func TestAggregateServerActivityTieBreak(t *testing.T) {
	// newest first: May is seen before February
	src := newFakeSource()
	src.add(general, userA, date(2024, time.May, 10))
	src.add(general, userA, date(2024, time.May, 1))
	src.add(general, userA, date(2024, time.February, 10))
	src.add(general, userA, date(2024, time.February, 1))

	res, err := newTestAggregator(src).AggregateServerActivity(context.Background(), []Channel{general}, 0)
	require.NoError(t, err)
	assert.Equal(t, "May", res.MostActiveMonth)

	var order []time.Month
	for m := range res.Monthly.All() {
		order = append(order, m)
	}
	assert.Equal(t, []time.Month{time.May, time.February}, order)
}

func TestAggregateServerActivityMonthlySum(t *testing.T) {
	src := newFakeSource()
	want := 0
	for i := 0; i < 100; i++ {
		y := 2024
		if i%4 == 0 {
			y = 2023
		} else {
			want++
		}
		src.add([]Channel{general, random, memes}[i%3], userA, date(y, time.Month(i%6+1), i%28+1))
	}

	res, err := newTestAggregator(src).AggregateServerActivity(context.Background(), []Channel{general, random, memes}, 0)
	require.NoError(t, err)

	sum := 0
	for _, cc := range res.Monthly.All() {
		for _, n := range cc.All() {
			assert.Positive(t, n)
			sum += n
		}
	}
	assert.Equal(t, want, sum)
}

func TestAggregateServerActivityCancelled(t *testing.T) {
	src := newFakeSource()
	src.add(general, userA, date(2024, time.March, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAggregator(src).AggregateServerActivity(ctx, []Channel{general}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimit(t *testing.T) {
	src := newFakeSource()
	for i := 1; i <= 10; i++ {
		src.add(general, userA, date(2024, time.January, i))
	}

	ctx := context.Background()
	n, err := CountMessages(ctx, Limited(src, 4).History(ctx, general), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = CountMessages(ctx, Limited(src, 0).History(ctx, general), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestMostActiveEmpty(t *testing.T) {
	var ma MonthlyActivity
	assert.Equal(t, NoMonth, ma.MostActive())
}

func TestServerActivityJSONByValue(t *testing.T) {
	var res ServerActivity
	res.Year = 2024
	res.Monthly.Add(time.March, general, 2)
	res.Monthly.Add(time.March, random, 1)
	res.MostActiveMonth = res.Monthly.MostActive()

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"monthly": [{"month": "March", "total": 3, "channels": [
			{"id": "1", "name": "general", "count": 2},
			{"id": "2", "name": "random", "count": 1}
		]}],
		"most_active_month": "March",
		"filtered_total": 0,
		"year": 2024
	}`, string(b))

	ma := MemberActivity{UserID: userA}
	ma.Channels.Add(memes, 4)
	b, err = json.Marshal(ma)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Channels":[{"id":"3","name":"memes","count":4}]`)
}
