package discordsource

import (
	"context"
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbot/ledger/activity"
)

// fakeClient holds messages newest first, the same order Discord returns them in.
type fakeClient struct {
	messages []discord.Message
	failAt   int
	requests int
}

func (c *fakeClient) page(start int, limit uint) ([]discord.Message, error) {
	c.requests++
	if c.failAt > 0 && c.requests >= c.failAt {
		return nil, errors.New("503 Service Unavailable")
	}

	end := start + int(limit)
	if end > len(c.messages) {
		end = len(c.messages)
	}
	return c.messages[start:end], nil
}

func (c *fakeClient) Messages(_ discord.ChannelID, limit uint) ([]discord.Message, error) {
	return c.page(0, limit)
}

func (c *fakeClient) MessagesBefore(_ discord.ChannelID, before discord.MessageID, limit uint) ([]discord.Message, error) {
	for i, m := range c.messages {
		if m.ID == before {
			return c.page(i+1, limit)
		}
	}
	return c.page(len(c.messages), limit)
}

func newFakeClient(n int) *fakeClient {
	c := &fakeClient{}
	start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	for i := n; i > 0; i-- {
		c.messages = append(c.messages, discord.Message{
			ID:        discord.MessageID(i),
			ChannelID: 1,
			Author:    discord.User{ID: discord.UserID(i%3 + 1)},
			Timestamp: discord.NewTimestamp(start.Add(time.Duration(i) * time.Hour)),
		})
	}
	return c
}

var general = activity.Channel{ID: 1, Name: "general"}

func TestHistoryPages(t *testing.T) {
	c := newFakeClient(25)
	src := &Source{Client: c, PageSize: 10}

	var ids []discord.UserID
	for m, err := range src.History(context.Background(), general) {
		require.NoError(t, err)
		assert.Equal(t, general.ID, m.ChannelID)
		ids = append(ids, m.AuthorID)
	}

	assert.Len(t, ids, 25)
	assert.Equal(t, 3, c.requests)
}

func TestHistoryExactPage(t *testing.T) {
	c := newFakeClient(20)
	src := &Source{Client: c, PageSize: 10}

	n, err := activity.CountMessages(context.Background(), src.History(context.Background(), general), activity.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	// the third request returns an empty page
	assert.Equal(t, 3, c.requests)
}

func TestHistoryLazy(t *testing.T) {
	c := newFakeClient(50)
	src := &Source{Client: c, PageSize: 10}

	n, err := activity.CountMessages(context.Background(), activity.Limit(src.History(context.Background(), general), 5), activity.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 1, c.requests)
}

func TestHistoryError(t *testing.T) {
	c := newFakeClient(25)
	c.failAt = 2
	src := &Source{Client: c, PageSize: 10}

	n, err := activity.CountMessages(context.Background(), src.History(context.Background(), general), activity.Filter{})
	assert.Zero(t, n)

	var hse *activity.HistorySourceError
	require.True(t, errors.As(err, &hse))
	assert.Equal(t, general.ID, hse.ChannelID)
}

func TestHistoryCancelled(t *testing.T) {
	c := newFakeClient(25)
	src := New(c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := activity.CountMessages(ctx, src.History(ctx, general), activity.Filter{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.requests)
}

func TestHistoryOnPage(t *testing.T) {
	c := newFakeClient(15)
	var pages []int
	src := &Source{Client: c, PageSize: 10, OnPage: func(n int) { pages = append(pages, n) }}

	for _, err := range src.History(context.Background(), general) {
		require.NoError(t, err)
	}
	assert.Equal(t, []int{10, 5}, pages)
}
