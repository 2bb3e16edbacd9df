package bot

import (
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
)

func TestScanGuard(t *testing.T) {
	g := NewScanGuard(time.Minute)
	defer g.Close()

	assert.True(t, g.Start(1))
	assert.False(t, g.Start(1), "second scan in the same guild is rejected")
	assert.True(t, g.Start(2), "other guilds aren't affected")

	g.Done(1)
	assert.True(t, g.Start(1))
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "MessageDeleteEvent", EventName(&gateway.MessageDeleteEvent{}))
	assert.Equal(t, "GuildMemberAddEvent", EventName(gateway.GuildMemberAddEvent{}))
	assert.True(t, shouldQueue[EventName(&gateway.MessageUpdateEvent{})])
}

func TestQueueLimits(t *testing.T) {
	q := &queue{}
	e := discord.Embed{Title: "Message Deleted"}

	for i := 0; i < maxQueuedEmbeds; i++ {
		assert.False(t, q.full(e))
		q.embeds = append(q.embeds, e)
	}
	assert.True(t, q.full(e), "queue holds at most %d embeds", maxQueuedEmbeds)

	embeds := q.take()
	assert.Len(t, embeds, maxQueuedEmbeds)
	assert.Empty(t, q.embeds)

	big := discord.Embed{Description: string(make([]byte, 4000))}
	q.embeds = append(q.embeds, big)
	assert.True(t, q.full(big), "queue stays under %d characters", maxQueuedLength)
}

func TestReplyEphemeral(t *testing.T) {
	r := ReplyEphemeral("hello")
	assert.Equal(t, discord.EphemeralMessage, r.Flags)
	assert.Equal(t, "hello", r.Content.Val)
}
