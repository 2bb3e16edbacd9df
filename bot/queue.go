package bot

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/webhook"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"

	"github.com/ledgerbot/ledger/common/log"
)

// Queue limits
const (
	maxQueuedEmbeds = 5
	maxQueuedLength = 6000
	queueDelay      = 5 * time.Second
)

type SendData struct {
	// If ChannelID is not valid, the channel ID is looked up in the guild's configuration by bot.Send.
	// This should only be set for channels that aren't in the guild configuration, such as the meta log.
	ChannelID discord.ChannelID

	Embeds []discord.Embed
	Files  []sendpart.File
}

// Send either sends a slice of embeds immediately, or queues a single embed.
// `event` should either be the event received in the handler, or a string name.
func (bot *Bot) Send(
	ctx context.Context,
	guildID discord.GuildID,
	event any,
	data SendData,
) {
	if len(data.Embeds) == 0 || !bot.ShouldLog() {
		return
	}

	// get event name
	eventName, ok := event.(string)
	if !ok {
		eventName = EventName(event)
	}

	// get channel ID, if not set
	channelID := data.ChannelID
	if !channelID.IsValid() {
		cfg, err := bot.DB.GuildConfig(ctx, guildID)
		if err != nil {
			log.Errorf("getting config for guild %v: %v", guildID, err)
			return
		}

		channelID = cfg.Channels.For(eventName)
		if !channelID.IsValid() {
			log.Debugf("event %v in guild %v has no valid channel", eventName, guildID)
			return
		}
	}

	wh, err := bot.webhook(channelID)
	if err != nil {
		log.Errorf("getting webhook for channel %v: %v", channelID, err)
		return
	}

	// if the event should be queued to be sent in bulk, queue it and return
	if shouldQueue[eventName] && len(data.Embeds) == 1 && len(data.Files) == 0 {
		bot.queue(wh, data.Embeds[0])
		return
	}

	log.Debugf("Event for webhook %v should not be queued, sending embed", wh.ID)

	err = bot.webhookClient(wh).Execute(webhook.ExecuteData{
		AvatarURL: bot.Me().AvatarURL(),
		Embeds:    data.Embeds,
		Files:     data.Files,
	})
	if err != nil {
		log.Errorf("executing webhook %v: %v", wh.ID, err)
	}
}

// EventName returns the type name of an event, such as "MessageDeleteEvent".
func EventName(ev any) string {
	t := reflect.TypeOf(ev)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// shouldQueue is a map of all events that should be put into a webhook queue
var shouldQueue = map[string]bool{
	EventName(&gateway.MessageDeleteEvent{}):     true,
	EventName(&gateway.MessageUpdateEvent{}):     true,
	EventName(&gateway.GuildMemberAddEvent{}):    true,
	EventName(&gateway.GuildMemberRemoveEvent{}): true,
	// Internal events
	EventName(&gateway.ReadyEvent{}):       true,
	EventName(&gateway.GuildCreateEvent{}): true,
	EventName(&gateway.GuildDeleteEvent{}): true,
}

// queue is a webhook embed queue.
type queue struct {
	mu     sync.Mutex
	embeds []discord.Embed
	timer  *time.Timer
}

// totalLength returns the total length of all queued embeds.
func (q *queue) totalLength() (length int) {
	for _, e := range q.embeds {
		length += e.Length()
	}
	return length
}

// full returns true if adding e would go over Discord's limits.
func (q *queue) full(e discord.Embed) bool {
	return q.totalLength()+e.Length() > maxQueuedLength || len(q.embeds) >= maxQueuedEmbeds
}

// take empties the queue and returns its embeds.
func (q *queue) take() []discord.Embed {
	embeds := q.embeds
	q.embeds = nil
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	return embeds
}

// queue queues an embed.
// Embeds are sent when the queue is full, or queueDelay after the first embed was queued.
func (bot *Bot) queue(wh *discord.Webhook, embed discord.Embed) {
	q := bot.queues.GetOrCreate(wh.ID, func() *queue {
		log.Debugf("creating new embed queue for %v", wh.ID)
		return &queue{}
	})
	client := bot.webhookClient(wh)

	log.Debugf("Adding embed to queue for %v", wh.ID)

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.full(embed) {
		if err := bot.sendQueued(client, q.take()); err != nil {
			log.Errorf("executing queue for %v: %v", wh.ID, err)
		}
	}

	q.embeds = append(q.embeds, embed)

	if q.timer == nil {
		q.timer = time.AfterFunc(queueDelay, func() {
			q.mu.Lock()
			embeds := q.take()
			q.mu.Unlock()

			if len(embeds) == 0 {
				return
			}

			if err := bot.sendQueued(client, embeds); err != nil {
				log.Errorf("executing queue for %v: %v", wh.ID, err)
			}
		})
	}
}

func (bot *Bot) sendQueued(client *webhook.Client, embeds []discord.Embed) (err error) {
	log.Debugf("Executing webhook %v, with %v embed(s)", client.ID, len(embeds))

	_, err = client.ExecuteAndWait(webhook.ExecuteData{
		AvatarURL: bot.Me().AvatarURL(),
		Embeds:    embeds,
		AllowedMentions: &api.AllowedMentions{
			Parse: []api.AllowedMentionType{},
		},
	})
	return err
}
