package bot

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/webhook"
	"github.com/diamondburned/arikawa/v3/discord"
)

// WebhookName is the name of the webhooks the bot logs through.
const WebhookName = "Ledger"

// webhook returns the bot's webhook in the given channel, creating it if it doesn't exist.
func (bot *Bot) webhook(channelID discord.ChannelID) (*discord.Webhook, error) {
	if wh, ok := bot.webhooks.Get(channelID); ok {
		return wh, nil
	}

	whs, err := bot.Rest.ChannelWebhooks(channelID)
	if err != nil {
		return nil, errors.Wrap(err, "getting channel webhooks")
	}

	me := bot.Me().ID
	for i := range whs {
		if whs[i].Name == WebhookName && whs[i].User.ID == me && whs[i].Token != "" {
			bot.webhooks.Set(channelID, &whs[i])
			return &whs[i], nil
		}
	}

	wh, err := bot.Rest.CreateWebhook(channelID, api.CreateWebhookData{Name: WebhookName})
	if err != nil {
		return nil, errors.Wrap(err, "creating webhook")
	}
	bot.webhooks.Set(channelID, wh)
	return wh, nil
}

// ForgetWebhook removes the cached webhook for a channel, if any.
func (bot *Bot) ForgetWebhook(channelID discord.ChannelID) {
	wh, ok := bot.webhooks.Get(channelID)
	if !ok {
		return
	}
	bot.webhooks.Remove(channelID)
	bot.webhookClients.Remove(wh.ID)
}

// webhookClient returns a client for the given webhook.
// If no client is cached, it creates a new one.
func (bot *Bot) webhookClient(wh *discord.Webhook) *webhook.Client {
	return bot.webhookClients.GetOrCreate(wh.ID, func() *webhook.Client {
		return webhook.FromAPI(wh.ID, wh.Token, bot.Rest)
	})
}
