package messages

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/db"
)

func (bot *Bot) messageCreate(m *gateway.MessageCreateEvent) {
	if !m.GuildID.IsValid() {
		return
	}

	// ignore our own log webhooks
	if m.WebhookID.IsValid() && m.ApplicationID.IsValid() && m.ApplicationID == discord.AppID(bot.Me().ID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := bot.DB.GuildConfig(ctx, m.GuildID)
	if err != nil {
		log.Errorf("getting config for guild %v: %v", m.GuildID, err)
		return
	}

	// if message logging is disabled, don't save this guild's messages in the database
	if !cfg.Channels.Message.IsValid() {
		return
	}

	err = bot.DB.InsertMessage(ctx, archived(m.Message, m.GuildID))
	if err != nil {
		log.Errorf("inserting message %v: %v", m.ID, err)
	}
}

// archived converts a message to its archived form.
func archived(m discord.Message, guildID discord.GuildID) db.Message {
	return db.Message{
		ID:              m.ID,
		UserID:          m.Author.ID,
		ChannelID:       m.ChannelID,
		GuildID:         guildID,
		Username:        m.Author.Tag(),
		Content:         m.Content,
		AttachmentCount: len(m.Attachments),
		CreatedAt:       m.Timestamp.Time().UTC(),
	}
}
