package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/db"
)

func (bot *Bot) messageDelete(ev *gateway.MessageDeleteEvent) {
	if !ev.GuildID.IsValid() {
		log.Debugf("message with ID %v is in DMs, ignoring", ev.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m, err := bot.DB.GetMessage(ctx, ev.ID)
	if err != nil {
		if db.IsNotFound(err) {
			log.Debugf("deleted message %v isn't archived", ev.ID)
		} else {
			log.Errorf("getting message object for %v from db: %v", ev.ID, err)
		}
		return
	}

	defer func() {
		err = bot.DB.DeleteMessage(ctx, ev.ID)
		if err != nil {
			log.Errorf("deleting message %v from db: %v", ev.ID, err)
		}
	}()

	bot.Send(ctx, ev.GuildID, ev, SendData{
		Embeds: []discord.Embed{deleteEmbed(bot.Me(), m, time.Now())},
	})
}

// deleteEmbed builds the log embed for a deleted message.
func deleteEmbed(me discord.User, m *db.Message, deletedAt time.Time) discord.Embed {
	e := discord.Embed{
		Title:  "Message Deleted",
		Color:  common.ColourRed,
		Author: selfAuthor(me),
		Fields: []discord.EmbedField{
			{Name: "Author", Value: fmt.Sprintf("%v (%v)", m.Username, m.UserID), Inline: true},
			{Name: "Channel", Value: m.ChannelID.Mention(), Inline: true},
			{Name: "Message Content", Value: contentValue(m.Content)},
		},
		Footer: &discord.EmbedFooter{
			Text: "Deleted at " + common.FormatTime(deletedAt),
		},
	}

	if m.AttachmentCount > 0 {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Attachments",
			Value: fmt.Sprint(m.AttachmentCount),
		})
	}
	return e
}
