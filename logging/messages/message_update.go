package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/db"
)

// Content longer than this is attached as a file as well.
const maxContentField = 1024

func (bot *Bot) messageUpdate(ev *gateway.MessageUpdateEvent) {
	if !ev.GuildID.IsValid() || !ev.Author.ID.IsValid() {
		return
	}

	// sometimes we get message update events without any content
	// so we just ignore those
	if ev.Content == "" {
		log.Debugf("got message %v with empty content, ignoring event", ev.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := bot.DB.GuildConfig(ctx, ev.GuildID)
	if err != nil {
		log.Errorf("getting config for guild %v: %v", ev.GuildID, err)
		return
	}

	if !cfg.Channels.Message.IsValid() {
		log.Debugf("message logs are disabled in guild %v", ev.GuildID)
		return
	}

	old, err := bot.DB.GetMessage(ctx, ev.ID)
	if err != nil && !db.IsNotFound(err) {
		log.Errorf("getting old message %v: %v", ev.ID, err)
		return
	}

	// save the new content regardless of whether the edit is logged
	defer func() {
		err := bot.DB.InsertMessage(ctx, archived(ev.Message, ev.GuildID))
		if err != nil {
			log.Errorf("updating message %v: %v", ev.ID, err)
		}
	}()

	if old == nil {
		log.Debugf("message %v isn't archived, not logging edit", ev.ID)
		return
	}

	if old.Content == ev.Content {
		log.Debugf("new content for message %v was identical to old content", ev.ID)
		return
	}

	editedAt := ev.EditedTimestamp.Time()
	if !ev.EditedTimestamp.IsValid() {
		editedAt = time.Now()
	}

	embed, files := editEmbed(bot.Me(), old.Content, ev.Message, editedAt)
	bot.Send(ctx, ev.GuildID, ev, SendData{
		Embeds: []discord.Embed{embed},
		Files:  files,
	})
}

// editEmbed builds the log embed for an edited message.
// If either version doesn't fit in a field, both are attached in full.
func editEmbed(me discord.User, oldContent string, m discord.Message, editedAt time.Time) (discord.Embed, []sendpart.File) {
	e := discord.Embed{
		Title:  "Message Edited",
		Color:  common.ColourGold,
		Author: selfAuthor(me),
		Fields: []discord.EmbedField{
			{Name: "Author", Value: fmt.Sprintf("%v (%v)", m.Author.Tag(), m.Author.ID), Inline: true},
			{Name: "Channel", Value: m.ChannelID.Mention(), Inline: true},
			{Name: "Original Message", Value: contentValue(oldContent)},
			{Name: "Edited Message", Value: contentValue(m.Content)},
			{Name: "Jump to Message", Value: fmt.Sprintf("[Click here](%v)", m.URL())},
		},
		Footer: &discord.EmbedFooter{
			Text: "Edited at " + common.FormatTime(editedAt),
		},
	}

	var files []sendpart.File
	if len(oldContent) > maxContentField || len(m.Content) > maxContentField {
		files = []sendpart.File{
			{Name: "before.txt", Reader: strings.NewReader(oldContent)},
			{Name: "after.txt", Reader: strings.NewReader(m.Content)},
		}
	}
	return e, files
}

// contentValue returns content as an embed field value.
func contentValue(content string) string {
	if content == "" {
		return "None"
	}
	return common.Truncate(content, maxContentField)
}

func selfAuthor(me discord.User) *discord.EmbedAuthor {
	return &discord.EmbedAuthor{
		Name: me.Username,
		Icon: me.AvatarURL(),
	}
}
