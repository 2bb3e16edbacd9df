// Package members logs members joining and leaving.
package members

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

type SendData = bot.SendData

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding member handlers")

	bot := &Bot{Bot: root}
	bot.AddHandler(bot.memberAdd, bot.memberRemove)
}

func (bot *Bot) memberAdd(ev *gateway.GuildMemberAddEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	joined := ev.Joined.Time()
	if !ev.Joined.IsValid() {
		joined = time.Now()
	}

	bot.Send(ctx, ev.GuildID, ev, SendData{
		Embeds: []discord.Embed{memberEmbed("Member Joined", common.ColourGreen, ev.User, "Joined at "+common.FormatTime(joined))},
	})
}

func (bot *Bot) memberRemove(ev *gateway.GuildMemberRemoveEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bot.Send(ctx, ev.GuildID, ev, SendData{
		Embeds: []discord.Embed{memberEmbed("Member Left", common.ColourRed, ev.User, "Left at "+common.FormatTime(time.Now()))},
	})
}

func memberEmbed(title string, colour discord.Color, u discord.User, footer string) discord.Embed {
	return discord.Embed{
		Title: title,
		Color: colour,
		Fields: []discord.EmbedField{{
			Name:  "User",
			Value: fmt.Sprintf("%v (%v)", u.Tag(), u.ID),
		}},
		Thumbnail: &discord.EmbedThumbnail{URL: u.AvatarURL()},
		Footer:    &discord.EmbedFooter{Text: footer},
	}
}
