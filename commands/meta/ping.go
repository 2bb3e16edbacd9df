package meta

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

func (bot *Bot) ping(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	s, _ := bot.StateFromGuildID(data.Event.GuildID)
	heartbeat := s.Gateway().Latency().Round(time.Millisecond)

	// database latency
	t := time.Now()
	_, err := bot.DB.GuildConfig(ctx, data.Event.GuildID)
	if err != nil {
		log.Errorf("fetching guild config: %v", err)
	}
	dbLatency := time.Since(t).Round(time.Microsecond)

	return replyEmbeds(discord.Embed{
		Title:     "Pong!",
		Color:     common.ColourPurple,
		Footer:    &discord.EmbedFooter{Text: fmt.Sprintf("Version %v (%v on %v/%v)", common.Version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)},
		Timestamp: discord.NowTimestamp(),
		Fields: []discord.EmbedField{
			{
				Name:   "Ping",
				Value:  fmt.Sprintf("Heartbeat: %v\nDatabase: %v", heartbeat, dbLatency),
				Inline: true,
			},
			{
				Name:   "Memory usage",
				Value:  fmt.Sprintf("%v / %v", humanize.Bytes(stats.Alloc), humanize.Bytes(stats.Sys)),
				Inline: true,
			},
			{
				Name:   "Goroutines",
				Value:  humanize.Comma(int64(runtime.NumGoroutine())),
				Inline: true,
			},
			{
				Name:   "Uptime",
				Value:  fmt.Sprintf("%v\n(Since %v)", common.Uptime(), common.FormatTime(common.StartTime)),
				Inline: true,
			},
		},
	})
}
