package stats

import (
	"context"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/render"
)

func (bot *Bot) serverStats(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	var month time.Month
	if tok := strings.TrimSpace(data.Options.Find("month").String()); tok != "" {
		var err error
		month, err = activity.ParseMonth(tok)
		if err != nil {
			return bot.errorResponse(data.Event, err)
		}
	}

	guild, err := bot.Cabinet.Guild(ctx, data.Event.GuildID)
	if err != nil {
		return bot.ReportError(data.Event, errors.Wrap(err, "getting guild"))
	}

	res, err := bot.ServerActivity(ctx, guild.ID, month)
	if err != nil {
		return bot.errorResponse(data.Event, err)
	}

	e, files, err := render.ServerStatsEmbed(guild, res, month, time.Now())
	if err != nil {
		return bot.ReportError(data.Event, err)
	}
	return replyFiles(e, files)
}
