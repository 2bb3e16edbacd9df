package bot

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

// ReportError logs an internal error, sends it to Sentry if enabled,
// and returns a response telling the user an error occurred.
func (bot *Bot) ReportError(ev *discord.InteractionEvent, err error) *api.InteractionResponseData {
	log.Errorf("error in interaction %v: %v", ev.ID, err)

	if bot.Config.Auth.Sentry == "" {
		return &api.InteractionResponseData{
			Flags: discord.EphemeralMessage,
			Embeds: &[]discord.Embed{{
				Title: "Internal error occurred",
				Description: fmt.Sprintf("An internal error has occurred. "+
					"If this issue persists, please contact the developer "+
					"in the [support server](%v).", bot.Config.Info.SupportServer),
				Color:     common.ColourRed,
				Timestamp: discord.NowTimestamp(),
			}},
		}
	}

	userID := ev.SenderID()

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if userID.IsValid() {
			scope.SetUser(sentry.User{ID: userID.String()})
		}
		scope.SetTag("guild_id", ev.GuildID.String())
	})

	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Data: map[string]any{
			"user":  userID,
			"guild": ev.GuildID,
		},
		Level:     sentry.LevelError,
		Timestamp: time.Now().UTC(),
	}, nil)

	id := hub.CaptureException(err)
	if id == nil {
		uid := uuid.New().String()
		id = (*sentry.EventID)(&uid)
	}

	return &api.InteractionResponseData{
		Content: option.NewNullableString(fmt.Sprintf("Error code: ``%v``", string(*id))),
		Flags:   discord.EphemeralMessage,
		Embeds: &[]discord.Embed{{
			Title: "Internal error occurred",
			Description: fmt.Sprintf("An internal error has occurred. "+
				"If this issue persists, please contact the developer "+
				"in the [support server](%v) with the error code above.", bot.Config.Info.SupportServer),
			Color:     common.ColourRed,
			Timestamp: discord.NowTimestamp(),
			Footer: &discord.EmbedFooter{
				Text: string(*id),
			},
		}},
	}
}
