package stats

import (
	"context"
	"fmt"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/db"
	"github.com/ledgerbot/ledger/render"
	"github.com/ledgerbot/ledger/store"
)

// roleScanner counts a role's messages across a guild. *bot.Bot implements it.
type roleScanner interface {
	RoleActivity(ctx context.Context, guildID discord.GuildID, members []discord.UserID, filter activity.Filter) (activity.RoleActivity, error)
}

// modStats reports message counts for every member of a role.
// The month option takes a three-letter abbreviation or the full month name, in any case.
func (bot *Bot) modStats(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	ev := data.Event

	ok, err := bot.Allowed(ctx, ev, db.CapabilityViewActivity)
	if err != nil {
		return bot.ReportError(ev, err)
	}
	if !ok {
		return replyEphemeral("You don't have permission to use this command.")
	}

	sf, err := data.Options.Find("role").SnowflakeValue()
	if err != nil {
		return replyEphemeral("Please provide a valid role.")
	}

	resp, err := roleStats(ctx, bot.Cabinet, bot.Bot, ev.GuildID, discord.RoleID(sf),
		data.Options.Find("month").String(), data.Options.Find("year").String(), time.Now())
	if err != nil {
		return bot.errorResponse(ev, err)
	}
	return resp
}

// roleStats parses the filter, then scans the role's activity and renders it.
// The filter is validated before anything is scanned.
func roleStats(
	ctx context.Context,
	cab store.Cabinet,
	sc roleScanner,
	guildID discord.GuildID,
	roleID discord.RoleID,
	month, year string,
	now time.Time,
) (*api.InteractionResponseData, error) {
	filter, err := activity.ParseFilter(month, year, now)
	if err != nil {
		return nil, err
	}

	guild, err := cab.Guild(ctx, guildID)
	if err != nil {
		return nil, errors.Wrap(err, "getting guild")
	}

	role, err := cab.Role(ctx, guild.ID, roleID)
	if err != nil {
		return nil, errors.Wrap(err, "getting role")
	}

	members, err := cab.RoleMembers(ctx, guild.ID, role.ID)
	if err != nil {
		return nil, errors.Wrap(err, "getting role members")
	}
	if len(members) == 0 {
		return replyEphemeral(fmt.Sprintf("No members found with the role %v.", role.Name)), nil
	}

	res, err := sc.RoleActivity(ctx, guild.ID, memberIDs(members), filter)
	if err != nil {
		return nil, err
	}

	return replyEmbeds(render.RoleStatsEmbed(guild, role, members, res, filter, now)), nil
}

func memberIDs(ms []discord.Member) []discord.UserID {
	ids := make([]discord.UserID, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.User.ID)
	}
	return ids
}
