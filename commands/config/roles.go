package config

import (
	"context"
	"fmt"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/db"
)

func (bot *Bot) setAdminRole(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return bot.updateAdminRoles(ctx, data, (*db.GuildConfig).AddAdminRole,
		"%v role can now use modstats command.",
		"%v role already has permission.",
	)
}

func (bot *Bot) removeAdminRole(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	return bot.updateAdminRoles(ctx, data, (*db.GuildConfig).RemoveAdminRole,
		"%v role can no longer use modstats command.",
		"%v role doesn't have permission.",
	)
}

// updateAdminRoles applies fn to the guild's admin roles.
// changedFmt and unchangedFmt are formatted with the role's mention.
func (bot *Bot) updateAdminRoles(
	ctx context.Context, data cmdroute.CommandData,
	fn func(*db.GuildConfig, discord.RoleID) bool,
	changedFmt, unchangedFmt string,
) *api.InteractionResponseData {
	ev := data.Event
	if resp := bot.checkManage(ctx, ev); resp != nil {
		return resp
	}

	sf, err := data.Options.Find("role").SnowflakeValue()
	if err != nil {
		return replyEphemeral("Please provide a valid role.")
	}
	roleID := discord.RoleID(sf)

	var changed bool
	_, err = bot.DB.UpdateGuildConfig(ctx, ev.GuildID, func(cfg *db.GuildConfig) error {
		changed = fn(cfg, roleID)
		return nil
	})
	if err != nil {
		log.Errorf("updating admin roles in guild %v: %v", ev.GuildID, err)
		return bot.ReportError(ev, errors.Wrap(err, "updating guild config"))
	}

	if !changed {
		return replyEphemeral(fmt.Sprintf(unchangedFmt, roleID.Mention()))
	}
	return reply(fmt.Sprintf(changedFmt, roleID.Mention()))
}
