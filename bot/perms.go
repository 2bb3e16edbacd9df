package bot

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"

	"github.com/ledgerbot/ledger/db"
)

// Allowed returns true if the member who sent ev has capability c in the guild.
func (bot *Bot) Allowed(ctx context.Context, ev *discord.InteractionEvent, c db.Capability) (bool, error) {
	if ev.Member == nil || !ev.GuildID.IsValid() {
		return false, nil
	}

	perms, err := bot.Cabinet.MemberPermissions(ctx, ev.GuildID, *ev.Member)
	if err != nil {
		return false, errors.Wrap(err, "getting member permissions")
	}

	cfg, err := bot.DB.GuildConfig(ctx, ev.GuildID)
	if err != nil {
		return false, errors.Wrap(err, "getting guild config")
	}

	return cfg.Allows(c, perms, ev.Member.RoleIDs), nil
}

// IsOwner returns true if ev was sent by the bot owner.
func (bot *Bot) IsOwner(ev *discord.InteractionEvent) bool {
	return bot.Config.Bot.Owner.IsValid() && ev.SenderID() == bot.Config.Bot.Owner
}
