package owner

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/cmdroute"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/dustin/go-humanize"

	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
)

// guildsPerMessage keeps a listing well under the 2000 character message limit.
const guildsPerMessage = 15

func (bot *Bot) listGuilds(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	guilds, err := bot.Cabinet.Guilds(ctx)
	if err != nil {
		return bot.ReportError(data.Event, errors.Wrap(err, "getting guilds"))
	}

	pages := guildPages(guilds)
	if len(pages) == 0 {
		return replyEphemeral("The bot isn't in any servers.")
	}

	// the first page is the response, the rest are sent as follow-ups
	for _, page := range pages[1:] {
		_, err := bot.Rest.FollowUpInteraction(data.Event.AppID, data.Event.Token, api.InteractionResponseData{
			Content: option.NewNullableString(page),
			Flags:   discord.EphemeralMessage,
		})
		if err != nil {
			log.Errorf("sending guild list follow-up: %v", err)
			break
		}
	}

	return replyEphemeral(pages[0])
}

// guildPages formats guilds sorted by name, split into message-sized pages.
func guildPages(guilds []discord.Guild) []string {
	slices.SortFunc(guilds, func(a, b discord.Guild) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	var pages []string
	for _, chunk := range common.Chunk(guilds, guildsPerMessage) {
		entries := make([]string, 0, len(chunk))
		for _, g := range chunk {
			entries = append(entries, fmt.Sprintf("Name: %v\nID: %v\nMembers: %v", g.Name, g.ID, humanize.Comma(int64(g.ApproximateMembers))))
		}
		pages = append(pages, "```ini\n"+strings.Join(entries, "\n\n")+"\n```")
	}
	return pages
}

func (bot *Bot) leaveGuild(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	raw := strings.TrimSpace(data.Options.Find("guild_id").String())

	sf, err := discord.ParseSnowflake(raw)
	if err != nil {
		return replyEphemeral(fmt.Sprintf("Could not find server with ID %v", raw))
	}
	guildID := discord.GuildID(sf)

	g, err := bot.Cabinet.Guild(ctx, guildID)
	if err != nil {
		return replyEphemeral(fmt.Sprintf("Could not find server with ID %v", raw))
	}

	err = bot.Rest.LeaveGuild(guildID)
	if err != nil {
		return bot.ReportError(data.Event, errors.Wrap(err, "leaving guild"))
	}

	return reply(fmt.Sprintf("Left server %q (%v)", g.Name, g.ID))
}
