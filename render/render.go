// Package render turns activity reports into Discord embeds and charts.
package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/sendpart"
	"github.com/dustin/go-humanize"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/common"
)

// Discord embed limits
const (
	MaxFields      = 25
	MaxFieldName   = 256
	MaxFieldValue  = 1024
	MaxEmbedLength = 6000
)

const (
	PieChartName  = "channel_distribution.png"
	LineChartName = "monthly_trend.png"
)

// ServerStatsEmbed builds the server statistics embed and its chart.
// If month is set, the embed shows that month's channels. Otherwise it shows every month.
func ServerStatsEmbed(guild discord.Guild, res activity.ServerActivity, month time.Month, now time.Time) (discord.Embed, []sendpart.File, error) {
	e := discord.Embed{
		Title:     "Server Message Statistics",
		Color:     common.ColourBlue,
		Timestamp: discord.NewTimestamp(now),
		Author:    guildAuthor(guild),
	}

	var (
		img  []byte
		name string
		err  error
	)

	if month != 0 {
		monthName := activity.MonthName(month)
		e.Footer = &discord.EmbedFooter{Text: "Statistics for " + monthName}

		cc := res.Monthly.Get(month)
		if cc.Len() == 0 {
			addField(&e, "Total Messages in "+monthName, "No messages found.", false)
		} else {
			e.Description = fmt.Sprintf("**%v** messages in %v %d", humanize.Comma(int64(res.FilteredTotal)), monthName, res.Year)

			var (
				labels []string
				values []int
			)
			for ch, n := range cc.All() {
				addField(&e, ch.Name, "• **"+humanize.Comma(int64(n))+"** messages", true)
				labels = append(labels, ch.Name)
				values = append(values, n)
			}

			img, err = PieChart("Message Distribution in "+monthName, labels, values)
			name = PieChartName
		}
	} else {
		e.Footer = &discord.EmbedFooter{Text: "Overall Server Statistics"}

		for m, cc := range res.Monthly.All() {
			addField(&e, activity.MonthName(m)+" Activity", channelLines(cc), true)
		}

		labels, values := Chronological(&res.Monthly)
		img, err = LineChart("Monthly Message Activity Trend", "Months", "Messages", labels, values)
		name = LineChartName
	}

	if err != nil && !errors.Is(err, ErrNotEnoughData) {
		return e, nil, err
	}

	addFinalField(&e, "Most Active Month", res.MostActiveMonth, false)

	var files []sendpart.File
	if img != nil {
		e.Image = &discord.EmbedImage{URL: "attachment://" + name}
		files = append(files, sendpart.File{Name: name, Reader: bytes.NewReader(img)})
	}

	return e, files, nil
}

// RoleStatsEmbed builds the per-member statistics embed for a role.
// members and res must be in the same order.
func RoleStatsEmbed(guild discord.Guild, role discord.Role, members []discord.Member, res activity.RoleActivity, filter activity.Filter, now time.Time) discord.Embed {
	e := discord.Embed{
		Title:     role.Name + " Stats",
		Color:     common.ColourBlue,
		Timestamp: discord.NewTimestamp(now),
		Author:    guildAuthor(guild),
	}

	if desc := filter.Describe(); desc != "" {
		e.Footer = &discord.EmbedFooter{Text: "Statistics for " + desc}
	}

	for i, ma := range res {
		name := ma.UserID.String()
		if i < len(members) {
			name = DisplayName(members[i]) + " | " + members[i].User.ID.String()
		}

		value := "No messages found in any channel."
		if ma.Channels.Len() > 0 {
			value = channelLines(&ma.Channels)
		}

		if !addField(&e, name, "**Total Messages:** "+humanize.Comma(int64(ma.Total))+"\n"+value, false) {
			e.Description = fmt.Sprintf("Only the first %d of %d members are shown.", len(e.Fields), len(res))
			break
		}
	}

	return e
}

// DisplayName returns a member's nickname, or their username if they have none.
func DisplayName(m discord.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	return m.User.Username
}

// Chronological returns month names and totals ordered from January to December.
func Chronological(ma *activity.MonthlyActivity) (labels []string, values []int) {
	months := make([]time.Month, 0, ma.Len())
	for m := range ma.All() {
		months = append(months, m)
	}
	slices.Sort(months)

	for _, m := range months {
		labels = append(labels, activity.MonthName(m))
		values = append(values, ma.Get(m).Total())
	}
	return labels, values
}

func channelLines(cc *activity.ChannelCount) string {
	var b strings.Builder
	for ch, n := range cc.All() {
		line := "• **" + ch.Name + ":** " + humanize.Comma(int64(n)) + " messages\n"
		if b.Len()+len(line) > MaxFieldValue {
			break
		}
		b.WriteString(line)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func guildAuthor(g discord.Guild) *discord.EmbedAuthor {
	return &discord.EmbedAuthor{Name: g.Name, Icon: g.IconURL()}
}

// addField adds a field to e, truncating it to Discord's limits.
// One field slot is always kept free for addFinalField.
// It returns false if the field didn't fit.
func addField(e *discord.Embed, name, value string, inline bool) bool {
	if len(e.Fields) >= MaxFields-1 {
		return false
	}

	f := discord.EmbedField{
		Name:   common.Truncate(name, MaxFieldName),
		Value:  common.Truncate(value, MaxFieldValue),
		Inline: inline,
	}
	// leave room for a final field
	if e.Length()+len(f.Name)+len(f.Value) > MaxEmbedLength-300 {
		return false
	}

	e.Fields = append(e.Fields, f)
	return true
}

// addFinalField adds a field to e, even if that takes the last field slot.
func addFinalField(e *discord.Embed, name, value string, inline bool) {
	e.Fields = append(e.Fields, discord.EmbedField{
		Name:   common.Truncate(name, MaxFieldName),
		Value:  common.Truncate(value, MaxFieldValue),
		Inline: inline,
	})
}
