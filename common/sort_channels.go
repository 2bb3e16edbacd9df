package common

import (
	"cmp"
	"slices"

	"github.com/diamondburned/arikawa/v3/discord"
)

// SortChannels sorts the given channels into the order shown in the Discord client.
// Threads are dropped. It returns a new slice, and does not modify the given slice in place.
func SortChannels(channels []discord.Channel) []discord.Channel {
	var (
		noCategory = make([]discord.Channel, 0)
		categories = make([]discord.Channel, 0)
		children   = make(map[discord.ChannelID][]discord.Channel)
	)

	for _, ch := range channels {
		switch {
		case IsThread(ch):
			continue
		case ch.Type == discord.GuildCategory:
			categories = append(categories, ch)
		case ch.ParentID.IsValid():
			children[ch.ParentID] = append(children[ch.ParentID], ch)
		default:
			noCategory = append(noCategory, ch)
		}
	}

	slices.SortStableFunc(noCategory, compareChannels)
	slices.SortStableFunc(categories, compareChannels)

	sorted := make([]discord.Channel, 0, len(channels))
	// uncategorized channels are shown above all categories
	sorted = append(sorted, noCategory...)

	for _, cat := range categories {
		chs := children[cat.ID]
		slices.SortStableFunc(chs, compareChannels)

		sorted = append(sorted, cat)
		sorted = append(sorted, chs...)
		delete(children, cat.ID)
	}

	// channels whose category wasn't passed in go last
	for _, chs := range children {
		sorted = append(sorted, chs...)
	}

	return sorted
}

// compareChannels orders text channels above voice channels, then by position, then by ID.
func compareChannels(a, b discord.Channel) int {
	if av, bv := isVoice(a), isVoice(b); av != bv {
		if av {
			return 1
		}
		return -1
	}

	if c := cmp.Compare(a.Position, b.Position); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func isVoice(ch discord.Channel) bool {
	return ch.Type == discord.GuildVoice || ch.Type == discord.GuildStageVoice
}
