package common

import "github.com/diamondburned/arikawa/v3/discord"

// Channel type constants that aren't named consistently across arikawa versions
const (
	ChannelTypeAnnouncement       discord.ChannelType = 5
	ChannelTypeAnnouncementThread discord.ChannelType = 10
)

// IsThread returns true if ch is a thread.
func IsThread(ch discord.Channel) bool {
	return ch.Type == ChannelTypeAnnouncementThread || ch.Type == discord.GuildPrivateThread || ch.Type == discord.GuildPublicThread
}

// IsTextChannel returns true if ch is a non-thread channel that members can send messages in.
func IsTextChannel(ch discord.Channel) bool {
	return ch.Type == discord.GuildText || ch.Type == ChannelTypeAnnouncement
}
