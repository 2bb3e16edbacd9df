package common

import (
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
)

// Commands is the full list of application commands the bot registers.
// None of them can be used in DMs.
var Commands = []api.CreateCommandData{
	{
		Name:           "serverstats",
		Description:    "Show this year's message activity for the server",
		NoDMPermission: true,
		Options: discord.CommandOptions{
			&discord.StringOption{
				OptionName:  "month",
				Description: "Only show statistics for this month",
				Choices:     monthChoices(),
			},
		},
	},
	{
		Name:                     "modstats",
		Description:              "Show message counts for every member of a role",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionManageMessages),
		Options: discord.CommandOptions{
			&discord.RoleOption{
				OptionName:  "role",
				Description: "The role to show statistics for",
				Required:    true,
			},
			&discord.StringOption{
				OptionName:  "month",
				Description: "Only count messages sent in this month (e.g. Jan or January)",
			},
			&discord.StringOption{
				OptionName:  "year",
				Description: "Only count messages sent in this year (e.g. 2023)",
			},
		},
	},
	{
		Name:                     "setadminrole",
		Description:              "Allow a role to use /modstats",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionManageGuild),
		Options: discord.CommandOptions{
			&discord.RoleOption{OptionName: "role", Description: "The role to allow", Required: true},
		},
	},
	{
		Name:                     "removeadminrole",
		Description:              "Stop a role from using /modstats",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionManageGuild),
		Options: discord.CommandOptions{
			&discord.RoleOption{OptionName: "role", Description: "The role to remove", Required: true},
		},
	},
	{
		Name:                     "setlogchannel",
		Description:              "Set the channel message edits and deletions are logged to",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionManageGuild),
		Options: discord.CommandOptions{
			logChannelOption(),
		},
	},
	{
		Name:                     "setmemberlog",
		Description:              "Set the channel members joining and leaving are logged to",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionManageGuild),
		Options: discord.CommandOptions{
			logChannelOption(),
		},
	},
	{
		Name:                     "config",
		Description:              "Show this server's configuration",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionManageGuild),
	},
	{
		Name:           "ping",
		Description:    "Show the bot's latency",
		NoDMPermission: true,
	},
	{
		Name:           "help",
		Description:    "Show a list of commands",
		NoDMPermission: true,
	},
	{
		Name:           "avatar",
		Description:    "Show a user's avatar",
		NoDMPermission: true,
		Options:        discord.CommandOptions{userOption()},
	},
	{
		Name:           "banner",
		Description:    "Show a user's banner",
		NoDMPermission: true,
		Options:        discord.CommandOptions{userOption()},
	},
	{
		Name:           "userinfo",
		Description:    "Show information about a user",
		NoDMPermission: true,
		Options:        discord.CommandOptions{userOption()},
	},
	{
		Name:           "serverinfo",
		Description:    "Show information about this server",
		NoDMPermission: true,
	},
	{
		Name:           "profile",
		Description:    "Show your own profile",
		NoDMPermission: true,
	},
	{
		Name:                     "listguilds",
		Description:              "List the servers the bot is in (bot owner only)",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionAdministrator),
	},
	{
		Name:                     "leaveguild",
		Description:              "Make the bot leave a server (bot owner only)",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionAdministrator),
		Options: discord.CommandOptions{
			&discord.StringOption{OptionName: "guild_id", Description: "The server's ID", Required: true},
		},
	},
	{
		Name:                     "restart",
		Description:              "Restart the bot (bot owner only)",
		NoDMPermission:           true,
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionAdministrator),
	},
}

func userOption() *discord.UserOption {
	return &discord.UserOption{
		OptionName:  "user",
		Description: "The user to show (defaults to you)",
	}
}

func logChannelOption() *discord.ChannelOption {
	return &discord.ChannelOption{
		OptionName:   "channel",
		Description:  "The channel to log to",
		Required:     true,
		ChannelTypes: []discord.ChannelType{discord.GuildText},
	}
}

func monthChoices() []discord.StringChoice {
	choices := make([]discord.StringChoice, 0, 12)
	for m := time.January; m <= time.December; m++ {
		choices = append(choices, discord.StringChoice{
			Name:  m.String(),
			Value: strings.ToLower(m.String()[:3]),
		})
	}
	return choices
}
