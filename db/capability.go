package db

import (
	"slices"

	"github.com/diamondburned/arikawa/v3/discord"
)

// Capability is something a member may be allowed to do.
type Capability int

const (
	// CapabilityViewActivity allows viewing per-member message activity.
	CapabilityViewActivity Capability = iota + 1
	// CapabilityManageConfig allows changing the guild's configuration.
	CapabilityManageConfig
)

func (c Capability) String() string {
	switch c {
	case CapabilityViewActivity:
		return "view activity"
	case CapabilityManageConfig:
		return "manage config"
	}
	return "unknown"
}

// Allows returns true if a member with the given guild permissions and roles has capability c.
// Administrators and members with Manage Server have every capability.
// Members holding one of the configured admin roles can also view activity.
func (cfg GuildConfig) Allows(c Capability, perms discord.Permissions, roles []discord.RoleID) bool {
	if perms.Has(discord.PermissionAdministrator) || perms.Has(discord.PermissionManageGuild) {
		return true
	}

	if c != CapabilityViewActivity {
		return false
	}

	for _, r := range roles {
		if slices.Contains(cfg.AdminRoles, r) {
			return true
		}
	}
	return false
}
