package common

import "github.com/diamondburned/arikawa/v3/discord"

// Perm is a single permission
type Perm struct {
	Permission discord.Permissions
	Name       string
}

// Permission constants that Arikawa is missing
const (
	PermissionModerateMembers discord.Permissions = 1 << 40
)

// KeyPerms are the permissions shown in user info
var KeyPerms = []Perm{
	{discord.PermissionAdministrator, "Administrator"},
	{discord.PermissionManageGuild, "Manage Server"},
	{discord.PermissionManageWebhooks, "Manage Webhooks"},
	{discord.PermissionManageChannels, "Manage Channels"},
	{discord.PermissionBanMembers, "Ban Members"},
	{discord.PermissionKickMembers, "Kick Members"},
	{discord.PermissionManageRoles, "Manage Roles"},
	{discord.PermissionManageNicknames, "Manage Nicknames"},
	{discord.PermissionManageMessages, "Manage Messages"},
	{PermissionModerateMembers, "Timeout Members"},
	{discord.PermissionMentionEveryone, "Mention Everyone"},
	{discord.PermissionViewAuditLog, "View Audit Log"},
	{discord.PermissionMuteMembers, "Voice Mute Members"},
	{discord.PermissionDeafenMembers, "Voice Deafen Members"},
	{discord.PermissionMoveMembers, "Voice Move Members"},
}

// PermStrings gives names for all key permissions in p.
// Administrator implies every other permission, so only it is returned.
func PermStrings(p discord.Permissions) []string {
	if p.Has(discord.PermissionAdministrator) {
		return []string{"Administrator"}
	}

	var out = make([]string, 0, len(KeyPerms))
	for _, perm := range KeyPerms {
		if p&perm.Permission == perm.Permission {
			out = append(out, perm.Name)
		}
	}
	return out
}
