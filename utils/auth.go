package utils

import (
	"github.com/bwmarrin/discordgo"
)

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// HasPermission reports whether the invoking member holds perm. Administrators hold every permission.
func HasPermission(i *discordgo.InteractionCreate, perm int64) bool {
	if i.Member == nil {
		return false
	}
	p := i.Member.Permissions
	return p&discordgo.PermissionAdministrator != 0 || p&perm == perm
}

// IsStaff reports whether any of the member's roles is a configured staff role.
func IsStaff(memberRoleIDs, staffRoleIDs []string) bool {
	for _, r := range memberRoleIDs {
		if contains(staffRoleIDs, r) {
			return true
		}
	}
	return false
}

// InvokerID returns the id of the user behind an interaction, in guilds and in DMs.
func InvokerID(i *discordgo.InteractionCreate) string {
	if u := Invoker(i); u != nil {
		return u.ID
	}
	return ""
}

// Invoker returns the user behind an interaction.
func Invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// RequirePermission returns a validation error when the invoker lacks perm.
func RequirePermission(i *discordgo.InteractionCreate, perm int64) error {
	if HasPermission(i, perm) {
		return nil
	}
	return NewValidationError("missing_permission", "Permission Denied", "You don't have the required permissions to use this command.")
}
