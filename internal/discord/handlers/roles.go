package handlers

import (
	"log"
)

// GrantOutcome is the result of ensuring a member holds a role.
type GrantOutcome int

const (
	RoleGranted GrantOutcome = iota
	RoleAlreadyHeld
	RoleNotFound
	RoleGrantFailed
)

// Succeeded reports whether the member holds the role after the call.
func (o GrantOutcome) Succeeded() bool {
	return o == RoleGranted || o == RoleAlreadyHeld
}

// EnsureRole makes sure the member holds the given role, granting it when
// absent. heldRoles is the member's current role list as delivered with
// the interaction. Platform failures are logged and reported as an
// outcome, never as an error.
func EnsureRole(rm RoleManager, guildID, userID string, heldRoles []string, roleID string) GrantOutcome {
	roles, err := rm.GuildRoles(guildID)
	if err != nil {
		log.Printf("Failed to list roles for guild %s: %v", guildID, err)
		return RoleGrantFailed
	}

	found := false
	for _, role := range roles {
		if role.ID == roleID {
			found = true
			break
		}
	}
	if !found {
		log.Printf("Role %s not found in guild %s", roleID, guildID)
		return RoleNotFound
	}

	for _, held := range heldRoles {
		if held == roleID {
			return RoleAlreadyHeld
		}
	}

	if err := rm.GrantRole(guildID, userID, roleID); err != nil {
		log.Printf("Failed to grant role %s to user %s: %v", roleID, userID, err)
		return RoleGrantFailed
	}

	log.Printf("Granted role %s to user %s", roleID, userID)
	return RoleGranted
}
