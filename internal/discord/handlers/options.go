package handlers

import (
	"github.com/bwmarrin/discordgo"
)

// integerOption returns the named integer option, if present.
func integerOption(data discordgo.ApplicationCommandInteractionData, name string) (int64, bool) {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return opt.IntValue(), true
		}
	}
	return 0, false
}

// stringOption returns the named string option, if present.
func stringOption(data discordgo.ApplicationCommandInteractionData, name string) (string, bool) {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue(), true
		}
	}
	return "", false
}

// resolvedUserOption returns the user carried by the named user option,
// taken from the interaction's resolved data so no extra API call is made.
func resolvedUserOption(data discordgo.ApplicationCommandInteractionData, name string) *discordgo.User {
	for _, opt := range data.Options {
		if opt.Name != name || opt.Type != discordgo.ApplicationCommandOptionUser {
			continue
		}
		id, _ := opt.Value.(string)
		if data.Resolved != nil {
			if u, ok := data.Resolved.Users[id]; ok {
				return u
			}
		}
		if id != "" {
			return &discordgo.User{ID: id}
		}
	}
	return nil
}

// resolvedMemberRoles returns the role IDs the resolved member holds.
func resolvedMemberRoles(data discordgo.ApplicationCommandInteractionData, userID string) []string {
	if data.Resolved == nil {
		return nil
	}
	if m, ok := data.Resolved.Members[userID]; ok {
		return m.Roles
	}
	return nil
}
