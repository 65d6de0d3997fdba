package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// InteractionHandler defines the function signature for command handlers
type InteractionHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

// CommandDefinition pairs a slash command with its handler
type CommandDefinition struct {
	Command *discordgo.ApplicationCommand
	Handler InteractionHandler
}

// commandRegistry holds all registered commands keyed by name
var commandRegistry = make(map[string]CommandDefinition)

// RegisterCommand adds a command to the registry
func RegisterCommand(cmd CommandDefinition) {
	commandRegistry[cmd.Command.Name] = cmd
}

// GetCommand retrieves a command from the registry
func GetCommand(name string) (CommandDefinition, bool) {
	cmd, exists := commandRegistry[name]
	return cmd, exists
}

// registeredCommands returns the application commands to sync with Discord
func registeredCommands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(commandRegistry))
	for _, def := range commandRegistry {
		cmds = append(cmds, def.Command)
	}
	return cmds
}

// ProcessInteraction routes an interaction to the appropriate command handler
func ProcessInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	cmd, exists := GetCommand(name)
	if !exists {
		log.Printf("Unrecognized command: %s", name)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Command %s panicked: %v", name, rec)
			// Best effort; the interaction may already be acknowledged.
			_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: "❌ Có lỗi xảy ra. Vui lòng thử lại sau.",
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			})
		}
	}()

	cmd.Handler(s, i)
}
