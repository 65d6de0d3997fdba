package handlers

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"
)

// DeliveryStatus classifies the outcome of a direct-message send.
type DeliveryStatus int

const (
	DeliveryOK DeliveryStatus = iota
	// DeliveryForbidden means the target does not accept DMs from the bot.
	DeliveryForbidden
	DeliveryFailed
)

// Responder acknowledges an interaction and sends follow-up messages.
type Responder interface {
	Respond(content string, ephemeral bool) error
	Defer(ephemeral bool) error
	FollowUp(params *discordgo.WebhookParams) error
}

// RoleManager lists a guild's roles and grants them to members.
type RoleManager interface {
	GuildRoles(guildID string) ([]*discordgo.Role, error)
	GrantRole(guildID, userID, roleID string) error
}

// DirectMessenger delivers an embed to a user's DM channel.
type DirectMessenger interface {
	SendDM(userID string, embed *discordgo.MessageEmbed) DeliveryStatus
}

// ChannelSender posts an embed to a channel.
type ChannelSender interface {
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
}

// SessionAdapter exposes a *discordgo.Session through the narrow
// capabilities the handlers depend on.
type SessionAdapter struct {
	Session *discordgo.Session
}

func (a SessionAdapter) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	return a.Session.GuildRoles(guildID)
}

func (a SessionAdapter) GrantRole(guildID, userID, roleID string) error {
	return a.Session.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (a SessionAdapter) SendDM(userID string, embed *discordgo.MessageEmbed) DeliveryStatus {
	channel, err := a.Session.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Could not create DM channel with %s: %v", userID, err)
		return classifyDeliveryError(err)
	}
	if _, err := a.Session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		log.Printf("Failed to send DM to %s: %v", userID, err)
		return classifyDeliveryError(err)
	}
	return DeliveryOK
}

func (a SessionAdapter) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := a.Session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

func classifyDeliveryError(err error) DeliveryStatus {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Message != nil &&
		rest.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser {
		return DeliveryForbidden
	}
	return DeliveryFailed
}

// InteractionResponder adapts a session and interaction pair to the
// Responder capability.
type InteractionResponder struct {
	Session     *discordgo.Session
	Interaction *discordgo.Interaction
}

func (r InteractionResponder) Respond(content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return r.Session.InteractionRespond(r.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (r InteractionResponder) Defer(ephemeral bool) error {
	var data *discordgo.InteractionResponseData
	if ephemeral {
		data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	return r.Session.InteractionRespond(r.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

func (r InteractionResponder) FollowUp(params *discordgo.WebhookParams) error {
	_, err := r.Session.FollowupMessageCreate(r.Interaction, true, params)
	return err
}

// DisplayName returns the name a user goes by, preferring the global
// display name over the account username.
func DisplayName(u *discordgo.User) string {
	if u == nil {
		return "User"
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	if u.Username != "" {
		return u.Username
	}
	return "User"
}

// interactionUser extracts the invoking user from a guild or DM interaction.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func sendEphemeral(r Responder, content string) {
	err := r.FollowUp(&discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("Failed to send ephemeral follow-up: %v", err)
	}
}
