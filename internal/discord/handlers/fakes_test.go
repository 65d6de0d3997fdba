package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// fakeResponder records every interaction response for assertions.
type fakeResponder struct {
	responses      []string
	responseFlags  []bool
	deferCount     int
	deferEphemeral bool
	followUps      []*discordgo.WebhookParams
	deferErr       error

	// failEmbedFollowUp makes any follow-up carrying embeds fail, to
	// exercise the generic-failure path.
	failEmbedFollowUp bool
}

func (f *fakeResponder) Respond(content string, ephemeral bool) error {
	f.responses = append(f.responses, content)
	f.responseFlags = append(f.responseFlags, ephemeral)
	return nil
}

func (f *fakeResponder) Defer(ephemeral bool) error {
	if f.deferErr != nil {
		return f.deferErr
	}
	f.deferCount++
	f.deferEphemeral = ephemeral
	return nil
}

func (f *fakeResponder) FollowUp(params *discordgo.WebhookParams) error {
	if f.failEmbedFollowUp && len(params.Embeds) > 0 {
		return fmt.Errorf("embed rejected")
	}
	f.followUps = append(f.followUps, params)
	return nil
}

// followUpContents returns the plain-text contents of recorded follow-ups.
func (f *fakeResponder) followUpContents() []string {
	var out []string
	for _, p := range f.followUps {
		out = append(out, p.Content)
	}
	return out
}

type fakeRoleManager struct {
	roles    []*discordgo.Role
	rolesErr error
	grantErr error
	grants   []string
}

func (f *fakeRoleManager) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	if f.rolesErr != nil {
		return nil, f.rolesErr
	}
	return f.roles, nil
}

func (f *fakeRoleManager) GrantRole(guildID, userID, roleID string) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.grants = append(f.grants, guildID+"/"+userID+"/"+roleID)
	return nil
}

type fakeDirectMessenger struct {
	status DeliveryStatus
	sent   []*discordgo.MessageEmbed
}

func (f *fakeDirectMessenger) SendDM(userID string, embed *discordgo.MessageEmbed) DeliveryStatus {
	if f.status != DeliveryOK {
		return f.status
	}
	f.sent = append(f.sent, embed)
	return DeliveryOK
}

type fakeChannelSender struct {
	err      error
	channels []string
	embeds   []*discordgo.MessageEmbed
}

func (f *fakeChannelSender) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	if f.err != nil {
		return f.err
	}
	f.channels = append(f.channels, channelID)
	f.embeds = append(f.embeds, embed)
	return nil
}
