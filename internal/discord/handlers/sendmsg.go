package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keyshopvn/qr-payment-bot/internal/config"
)

const (
	credentialEmbedColor = 0x3498DB
	auditEmbedColor      = 0x2ECC71
)

// SendMessageHandler serves the /sendmsg command: it grants the customer
// role to the target, DMs them the credential lines and writes an audit
// entry to the shop's log channel.
type SendMessageHandler struct {
	customerRoleID string
	logChannelID   string
}

// NewSendMessageHandler builds a send-message handler for the configured shop.
func NewSendMessageHandler(shop config.ShopConfig) *SendMessageHandler {
	return &SendMessageHandler{
		customerRoleID: shop.CustomerRoleID,
		logChannelID:   shop.LogChannelID,
	}
}

// sendMessageRequest carries everything one /sendmsg invocation needs.
type sendMessageRequest struct {
	guildID     string
	sender      *discordgo.User
	target      *discordgo.User
	targetRoles []string
	raw         string
	receivedAt  time.Time
}

// Handle is the dispatch entry point for /sendmsg.
func (h *SendMessageHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	r := InteractionResponder{Session: s, Interaction: i.Interaction}
	data := i.ApplicationCommandData()

	target := resolvedUserOption(data, "user")
	raw, _ := stringOption(data, "message")
	if target == nil {
		log.Printf("sendmsg interaction %s carried no resolvable user option", i.ID)
		if err := r.Respond("❌ Có lỗi xảy ra. Vui lòng thử lại sau.", true); err != nil {
			log.Printf("Failed to send missing-target response: %v", err)
		}
		return
	}

	receivedAt, err := discordgo.SnowflakeTimestamp(i.ID)
	if err != nil {
		receivedAt = time.Now()
	}

	adapter := SessionAdapter{Session: s}
	h.handle(r, adapter, adapter, adapter, sendMessageRequest{
		guildID:     i.GuildID,
		sender:      interactionUser(i),
		target:      target,
		targetRoles: resolvedMemberRoles(data, target.ID),
		raw:         raw,
		receivedAt:  receivedAt,
	})
}

func (h *SendMessageHandler) handle(r Responder, rm RoleManager, dm DirectMessenger, logs ChannelSender, req sendMessageRequest) {
	if err := r.Defer(true); err != nil {
		log.Printf("Failed to defer sendmsg interaction: %v", err)
		return
	}

	outcome := EnsureRole(rm, req.guildID, req.target.ID, req.targetRoles, h.customerRoleID)
	if !outcome.Succeeded() {
		sendEphemeral(r, "❌ Không thể thêm role cho user. Vui lòng kiểm tra lại quyền của bot.")
		return
	}

	batch := ParseCredentialBatch(req.raw)
	if batch.CountMismatch(req.raw) {
		sendEphemeral(r, fmt.Sprintf("⚠️ Cảnh báo: Số lượng key không khớp. Đã xử lý %d key.", batch.Count()))
	}

	switch dm.SendDM(req.target.ID, credentialEmbed(batch)) {
	case DeliveryForbidden:
		sendEphemeral(r, fmt.Sprintf("❌ Không thể gửi tin nhắn đến %s. Người dùng có thể đã chặn DM.", req.target.Username))
		return
	case DeliveryFailed:
		sendEphemeral(r, "❌ Có lỗi xảy ra khi gửi tin nhắn.")
		return
	}

	if err := logs.SendEmbed(h.logChannelID, auditEmbed(req, batch)); err != nil {
		log.Printf("Failed to write key delivery log to channel %s: %v", h.logChannelID, err)
	}

	sendEphemeral(r, fmt.Sprintf("✅ Đã gửi tin nhắn đến %s và thêm role!", req.target.Username))
}

func credentialEmbed(batch CredentialBatch) *discordgo.MessageEmbed {
	description := ""
	if batch.Count() > 0 {
		description = fmt.Sprintf(
			"Format: `username - password`\nSố lượng: `%d key`\n\n```\n%s\n```",
			batch.Count(), batch.Joined(),
		)
	}
	return &discordgo.MessageEmbed{
		Title:       "🔑 Thông tin tài khoản",
		Description: description,
		Color:       credentialEmbedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Lưu ý: Mỗi dòng là một tài khoản và mật khẩu"},
	}
}

func auditEmbed(req sendMessageRequest, batch CredentialBatch) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "📝 Log Gửi Key",
		Description: "Chi tiết giao dịch:",
		Color:       auditEmbedColor,
		Timestamp:   req.receivedAt.UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Người gửi",
				Value:  fmt.Sprintf("%s (`%s`)", req.sender.Mention(), req.sender.Username),
				Inline: true,
			},
			{
				Name:   "Người nhận",
				Value:  fmt.Sprintf("%s (`%s`)", req.target.Mention(), req.target.Username),
				Inline: true,
			},
			{
				Name:   "Số lượng key",
				Value:  fmt.Sprintf("`%d key`", batch.Count()),
				Inline: true,
			},
			{
				Name:  "Danh sách key",
				Value: fmt.Sprintf("```\n%s\n```", batch.Joined()),
			},
		},
	}
}
