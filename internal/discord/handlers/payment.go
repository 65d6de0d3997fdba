package handlers

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keyshopvn/qr-payment-bot/internal/config"
	"github.com/keyshopvn/qr-payment-bot/internal/pricing"
	"github.com/keyshopvn/qr-payment-bot/internal/vietqr"
)

const paymentEmbedColor = 0x00FF00

// PaymentHandler serves the /thanhtoan command: it prices a key order and
// answers with a payment embed carrying the VietQR image link.
type PaymentHandler struct {
	bank config.VietQRConfig
	qr   vietqr.Builder
}

// NewPaymentHandler builds a payment handler for the configured account.
func NewPaymentHandler(bank config.VietQRConfig) *PaymentHandler {
	return &PaymentHandler{
		bank: bank,
		qr: vietqr.Builder{
			BaseURL:     bank.BaseURL,
			BankID:      bank.BankID,
			AccountNo:   bank.AccountNo,
			AccountName: bank.AccountName,
		},
	}
}

// Handle is the dispatch entry point for /thanhtoan.
func (h *PaymentHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	r := InteractionResponder{Session: s, Interaction: i.Interaction}

	quantity, ok := integerOption(i.ApplicationCommandData(), "amount")
	if !ok {
		// Discord enforces the option type, so this only fires on a
		// malformed payload.
		if err := r.Respond("❌ Vui lòng nhập một số hợp lệ.", false); err != nil {
			log.Printf("Failed to send invalid-number response: %v", err)
		}
		return
	}

	h.handle(r, int(quantity), DisplayName(interactionUser(i)))
}

func (h *PaymentHandler) handle(r Responder, quantity int, requester string) {
	quote, err := pricing.NewQuote(quantity)
	if err != nil {
		// Rejected before any QR work starts, so answer in the initial
		// acknowledgement instead of a deferred follow-up.
		if respondErr := r.Respond("❌ Số lượng key phải lớn hơn hoặc bằng 5!", false); respondErr != nil {
			log.Printf("Failed to send quantity rejection: %v", respondErr)
		}
		return
	}

	if err := r.Defer(false); err != nil {
		log.Printf("Failed to defer payment interaction: %v", err)
		return
	}

	qrURL := h.qr.ImageURL(quote.TotalPrice, requester)
	log.Printf("Generated QR URL: %s", qrURL)

	embed := h.paymentEmbed(quote, requester, qrURL)
	if err := r.FollowUp(&discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}}); err != nil {
		log.Printf("Failed to send payment embed: %v", err)
		if err := r.FollowUp(&discordgo.WebhookParams{Content: "❌ Không thể tạo mã QR. Vui lòng thử lại sau."}); err != nil {
			log.Printf("Failed to send payment failure notice: %v", err)
		}
	}
}

func (h *PaymentHandler) paymentEmbed(quote pricing.Quote, requester, qrURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "💳 Thông tin thanh toán",
		Description: fmt.Sprintf(
			"**Số lượng key:** %d key\n**Đơn giá:** %s VNĐ/key",
			quote.Quantity, pricing.FormatVND(quote.UnitPrice),
		),
		Color: paymentEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "🏦 Thông tin tài khoản",
				Value: fmt.Sprintf(
					"```\nNgân hàng: %s\nChủ TK: %s\nSố TK: %s\n```",
					h.bank.BankName, h.bank.AccountName, h.bank.AccountNo,
				),
			},
			{
				Name: "💰 Chi tiết thanh toán",
				Value: fmt.Sprintf(
					"```\nTổng tiền: %s VNĐ\nNội dung CK: %s\n```",
					pricing.FormatVND(quote.TotalPrice), requester,
				),
			},
		},
		Image:  &discordgo.MessageEmbedImage{URL: qrURL},
		Footer: &discordgo.MessageEmbedFooter{Text: "Yêu cầu bởi: " + requester},
	}
}
