package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/keyshopvn/qr-payment-bot/internal/config"
	"github.com/keyshopvn/qr-payment-bot/internal/discord/handlers"
)

// Bot owns the gateway connection and the shop's slash commands.
type Bot struct {
	session *discordgo.Session
	cfg     *config.Config
}

// New creates a Discord session and fills the command registry.
func New(cfg *config.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordBot.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	bot := &Bot{session: session, cfg: cfg}
	bot.registerCommands()
	session.AddHandler(ProcessInteraction)
	return bot, nil
}

func (b *Bot) registerCommands() {
	payment := handlers.NewPaymentHandler(b.cfg.VietQR)
	RegisterCommand(CommandDefinition{
		Command: &discordgo.ApplicationCommand{
			Name:        "thanhtoan",
			Description: "Tạo mã QR thanh toán ngân hàng",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Số lượng key cần thanh toán",
					Required:    true,
				},
			},
		},
		Handler: payment.Handle,
	})

	sendMsg := handlers.NewSendMessageHandler(b.cfg.Shop)
	RegisterCommand(CommandDefinition{
		Command: &discordgo.ApplicationCommand{
			Name:        "sendmsg",
			Description: "Gửi tin nhắn trực tiếp đến user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Người dùng cần gửi tin nhắn",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "Nội dung tin nhắn cần gửi",
					Required:    true,
				},
			},
		},
		Handler: sendMsg.Handle,
	})
}

// Start opens the gateway connection and syncs the slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	log.Println("Synchronizing commands...")
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", registeredCommands())
	if err != nil {
		b.session.Close()
		return fmt.Errorf("error synchronizing commands: %w", err)
	}

	log.Printf("Connected to Discord as %s", b.session.State.User.Username)
	return nil
}

// Stop closes the Discord session.
func (b *Bot) Stop() {
	if b.session != nil {
		b.session.Close()
	}
}
