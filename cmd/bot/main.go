package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/keyshopvn/qr-payment-bot/internal/config"
	"github.com/keyshopvn/qr-payment-bot/internal/discord"
)

func main() {
	configFile := flag.String("config", "", "Path to optional configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	bot, err := discord.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}
	defer bot.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalChan
		log.Println("Received termination signal, shutting down gracefully...")
		cancel()
	}()

	log.Println("QR payment bot is now running. Press CTRL+C to exit.")
	<-ctx.Done()
	log.Println("QR payment bot shutting down...")
}
