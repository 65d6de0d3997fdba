package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	DiscordBot DiscordBotConfig
	VietQR     VietQRConfig
	Shop       ShopConfig
}

// DiscordBotConfig holds Discord bot configuration
type DiscordBotConfig struct {
	Token string
}

// VietQRConfig holds the bank account details embedded in payment QR links
type VietQRConfig struct {
	BaseURL     string
	BankID      string
	BankName    string
	AccountNo   string
	AccountName string
}

// ShopConfig holds deployment-specific Discord identifiers
type ShopConfig struct {
	CustomerRoleID string
	LogChannelID   string
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"DiscordBot.Token":    "DISCORD_TOKEN",
	"VietQR.BaseURL":      "QR_BASE_URL",
	"VietQR.BankID":       "BANK_ID",
	"VietQR.BankName":     "BANK_NAME",
	"VietQR.AccountNo":    "ACCOUNT_NO",
	"VietQR.AccountName":  "ACCOUNT_NAME",
	"Shop.CustomerRoleID": "CUSTOMER_ROLE_ID",
	"Shop.LogChannelID":   "LOG_CHANNEL_ID",
}

// Load reads configuration from the environment and an optional config file.
// configPath may be empty, in which case only config.yaml in the working
// directory is considered; a missing file is not an error because the
// primary configuration surface is the environment.
func Load(configPath string) (*Config, error) {
	setDefaults()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DiscordBot.Token == "" {
		return nil, fmt.Errorf("discord bot token is required (set DISCORD_TOKEN)")
	}

	// The bot still starts without account details, but every QR link it
	// produces will be incomplete.
	if cfg.VietQR.AccountNo == "" || cfg.VietQR.AccountName == "" {
		log.Println("Warning: ACCOUNT_NO or ACCOUNT_NAME is not set, generated QR links will be incomplete")
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("VietQR.BaseURL", "https://img.vietqr.io")
	viper.SetDefault("VietQR.BankID", "970436")
	viper.SetDefault("VietQR.BankName", "BIDV")

	// Identifiers of the shop's own guild. Overridable for other deployments.
	viper.SetDefault("Shop.CustomerRoleID", "1334194617322831935")
	viper.SetDefault("Shop.LogChannelID", "1336368295363874909")
}
