package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/osse101/BinhiHeritage_Go/internal/discord"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// Default values for optional configuration
const (
	DefaultHealthPort = "8082"
	DefaultAPIURL     = "http://localhost:8080"
)

// CommandFactory creates a Discord command and its handler.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	_ = godotenv.Load()

	logger.InitLogger(logger.FromEnv("binhi-discord", os.Getenv))

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := discord.NewHTTPServer(getEnv("DISCORD_HEALTH_PORT", DefaultHealthPort), bot, bot.Client)
	httpServer.Start()
	defer httpServer.Stop()

	for _, factory := range commandFactories() {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		// commands registered on a previous run keep working
		slog.Error("Failed to register commands", "error", err)
	}

	if cfg.NotificationChannelID != "" {
		stream := discord.NewEventStream(cfg.APIURL, cfg.APIKey)
		discord.NewNotifier(bot).Attach(stream)
		stream.Start(ctx)
		defer stream.Stop()
		slog.Info("Channel notifications enabled", "channel_id", cfg.NotificationChannelID)
	}

	if err := bot.Run(ctx); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadConfig reads the bot configuration from the environment
func loadConfig() (discord.Config, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return discord.Config{}, errors.New("DISCORD_TOKEN is required")
	}

	appID := os.Getenv("DISCORD_APP_ID")
	if appID == "" {
		return discord.Config{}, errors.New("DISCORD_APP_ID is required")
	}

	apiURL := getEnv("API_URL", DefaultAPIURL)
	slog.Info("Configured API URL", "url", apiURL)

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		slog.Warn("API_KEY not set, museum API requests will be rejected")
	}

	return discord.Config{
		Token:                 token,
		AppID:                 appID,
		APIURL:                apiURL,
		APIKey:                apiKey,
		NotificationChannelID: os.Getenv("DISCORD_NOTIFICATION_CHANNEL_ID"),
	}, nil
}

func commandFactories() []CommandFactory {
	return []CommandFactory{
		discord.PingCommand,
		discord.CatalogCommand,
		discord.CropCommand,
		discord.AdoptCommand,
		discord.QuestCommand,
		discord.ProfileCommand,
		discord.LeaderboardCommand,
		discord.GuideCommand,
	}
}
