package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PingCommand reports gateway latency and whether the museum API answers
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check the bot and the museum API",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		withTimeout(func(ctx context.Context) {
			started := time.Now()
			healthy := client.Healthy(ctx)
			sendEmbed(s, i, pingEmbed(healthy, time.Since(started), s.HeartbeatLatency()))
		})
	}

	return cmd, handler
}

func pingEmbed(apiHealthy bool, apiLatency, gatewayLatency time.Duration) *discordgo.MessageEmbed {
	embed := createEmbed("Pong! 🌾", "The museum doors are open.", ColorSuccess)
	api := fmt.Sprintf("✅ %d ms", apiLatency.Milliseconds())
	if !apiHealthy {
		embed.Description = "The bot is up but the museum API is not answering."
		embed.Color = ColorWarning
		api = "❌ unreachable"
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Museum API", Value: api, Inline: true},
		{Name: "Gateway", Value: fmt.Sprintf("%d ms", gatewayLatency.Milliseconds()), Inline: true},
	}
	return embed
}
