package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// GuideCommand asks the heritage guide a question
func GuideCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "guide",
		Description: "Ask the heritage guide",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "question",
				Description: "What would you like to know?",
				Required:    true,
				MaxLength:   500,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "language",
				Description: "Answer language",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "English", Value: "en"},
					{Name: "Filipino", Value: "fil"},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		opts := optionMap(i)

		withTimeout(func(ctx context.Context) {
			answer, err := client.Ask(ctx, stringOption(opts, "question"), stringOption(opts, "language"))
			if err != nil {
				slog.Error(LogMsgCommandFailed, "command", "guide", "error", err)
				respondFriendlyError(s, i, err)
				return
			}
			embed := createEmbed("📜 Heritage Guide", answer.Answer, ColorInfo)
			embed.Fields = []*discordgo.MessageEmbedField{
				{Name: "You asked", Value: answer.Query},
			}
			sendEmbed(s, i, embed)
		})
	}

	return cmd, handler
}
