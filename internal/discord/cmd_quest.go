package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// QuestCommand shows the current province question, or answers it
func QuestCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minAnswer := float64(1)
	cmd := &discordgo.ApplicationCommand{
		Name:        "quest",
		Description: "Play a province heritage quest",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "province",
				Description: "Province id, e.g. ifugao",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "answer",
				Description: "Option number (1-4); leave out to see the question",
				MinValue:    &minAnswer,
				MaxValue:    4,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		opts := optionMap(i)
		province := strings.ToLower(stringOption(opts, "province"))
		user := getInteractionUser(i)

		withTimeout(func(ctx context.Context) {
			answer, hasAnswer := intOption(opts, "answer")
			if !hasAnswer {
				q, err := client.CurrentQuestion(ctx, province, user.ID)
				if err != nil {
					slog.Error(LogMsgCommandFailed, "command", "quest", "error", err)
					respondFriendlyError(s, i, err)
					return
				}
				sendEmbed(s, i, questionEmbed(q))
				return
			}

			res, err := client.Answer(ctx, province, user.ID, answer-1)
			if err != nil {
				slog.Error(LogMsgCommandFailed, "command", "quest", "error", err)
				respondFriendlyError(s, i, err)
				return
			}
			sendEmbed(s, i, answerEmbed(res))
		})
	}

	return cmd, handler
}

func questionEmbed(q *domain.CurrentQuestion) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString(q.Question.Prompt)
	b.WriteString("\n\n")
	for n, opt := range q.Question.Options {
		fmt.Fprintf(&b, "**%d.** %s\n", n+1, opt)
	}
	embed := createEmbed(fmt.Sprintf("🗺️ %s · question %d of %d", title(q.ProvinceID), q.Index+1, q.QuestionCount),
		b.String(), ColorInfo)
	embed.Footer.Text = "Answer with /quest province:" + q.ProvinceID + " answer:<number>"
	return embed
}

func answerEmbed(res *domain.AnswerResult) *discordgo.MessageEmbed {
	progress := fmt.Sprintf("Progress: %d/%d", res.Progress, res.QuestionCount)
	if !res.Correct {
		return createEmbed("❌ Not quite",
			fmt.Sprintf("The answer was option **%d**.\n%s\n\n%s", res.CorrectOption+1, res.Explanation, progress), ColorWarning)
	}

	title := "✅ Correct!"
	color := ColorSuccess
	if res.Completed {
		title = "🏅 Province complete!"
		color = ColorGold
	}
	desc := fmt.Sprintf("%s\n\n%s · +%d tokens · +%d XP", res.Explanation, progress, res.Rewards.Tokens, res.Rewards.Experience)
	if len(res.Rewards.Badges) > 0 {
		desc += "\nNew badges: " + strings.Join(res.Rewards.Badges, ", ")
	}
	return createEmbed(title, desc, color)
}
