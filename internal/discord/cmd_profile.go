package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

const leaderboardSize = 10

// ProfileCommand shows the caller's museum passport
func ProfileCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "View your museum profile",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		user := getInteractionUser(i)

		withTimeout(func(ctx context.Context) {
			summary, err := client.Profile(ctx, user.ID)
			if err != nil {
				slog.Error(LogMsgCommandFailed, "command", "profile", "error", err)
				respondFriendlyError(s, i, err)
				return
			}
			embed := profileEmbed(user.Username, summary)
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("")}
			sendEmbed(s, i, embed)
		})
	}

	return cmd, handler
}

func profileEmbed(name string, s *domain.ProfileSummary) *discordgo.MessageEmbed {
	stats := s.Profile.Stats
	badges := "None yet"
	if len(s.BadgeNames) > 0 {
		badges = strings.Join(s.BadgeNames, ", ")
	}

	embed := createEmbed(fmt.Sprintf("%s's Profile", name), "Your heritage journey so far:", ColorSuccess)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Level", Value: fmt.Sprintf("%d (%.0f%%)", s.LevelProgress.Level, s.LevelProgress.Percent), Inline: true},
		{Name: "Tokens", Value: fmt.Sprintf("%d", stats.Tokens), Inline: true},
		{Name: "Seeds adopted", Value: fmt.Sprintf("%d", s.Lifetime.NFTsAdopted), Inline: true},
		{Name: "Contributed", Value: s.Lifetime.TotalContributedText, Inline: true},
		{Name: "Trees planted", Value: fmt.Sprintf("%d", s.Lifetime.TreesPlanted), Inline: true},
		{Name: "Provinces", Value: fmt.Sprintf("%d completed", s.Lifetime.CompletedProvinces), Inline: true},
		{Name: "Badges", Value: badges},
	}
	return embed
}

// LeaderboardCommand shows the top contributors
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Top heritage guardians",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		withTimeout(func(ctx context.Context) {
			entries, err := client.Leaderboard(ctx, leaderboardSize)
			if err != nil {
				slog.Error(LogMsgCommandFailed, "command", "leaderboard", "error", err)
				respondFriendlyError(s, i, err)
				return
			}
			sendEmbed(s, i, leaderboardEmbed(entries))
		})
	}

	return cmd, handler
}

func leaderboardEmbed(entries []domain.LeaderboardEntry) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, e := range entries {
		medal := fmt.Sprintf("`%2d.`", e.Rank)
		switch e.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		fmt.Fprintf(&b, "%s **%s** · %s · %d tokens\n", medal, e.Name, e.Title, e.Tokens)
	}
	return createEmbed("🏆 Leaderboard", b.String(), ColorGold)
}
