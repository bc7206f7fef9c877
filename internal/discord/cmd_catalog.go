package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

const catalogPageSize = 10

// title capitalizes words for embeds. A Caser is stateful, so each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func rarityChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Rarities))
	for _, r := range domain.Rarities {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%s)", r, r.English()),
			Value: string(r),
		})
	}
	return choices
}

// CatalogCommand lists heritage seeds
func CatalogCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "catalog",
		Description: "Browse the heritage seed catalog",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "search",
				Description: "Name, type, province or description",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "rarity",
				Description: "Only this rarity",
				Choices:     rarityChoices(),
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		opts := optionMap(i)

		withTimeout(func(ctx context.Context) {
			crops, err := client.ListCrops(ctx, stringOption(opts, "search"), stringOption(opts, "rarity"))
			if err != nil {
				slog.Error(LogMsgCommandFailed, "command", "catalog", "error", err)
				respondFriendlyError(s, i, err)
				return
			}
			sendEmbed(s, i, catalogEmbed(crops))
		})
	}

	return cmd, handler
}

func catalogEmbed(crops []domain.Crop) *discordgo.MessageEmbed {
	if len(crops) == 0 {
		return createEmbed("🌾 Seed Catalog", MsgNoCrops, ColorWarning)
	}

	var b strings.Builder
	for n, c := range crops {
		if n == catalogPageSize {
			fmt.Fprintf(&b, "\n…and %d more", len(crops)-catalogPageSize)
			break
		}
		status := "🌱 available"
		if c.Adopted {
			status = "✅ adopted"
		}
		fmt.Fprintf(&b, "`#%d` **%s** · %s · %s · %s\n", c.ID, c.Name, c.Rarity, c.FormattedValue(), status)
	}
	return createEmbed(fmt.Sprintf("🌾 Seed Catalog (%d)", len(crops)), b.String(), ColorInfo)
}

// CropCommand shows one seed in detail
func CropCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "crop",
		Description: "Show a heritage seed",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "id",
				Description: "Catalog number",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		id, _ := intOption(optionMap(i), "id")

		withTimeout(func(ctx context.Context) {
			crop, err := client.GetCrop(ctx, id)
			if err != nil {
				slog.Error(LogMsgCommandFailed, "command", "crop", "error", err)
				respondFriendlyError(s, i, err)
				return
			}
			sendEmbed(s, i, cropEmbed(crop))
		})
	}

	return cmd, handler
}

func cropEmbed(c *domain.Crop) *discordgo.MessageEmbed {
	embed := createEmbed(fmt.Sprintf("🌾 %s", c.Name), c.Description, ColorInfo)
	adopted := "No, open for adoption"
	if c.Adopted {
		adopted = "Yes"
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Type", Value: title(c.Type), Inline: true},
		{Name: "Rarity", Value: fmt.Sprintf("%s (%s)", c.Rarity, title(c.Rarity.English())), Inline: true},
		{Name: "Status", Value: string(c.ConservationStatus), Inline: true},
		{Name: "Preservation value", Value: c.FormattedValue(), Inline: true},
		{Name: "Origin", Value: c.Location, Inline: true},
		{Name: "Adopted", Value: adopted, Inline: true},
		{Name: "Cultural significance", Value: c.Traits.CulturalSignificance},
	}
	return embed
}
