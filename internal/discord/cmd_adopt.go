package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// Checkout polling. Variables so tests can shorten them.
var (
	adoptPollInterval = 500 * time.Millisecond
	adoptWait         = 30 * time.Second
)

// AdoptCommand runs the whole checkout for a seed and reports the result
func AdoptCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "adopt",
		Description: "Adopt a heritage seed as a digital collectible",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "crop",
				Description: "Catalog number",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "payment",
				Description: "How to pay",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "GCash", Value: string(domain.PaymentGCash)},
					{Name: "Card", Value: string(domain.PaymentCard)},
					{Name: "Crypto", Value: string(domain.PaymentCrypto)},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "wallet",
				Description: "Wallet provider for crypto payments",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		opts := optionMap(i)
		cropID, _ := intOption(opts, "crop")
		user := getInteractionUser(i)

		ctx, cancel := context.WithTimeout(context.Background(), adoptWait+commandTimeout)
		defer cancel()

		cs, err := adopt(ctx, client, user.ID, cropID, stringOption(opts, "payment"), stringOption(opts, "wallet"))
		if err != nil {
			slog.Error(LogMsgCommandFailed, "command", "adopt", "error", err)
			respondFriendlyError(s, i, err)
			return
		}
		if !cs.Step.IsTerminal() {
			respondError(s, i, MsgAdoptTimeout)
			return
		}
		sendEmbed(s, i, adoptionEmbed(cs))
	}

	return cmd, handler
}

// adopt walks a checkout from start to a terminal step. A session left
// mid-way by an error is cancelled so the seed is not held.
func adopt(ctx context.Context, client *APIClient, userID string, cropID int, method, wallet string) (*domain.CheckoutSession, error) {
	cs, err := client.StartAdoption(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	steps := []func() (*domain.CheckoutSession, error){
		func() (*domain.CheckoutSession, error) { return client.AdoptionStep(ctx, cs.ID, "proceed") },
		func() (*domain.CheckoutSession, error) { return client.SelectPayment(ctx, cs.ID, method, wallet) },
		func() (*domain.CheckoutSession, error) { return client.AdoptionStep(ctx, cs.ID, "confirm") },
	}
	for _, step := range steps {
		if _, err := step(); err != nil {
			if _, cerr := client.AdoptionStep(ctx, cs.ID, "cancel"); cerr != nil {
				slog.Warn("Failed to cancel abandoned checkout", "session_id", cs.ID, "error", cerr)
			}
			return nil, err
		}
	}

	return waitForAdoption(ctx, client, cs)
}

func waitForAdoption(ctx context.Context, client *APIClient, cs *domain.CheckoutSession) (*domain.CheckoutSession, error) {
	deadline := time.NewTimer(adoptWait)
	defer deadline.Stop()
	ticker := time.NewTicker(adoptPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return cs, nil
		case <-ticker.C:
			latest, err := client.GetAdoption(ctx, cs.ID)
			if err != nil {
				return nil, err
			}
			cs = latest
			if cs.Step.IsTerminal() {
				return cs, nil
			}
		}
	}
}

func adoptionEmbed(cs *domain.CheckoutSession) *discordgo.MessageEmbed {
	if cs.Step != domain.StepSuccess {
		reason := cs.FailureReason
		if reason == "" {
			reason = string(cs.Step)
		}
		return createEmbed("❌ Adoption did not go through", fmt.Sprintf("**%s**: %s", cs.CropName, reason), ColorFailure)
	}

	embed := createEmbed("🎉 Seed adopted!",
		fmt.Sprintf("You are now the guardian of **%s**.", cs.CropName), ColorSuccess)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Contribution", Value: cs.Quote.AmountText, Inline: true},
		{Name: "Total paid", Value: cs.Quote.TotalText, Inline: true},
		{Name: "Transaction", Value: "`" + cs.TxHash + "`"},
	}
	if r := cs.Rewards; r != nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Tokens", Value: fmt.Sprintf("+%d", r.Tokens), Inline: true},
			&discordgo.MessageEmbedField{Name: "XP", Value: fmt.Sprintf("+%d", r.Experience), Inline: true},
		)
		if len(r.Badges) > 0 {
			embed.Fields = append(embed.Fields,
				&discordgo.MessageEmbedField{Name: "New badges", Value: strings.Join(r.Badges, ", ")})
		}
		if r.LeveledUp {
			embed.Fields = append(embed.Fields,
				&discordgo.MessageEmbedField{Name: "Level up!", Value: fmt.Sprintf("Level %d", r.LevelReached)})
		}
	}
	return embed
}
