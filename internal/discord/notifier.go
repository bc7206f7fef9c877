package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
)

// Announcer posts an embed somewhere visible
type Announcer interface {
	Announce(embed *discordgo.MessageEmbed) error
}

// Notifier turns museum events into channel announcements
type Notifier struct {
	out Announcer
}

func NewNotifier(out Announcer) *Notifier {
	return &Notifier{out: out}
}

// Attach subscribes the notifier to the events it announces
func (n *Notifier) Attach(stream *EventStream) {
	stream.On(string(event.AdoptionCompleted), announce(n, adoptionEmbedFor))
	stream.On(string(event.QuestCompleted), announce(n, questEmbedFor))
	stream.On(string(event.LevelUp), announce(n, levelEmbedFor))
}

// announce decodes the payload into T and posts whatever embed render builds.
// Malformed payloads are logged and dropped.
func announce[T any](n *Notifier, render func(T) *discordgo.MessageEmbed) StreamHandler {
	return func(e StreamEvent) error {
		var payload T
		if err := json.Unmarshal(e.Payload, &payload); err != nil {
			slog.Warn(LogMsgStreamBadEvent, "error", err, "event_type", e.Type)
			return nil
		}
		if err := n.out.Announce(render(payload)); err != nil {
			slog.Error(LogMsgAnnounceFailed, "event_type", e.Type, "error", err)
			return err
		}
		return nil
	}
}

func adoptionEmbedFor(p event.AdoptionCompletedPayloadV1) *discordgo.MessageEmbed {
	embed := createEmbed("🌾 A seed found its guardian!",
		fmt.Sprintf("**%s** from %s was just adopted.", p.CropName, p.Province), ColorSuccess)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Rarity", Value: p.Rarity, Inline: true},
		{Name: "Contribution", Value: domain.FormatPeso(p.Amount), Inline: true},
	}
	return embed
}

func questEmbedFor(p event.QuestCompletedPayloadV1) *discordgo.MessageEmbed {
	return createEmbed("🗺️ Province quest complete!",
		fmt.Sprintf("A visitor finished **%s** and earned the **%s** badge.", p.ProvinceName, p.Badge), ColorGold)
}

func levelEmbedFor(p event.LevelUpPayloadV1) *discordgo.MessageEmbed {
	return createEmbed("⭐ Level up!",
		fmt.Sprintf("A heritage guardian reached **level %d**.", p.NewLevel), ColorGold)
}
