package metrics

import (
	"context"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.CheckoutStarted:
		ActiveCheckouts.Inc()

	case event.CheckoutStepChanged:
		var p event.CheckoutPayloadV1
		if p, err = event.DecodePayload[event.CheckoutPayloadV1](evt.Payload); err == nil &&
			domain.CheckoutStep(p.Step).IsTerminal() {
			ActiveCheckouts.Dec()
		}

	case event.AdoptionCompleted:
		var p event.AdoptionCompletedPayloadV1
		if p, err = event.DecodePayload[event.AdoptionCompletedPayloadV1](evt.Payload); err == nil {
			Adoptions.WithLabelValues(p.Rarity, p.PaymentMethod).Inc()
			PesosDonated.Add(float64(p.Amount))
			TokensAwarded.Add(float64(p.TokensEarned))
		}

	case event.AdoptionFailed:
		AdoptionFailures.Inc()

	case event.QuestAnswered:
		var p event.QuestAnsweredPayloadV1
		if p, err = event.DecodePayload[event.QuestAnsweredPayloadV1](evt.Payload); err == nil {
			if p.Correct {
				QuestAnswers.WithLabelValues(ResultCorrect).Inc()
				TokensAwarded.Inc()
			} else {
				QuestAnswers.WithLabelValues(ResultWrong).Inc()
			}
		}

	case event.QuestCompleted:
		var p event.QuestCompletedPayloadV1
		if p, err = event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload); err == nil {
			QuestsCompleted.WithLabelValues(p.ProvinceID).Inc()
			TokensAwarded.Inc()
		}

	case event.BadgeUnlocked:
		var p event.BadgeUnlockedPayloadV1
		if p, err = event.DecodePayload[event.BadgeUnlockedPayloadV1](evt.Payload); err == nil {
			BadgesUnlocked.WithLabelValues(p.BadgeName).Inc()
		}

	case event.LevelUp:
		var p event.LevelUpPayloadV1
		if p, err = event.DecodePayload[event.LevelUpPayloadV1](evt.Payload); err == nil {
			LevelUps.WithLabelValues(p.Source).Inc()
		}

	case event.TransactionConfirmed:
		TransactionsConfirmed.Inc()
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
