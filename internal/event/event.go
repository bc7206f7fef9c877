package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version   string                 `json:"version"`
	Type      Type                   `json:"type"`
	Payload   interface{}            `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Museum event types
const (
	CheckoutStarted      Type = "checkout.started"
	CheckoutStepChanged  Type = "checkout.step_changed"
	AdoptionCompleted    Type = "adoption.completed"
	AdoptionFailed       Type = "adoption.failed"
	BadgeUnlocked        Type = "badge.unlocked"
	LevelUp              Type = "level.up"
	QuestAnswered        Type = "quest.answered"
	QuestCompleted       Type = "quest.completed"
	TransactionConfirmed Type = "transaction.confirmed"
	ConfirmationAdded    Type = "transaction.confirmation"
	CommunityUpdated     Type = "community.updated"
)

// AllTypes lists every event type, used by subscribers that want everything
var AllTypes = []Type{
	CheckoutStarted, CheckoutStepChanged, AdoptionCompleted, AdoptionFailed,
	BadgeUnlocked, LevelUp, QuestAnswered, QuestCompleted,
	ConfirmationAdded, TransactionConfirmed, CommunityUpdated,
}

// CheckoutPayloadV1 is the payload for checkout lifecycle events
type CheckoutPayloadV1 struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	CropID        int    `json:"crop_id"`
	CropName      string `json:"crop_name"`
	Step          string `json:"step"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// AdoptionCompletedPayloadV1 is the payload for completed adoptions
type AdoptionCompletedPayloadV1 struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	CropID        int    `json:"crop_id"`
	CropName      string `json:"crop_name"`
	Rarity        string `json:"rarity"`
	Province      string `json:"province"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	TxHash        string `json:"tx_hash"`
	TokensEarned  int    `json:"tokens_earned"`
}

// AdoptionFailedPayloadV1 is the payload for failed adoptions
type AdoptionFailedPayloadV1 struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	CropID    int    `json:"crop_id"`
	Reason    string `json:"reason"`
}

// BadgeUnlockedPayloadV1 is the payload for badge unlocks
type BadgeUnlockedPayloadV1 struct {
	UserID    string `json:"user_id"`
	BadgeID   string `json:"badge_id,omitempty"`
	BadgeName string `json:"badge_name"`
	Rarity    string `json:"rarity,omitempty"`
	Source    string `json:"source"`
}

// LevelUpPayloadV1 is the payload for level ups
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	Source   string `json:"source"`
}

// QuestAnsweredPayloadV1 is the payload for quest answers
type QuestAnsweredPayloadV1 struct {
	UserID     string `json:"user_id"`
	ProvinceID string `json:"province_id"`
	QuestionID string `json:"question_id"`
	Correct    bool   `json:"correct"`
	Progress   int    `json:"progress"`
}

// QuestCompletedPayloadV1 is the payload for completed provinces
type QuestCompletedPayloadV1 struct {
	UserID       string `json:"user_id"`
	ProvinceID   string `json:"province_id"`
	ProvinceName string `json:"province_name"`
	Badge        string `json:"badge"`
}

// ConfirmationPayloadV1 is the payload for transaction confirmation progress
type ConfirmationPayloadV1 struct {
	TxHash        string `json:"tx_hash"`
	UserID        string `json:"user_id"`
	Confirmations int    `json:"confirmations"`
	Status        string `json:"status"`
}

// CommunityUpdatedPayloadV1 is the payload for dashboard refreshes
type CommunityUpdatedPayloadV1 struct {
	TotalAdoptions int   `json:"total_adoptions"`
	TreesPlanted   int   `json:"trees_planted"`
	FundsRaised    int64 `json:"funds_raised"`
}

func newEvent(t Type, payload interface{}, metadata map[string]interface{}) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      t,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}

// NewCheckoutEvent creates a checkout lifecycle event
func NewCheckoutEvent(t Type, payload CheckoutPayloadV1) Event {
	return newEvent(t, payload, nil)
}

// NewAdoptionCompletedEvent creates an adoption.completed event
func NewAdoptionCompletedEvent(payload AdoptionCompletedPayloadV1) Event {
	return newEvent(AdoptionCompleted, payload, map[string]interface{}{"user_id": payload.UserID})
}

// NewAdoptionFailedEvent creates an adoption.failed event
func NewAdoptionFailedEvent(payload AdoptionFailedPayloadV1) Event {
	return newEvent(AdoptionFailed, payload, map[string]interface{}{"user_id": payload.UserID})
}

// NewBadgeUnlockedEvent creates a badge.unlocked event
func NewBadgeUnlockedEvent(userID, badgeID, badgeName, rarity, source string) Event {
	return newEvent(BadgeUnlocked, BadgeUnlockedPayloadV1{
		UserID:    userID,
		BadgeID:   badgeID,
		BadgeName: badgeName,
		Rarity:    rarity,
		Source:    source,
	}, map[string]interface{}{"user_id": userID})
}

// NewLevelUpEvent creates a level.up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, source string) Event {
	return newEvent(LevelUp, LevelUpPayloadV1{
		UserID:   userID,
		OldLevel: oldLevel,
		NewLevel: newLevel,
		Source:   source,
	}, map[string]interface{}{"user_id": userID})
}

// NewQuestAnsweredEvent creates a quest.answered event
func NewQuestAnsweredEvent(payload QuestAnsweredPayloadV1) Event {
	return newEvent(QuestAnswered, payload, map[string]interface{}{"user_id": payload.UserID})
}

// NewQuestCompletedEvent creates a quest.completed event
func NewQuestCompletedEvent(payload QuestCompletedPayloadV1) Event {
	return newEvent(QuestCompleted, payload, map[string]interface{}{"user_id": payload.UserID})
}

// NewConfirmationEvent creates a confirmation progress or final confirmation event
func NewConfirmationEvent(t Type, payload ConfirmationPayloadV1) Event {
	return newEvent(t, payload, map[string]interface{}{"user_id": payload.UserID})
}

// NewCommunityUpdatedEvent creates a community.updated event
func NewCommunityUpdatedEvent(payload CommunityUpdatedPayloadV1) Event {
	return newEvent(CommunityUpdated, payload, nil)
}

// UserID returns the user_id metadata value, if any
func (e Event) UserID() string {
	if e.Metadata == nil {
		return ""
	}
	if id, ok := e.Metadata["user_id"].(string); ok {
		return id
	}
	return ""
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher is the write side of the bus, used by services
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-process bus that runs handlers synchronously
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// HandlerErrors is returned by MemoryBus when some subscribers failed.
// Failed holds their positions in the subscription order.
type HandlerErrors struct {
	Type   Type
	Failed []int
	Errs   []error
}

func (e *HandlerErrors) Error() string {
	return fmt.Sprintf(LogMsgHandlerErrorFormat, len(e.Errs), e.Type, e.Errs)
}

func (e *HandlerErrors) Unwrap() []error {
	return e.Errs
}

// Publish runs every handler for the event type and aggregates their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	return b.deliver(ctx, event, nil)
}

// Redeliver runs only the handlers at the given positions, as reported by a
// previous HandlerErrors for the same event type.
func (b *MemoryBus) Redeliver(ctx context.Context, event Event, positions []int) error {
	return b.deliver(ctx, event, positions)
}

func (b *MemoryBus) deliver(ctx context.Context, event Event, positions []int) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if positions == nil {
		positions = make([]int, len(handlers))
		for i := range handlers {
			positions[i] = i
		}
	}

	var failed *HandlerErrors
	for _, i := range positions {
		if i < 0 || i >= len(handlers) {
			continue
		}
		if err := handlers[i](ctx, event); err != nil {
			if failed == nil {
				failed = &HandlerErrors{Type: event.Type}
			}
			failed.Failed = append(failed.Failed, i)
			failed.Errs = append(failed.Errs, err)
		}
	}

	if failed != nil {
		return failed
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
