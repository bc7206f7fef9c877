// Package adoption runs the mock NFT adoption checkout:
// details → payment → confirmation → processing → success.
package adoption

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BinhiHeritage_Go/internal/concurrency"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/profile"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
	"github.com/osse101/BinhiHeritage_Go/internal/rewards"
	"github.com/osse101/BinhiHeritage_Go/internal/transparency"
)

// Service defines the checkout operations
type Service interface {
	Start(ctx context.Context, userID string, cropID int) (*domain.CheckoutSession, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error)
	Proceed(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error)
	SelectPayment(ctx context.Context, id uuid.UUID, method domain.PaymentMethod, walletProvider string) (*domain.CheckoutSession, error)
	Back(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error)
	Confirm(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error)

	// Complete finishes a processing session. Called by the checkout worker.
	Complete(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error)
	// Processing lists sessions waiting for completion, used on startup
	Processing(ctx context.Context) ([]domain.CheckoutSession, error)
	// Prune drops finished sessions last updated before cutoff
	Prune(ctx context.Context, cutoff time.Time) int
}

type service struct {
	catalog      repository.Catalog
	profiles     profile.Service
	transparency transparency.Service
	engine       *rewards.Engine
	publisher    event.Publisher
	locks        *concurrency.LockManager

	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.CheckoutSession
	now      func() time.Time
}

// NewService creates the checkout service
func NewService(
	catalog repository.Catalog,
	profiles profile.Service,
	tx transparency.Service,
	engine *rewards.Engine,
	publisher event.Publisher,
	locks *concurrency.LockManager,
) Service {
	return &service{
		catalog:      catalog,
		profiles:     profiles,
		transparency: tx,
		engine:       engine,
		publisher:    publisher,
		locks:        locks,
		sessions:     make(map[uuid.UUID]*domain.CheckoutSession),
		now:          time.Now,
	}
}

func (s *service) Start(ctx context.Context, userID string, cropID int) (*domain.CheckoutSession, error) {
	if _, err := s.profiles.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	crop, err := s.catalog.GetCrop(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if crop.Adopted {
		return nil, fmt.Errorf("%w: %s", domain.ErrCropAlreadyAdopted, crop.Name)
	}

	now := s.now()
	session := &domain.CheckoutSession{
		ID:        uuid.New(),
		UserID:    userID,
		CropID:    crop.ID,
		CropName:  crop.Name,
		Quote:     domain.NewQuote(crop.PreservationValue),
		Step:      domain.StepDetails,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	for _, existing := range s.sessions {
		if existing.UserID == userID && existing.CropID == cropID && !existing.Step.IsTerminal() {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: session %s", domain.ErrCheckoutAlreadyActive, existing.ID)
		}
	}
	s.sessions[session.ID] = session
	out := *session
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgCheckoutStarted, "session_id", session.ID, "user_id", userID, "crop_id", cropID)
	s.publishStep(ctx, event.CheckoutStarted, &out)
	return &out, nil
}

func (s *service) Get(_ context.Context, id uuid.UUID) (*domain.CheckoutSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	out := *session
	return &out, nil
}

// transition applies fn to the session under its lock and announces the new step.
// fn validates the current step and mutates the copy it is given.
func (s *service) transition(ctx context.Context, id uuid.UUID, fn func(*domain.CheckoutSession) error) (*domain.CheckoutSession, error) {
	out, err := s.transitionQuiet(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgCheckoutStep, "session_id", id, "step", out.Step)
	s.publishStep(ctx, event.CheckoutStepChanged, out)
	return out, nil
}

func sessionLockKey(id uuid.UUID) string {
	return "checkout:" + id.String()
}

func invalid(from domain.CheckoutStep, action string) error {
	return fmt.Errorf("%w: cannot %s from %s", domain.ErrInvalidTransition, action, from)
}

func (s *service) Proceed(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error) {
	return s.transition(ctx, id, func(cs *domain.CheckoutSession) error {
		if cs.Step != domain.StepDetails {
			return invalid(cs.Step, "proceed")
		}
		cs.Step = domain.StepPayment
		return nil
	})
}

// SelectPayment records the payment method. Crypto payments connect the chosen
// wallet provider to the visitor's profile.
func (s *service) SelectPayment(ctx context.Context, id uuid.UUID, method domain.PaymentMethod, walletProvider string) (*domain.CheckoutSession, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMethod, method)
	}
	if method == domain.PaymentCrypto && walletProvider == "" {
		return nil, domain.ErrWalletRequired
	}

	return s.transition(ctx, id, func(cs *domain.CheckoutSession) error {
		if cs.Step != domain.StepPayment {
			return invalid(cs.Step, "select payment")
		}
		cs.PaymentMethod = method
		cs.WalletProvider = ""
		cs.WalletAddress = ""
		if method == domain.PaymentCrypto {
			p, err := s.profiles.ConnectWallet(ctx, cs.UserID, walletProvider)
			if err != nil {
				return err
			}
			cs.WalletProvider = p.WalletProvider
			cs.WalletAddress = p.WalletAddress
		}
		cs.Step = domain.StepConfirmation
		return nil
	})
}

func (s *service) Back(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error) {
	return s.transition(ctx, id, func(cs *domain.CheckoutSession) error {
		switch cs.Step {
		case domain.StepPayment:
			cs.Step = domain.StepDetails
		case domain.StepConfirmation:
			cs.Step = domain.StepPayment
		default:
			return invalid(cs.Step, "go back")
		}
		return nil
	})
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error) {
	return s.transition(ctx, id, func(cs *domain.CheckoutSession) error {
		if cs.Step != domain.StepConfirmation {
			return invalid(cs.Step, "confirm")
		}
		cs.Step = domain.StepProcessing
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error) {
	return s.transition(ctx, id, func(cs *domain.CheckoutSession) error {
		if cs.Step.IsTerminal() || cs.Step == domain.StepProcessing {
			return invalid(cs.Step, "cancel")
		}
		cs.Step = domain.StepCancelled
		return nil
	})
}

// Complete marks the crop adopted, records the transaction and credits the
// visitor. If the crop was taken meanwhile the session fails instead. A failure
// after the crop is marked releases it, voids the transaction and fails the session.
func (s *service) Complete(ctx context.Context, id uuid.UUID) (*domain.CheckoutSession, error) {
	var (
		crop    *domain.Crop
		tx      *domain.Transaction
		outcome rewards.Outcome
		failed  bool
		cause   error
	)

	session, err := s.transitionQuiet(ctx, id, func(cs *domain.CheckoutSession) error {
		if cs.Step != domain.StepProcessing {
			return invalid(cs.Step, "complete")
		}

		c, err := s.catalog.GetCrop(ctx, cs.CropID)
		if err != nil {
			return err
		}
		crop = c

		if err := s.catalog.MarkAdopted(ctx, cs.CropID, cs.UserID); err != nil {
			if !errors.Is(err, domain.ErrCropAlreadyAdopted) {
				return err
			}
			failed = true
			cs.Step = domain.StepFailed
			cs.FailureReason = FailureCropTaken
			return nil
		}

		abort := func(err error) error {
			s.rollback(ctx, cs, tx)
			cause = err
			failed = true
			cs.Step = domain.StepFailed
			cs.FailureReason = FailureProcessing
			return nil
		}

		wallet := cs.WalletAddress
		if wallet == "" {
			p, err := s.profiles.GetOrCreate(ctx, cs.UserID)
			if err != nil {
				return abort(err)
			}
			wallet = p.WalletAddress
		}

		tx, err = s.transparency.Record(ctx, transparency.RecordInput{
			UserID:        cs.UserID,
			CropID:        cs.CropID,
			CropName:      cs.CropName,
			Amount:        cs.Quote.Amount,
			PaymentMethod: cs.PaymentMethod,
			WalletAddress: wallet,
		})
		if err != nil {
			return abort(err)
		}

		if _, err := s.profiles.Update(ctx, cs.UserID, func(p *domain.Profile) error {
			outcome = s.engine.ApplyAdoption(p.Stats, cs.Quote.Amount)
			p.Stats = outcome.Stats
			p.LastAdoptedCrop = cs.CropName
			return nil
		}); err != nil {
			return abort(err)
		}

		summary := outcome.Summary()
		cs.Rewards = &summary
		cs.TxHash = tx.Hash
		cs.WalletAddress = tx.WalletAddress
		cs.Step = domain.StepSuccess
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	if failed {
		if cause != nil {
			log.Error(LogMsgAdoptionFailed, "session_id", id, "crop_id", session.CropID, "reason", session.FailureReason, "error", cause)
		} else {
			log.Warn(LogMsgAdoptionFailed, "session_id", id, "crop_id", session.CropID, "reason", session.FailureReason)
		}
		s.publishStep(ctx, event.CheckoutStepChanged, session)
		s.publish(ctx, event.NewAdoptionFailedEvent(event.AdoptionFailedPayloadV1{
			SessionID: session.ID.String(),
			UserID:    session.UserID,
			CropID:    session.CropID,
			Reason:    session.FailureReason,
		}))
		return session, nil
	}

	log.Info(LogMsgAdoptionCompleted, "session_id", id, "user_id", session.UserID, "crop_id", session.CropID, "tx_hash", tx.Hash)
	s.publishStep(ctx, event.CheckoutStepChanged, session)
	s.publish(ctx, event.NewAdoptionCompletedEvent(event.AdoptionCompletedPayloadV1{
		SessionID:     session.ID.String(),
		UserID:        session.UserID,
		CropID:        crop.ID,
		CropName:      crop.Name,
		Rarity:        string(crop.Rarity),
		Province:      crop.Province,
		Amount:        session.Quote.Amount,
		PaymentMethod: string(session.PaymentMethod),
		TxHash:        tx.Hash,
		TokensEarned:  outcome.TokensEarned,
	}))
	rewards.PublishOutcome(ctx, s.publisher, session.UserID, rewards.SourceAdoption, outcome)
	return session, nil
}

// rollback undoes the crop flag and ledger entry of a completion that failed part way
func (s *service) rollback(ctx context.Context, cs *domain.CheckoutSession, tx *domain.Transaction) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx)
	if tx != nil {
		if err := s.transparency.Void(ctx, tx.Hash); err != nil {
			log.Error(LogMsgRollbackFailed, "session_id", cs.ID, "tx_hash", tx.Hash, "error", err)
		}
	}
	if err := s.catalog.ReleaseAdoption(ctx, cs.CropID, cs.UserID); err != nil {
		log.Error(LogMsgRollbackFailed, "session_id", cs.ID, "crop_id", cs.CropID, "error", err)
	}
}

// transitionQuiet is transition without the step event, for Complete which publishes its own
func (s *service) transitionQuiet(ctx context.Context, id uuid.UUID, fn func(*domain.CheckoutSession) error) (*domain.CheckoutSession, error) {
	var out *domain.CheckoutSession
	err := s.locks.WithLock(sessionLockKey(id), func() error {
		current, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return err
		}
		current.UpdatedAt = s.now()

		s.mu.Lock()
		stored := *current
		s.sessions[id] = &stored
		s.mu.Unlock()

		out = current
		return nil
	})
	return out, err
}

func (s *service) Processing(_ context.Context) ([]domain.CheckoutSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CheckoutSession
	for _, cs := range s.sessions {
		if cs.Step == domain.StepProcessing {
			out = append(out, *cs)
		}
	}
	return out, nil
}

func (s *service) Prune(ctx context.Context, cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, cs := range s.sessions {
		if cs.Step.IsTerminal() && cs.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			s.locks.Release(sessionLockKey(id))
			n++
		}
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgSessionsPruned, "count", n)
	}
	return n
}

func (s *service) publishStep(ctx context.Context, t event.Type, cs *domain.CheckoutSession) {
	s.publish(ctx, event.NewCheckoutEvent(t, event.CheckoutPayloadV1{
		SessionID:     cs.ID.String(),
		UserID:        cs.UserID,
		CropID:        cs.CropID,
		CropName:      cs.CropName,
		Step:          string(cs.Step),
		PaymentMethod: string(cs.PaymentMethod),
	}))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
