// Package transparency records simulated on-chain transactions for adoptions
// and reports how each donation is distributed.
package transparency

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	mrand "math/rand/v2"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
)

// RecordInput describes a completed adoption to record
type RecordInput struct {
	UserID        string
	CropID        int
	CropName      string
	Amount        int64
	PaymentMethod domain.PaymentMethod
	WalletAddress string
}

// Service defines the transparency operations
type Service interface {
	Record(ctx context.Context, in RecordInput) (*domain.Transaction, error)
	// Void removes a transaction whose adoption could not be completed
	Void(ctx context.Context, hash string) error
	Get(ctx context.Context, hash string) (*domain.TransactionView, error)
	List(ctx context.Context, userID string) ([]domain.TransactionView, error)
	Breakdown(ctx context.Context, hash string) (*domain.DonationBreakdown, error)

	// AddConfirmation advances a transaction by one block. It returns the new
	// count and whether the transaction is now final.
	AddConfirmation(ctx context.Context, hash string) (int, bool, error)
	// Pending lists hashes still short of final confirmation
	Pending(ctx context.Context) ([]string, error)
}

type service struct {
	repo          repository.Transactions
	publisher     event.Publisher
	defaultWallet string
	now           func() time.Time
}

// NewService creates a transparency service. defaultWallet is used when the
// payer has no connected wallet.
func NewService(repo repository.Transactions, publisher event.Publisher, defaultWallet string) Service {
	return &service{
		repo:          repo,
		publisher:     publisher,
		defaultWallet: defaultWallet,
		now:           time.Now,
	}
}

// NewHash returns "0x" followed by 64 random hex digits
func NewHash() (string, error) {
	b := make([]byte, HashBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(b), nil
}

func (s *service) Record(ctx context.Context, in RecordInput) (*domain.Transaction, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	hash, err := NewHash()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction hash: %w", err)
	}

	wallet := in.WalletAddress
	if wallet == "" {
		wallet = s.defaultWallet
	}

	tx := &domain.Transaction{
		Hash:          hash,
		UserID:        in.UserID,
		CropID:        in.CropID,
		CropName:      in.CropName,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		WalletAddress: wallet,
		Timestamp:     s.now().UTC(),
		BlockNumber:   domain.BlockNumberBase + mrand.Int64N(domain.BlockNumberSpread),
		GasUsed:       domain.SimulatedGasUsed,
		Confirmations: 1,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgTransactionRecorded, "tx_hash", tx.Hash, "user_id", tx.UserID, "amount", tx.Amount)
	return tx, nil
}

func (s *service) Void(ctx context.Context, hash string) error {
	if err := s.repo.DeleteTransaction(ctx, hash); err != nil {
		return err
	}
	logger.FromContext(ctx).Warn(LogMsgTransactionVoided, "tx_hash", hash)
	return nil
}

func (s *service) Get(ctx context.Context, hash string) (*domain.TransactionView, error) {
	tx, err := s.repo.GetTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}
	view := tx.View()
	return &view, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.TransactionView, error) {
	txs, err := s.repo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TransactionView, len(txs))
	for i, tx := range txs {
		out[i] = tx.View()
	}
	return out, nil
}

func (s *service) Breakdown(ctx context.Context, hash string) (*domain.DonationBreakdown, error) {
	tx, err := s.repo.GetTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}
	return NewBreakdown(tx.Hash, tx.Amount), nil
}

// NewBreakdown splits total across the beneficiaries, rounding each share independently
func NewBreakdown(hash string, total int64) *domain.DonationBreakdown {
	shares := make([]domain.DonationShare, len(breakdownShares))
	for i, b := range breakdownShares {
		amount := int64(math.Round(float64(total) * float64(b.Percentage) / 100))
		shares[i] = domain.DonationShare{
			Category:   b.Category,
			Percentage: b.Percentage,
			Amount:     amount,
			AmountText: domain.FormatPeso(amount),
		}
	}
	return &domain.DonationBreakdown{
		TxHash: hash,
		Total:  total,
		Shares: shares,
		Impact: domain.ImpactSummary{
			FarmersSupported: ImpactFarmersSupported,
			SeedBank:         ImpactSeedBankPercent,
			Research:         ImpactResearchPercent,
			Community:        ImpactCommunityPercent,
		},
	}
}

func (s *service) AddConfirmation(ctx context.Context, hash string) (int, bool, error) {
	tx, err := s.repo.GetTransaction(ctx, hash)
	if err != nil {
		return 0, false, err
	}
	if tx.Confirmations >= domain.ConfirmationsFinal {
		return tx.Confirmations, true, nil
	}

	n := tx.Confirmations + 1
	if err := s.repo.UpdateConfirmations(ctx, hash, n); err != nil {
		return 0, false, err
	}

	final := n >= domain.ConfirmationsFinal
	evtType := event.ConfirmationAdded
	if final {
		evtType = event.TransactionConfirmed
		logger.FromContext(ctx).Info(LogMsgTransactionConfirmed, "tx_hash", hash)
	}
	if err := s.publisher.Publish(ctx, event.NewConfirmationEvent(evtType, event.ConfirmationPayloadV1{
		TxHash:        hash,
		UserID:        tx.UserID,
		Confirmations: n,
		Status:        string(domain.StatusForConfirmations(n)),
	})); err != nil {
		logger.FromContext(ctx).Warn(LogMsgConfirmationPublishFailed, "tx_hash", hash, "error", err)
	}
	return n, final, nil
}

func (s *service) Pending(ctx context.Context) ([]string, error) {
	txs, err := s.repo.ListTransactions(ctx, "")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, tx := range txs {
		if tx.Confirmations < domain.ConfirmationsFinal {
			out = append(out, tx.Hash)
		}
	}
	return out, nil
}
