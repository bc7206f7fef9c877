package repository

import (
	"context"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// Transactions stores simulated adoption transactions
type Transactions interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	// GetTransaction returns domain.ErrTransactionNotFound for unknown hashes
	GetTransaction(ctx context.Context, hash string) (*domain.Transaction, error)
	// ListTransactions returns a user's transactions newest first. Empty userID lists all.
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	UpdateConfirmations(ctx context.Context, hash string, confirmations int) error
	DeleteTransaction(ctx context.Context, hash string) error
}
