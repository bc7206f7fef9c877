package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutStep is a stage of the adoption checkout
type CheckoutStep string

const (
	StepDetails      CheckoutStep = "details"
	StepPayment      CheckoutStep = "payment"
	StepConfirmation CheckoutStep = "confirmation"
	StepProcessing   CheckoutStep = "processing"
	StepSuccess      CheckoutStep = "success"
	StepCancelled    CheckoutStep = "cancelled"
	StepFailed       CheckoutStep = "failed"
)

// IsTerminal reports whether no further transitions are possible
func (s CheckoutStep) IsTerminal() bool {
	return s == StepSuccess || s == StepCancelled || s == StepFailed
}

// Checkout fees added on top of the preservation value
const (
	TransactionFee   int64 = 200
	ConservationFund int64 = 500
)

// Quote is the price of adopting a crop. Amount is the preservation value that
// reaches the ledger and rewards; Total adds the fees and is what the visitor pays.
type Quote struct {
	Amount           int64  `json:"amount"`
	AmountText       string `json:"amount_text"`
	TransactionFee   int64  `json:"transaction_fee"`
	ConservationFund int64  `json:"conservation_fund"`
	Total            int64  `json:"total"`
	TotalText        string `json:"total_text"`
	ETH              string `json:"eth"`
}

// NewQuote prices an amount in pesos; ETH is quoted on the total
func NewQuote(amount int64) Quote {
	total := amount + TransactionFee + ConservationFund
	return Quote{
		Amount:           amount,
		AmountText:       FormatPeso(amount),
		TransactionFee:   TransactionFee,
		ConservationFund: ConservationFund,
		Total:            total,
		TotalText:        FormatPeso(total),
		ETH:              PesoToETH(total),
	}
}

// CheckoutSession tracks one visitor's progress through adopting one crop
type CheckoutSession struct {
	ID             uuid.UUID      `json:"id"`
	UserID         string         `json:"user_id"`
	CropID         int            `json:"crop_id"`
	CropName       string         `json:"crop_name"`
	Quote          Quote          `json:"quote"`
	Step           CheckoutStep   `json:"step"`
	PaymentMethod  PaymentMethod  `json:"payment_method,omitempty"`
	WalletProvider string         `json:"wallet_provider,omitempty"`
	WalletAddress  string         `json:"wallet_address,omitempty"`
	TxHash         string         `json:"tx_hash,omitempty"`
	Rewards        *RewardSummary `json:"rewards,omitempty"`
	FailureReason  string         `json:"failure_reason,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
