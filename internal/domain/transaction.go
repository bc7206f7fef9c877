package domain

import (
	"fmt"
	"time"
)

// Confirmation thresholds for the simulated chain
const (
	ConfirmationsConfirming = 6
	ConfirmationsFinal      = 12
	SimulatedGasUsed        = 21000
	BlockNumberBase         = 18_000_000
	BlockNumberSpread       = 1_000_000
)

// External link bases
const (
	ExplorerTxURL    = "https://etherscan.io/tx/"
	MuseumTxURL      = "https://binhiheritage.museum/tx/"
	MuseumJourneyURL = "https://binhiheritage.museum/journey/"
)

// TxStatus is derived from the confirmation count
type TxStatus string

const (
	TxPending    TxStatus = "Pending"
	TxConfirming TxStatus = "Confirming"
	TxConfirmed  TxStatus = "Confirmed"
)

// StatusForConfirmations maps a confirmation count to a status
func StatusForConfirmations(n int) TxStatus {
	switch {
	case n >= ConfirmationsFinal:
		return TxConfirmed
	case n >= ConfirmationsConfirming:
		return TxConfirming
	default:
		return TxPending
	}
}

// PaymentMethod chosen during checkout
type PaymentMethod string

const (
	PaymentCrypto PaymentMethod = "crypto"
	PaymentCard   PaymentMethod = "card"
	PaymentGCash  PaymentMethod = "gcash"
)

// Valid reports whether m is a supported method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCrypto, PaymentCard, PaymentGCash:
		return true
	}
	return false
}

// Transaction is a simulated on-chain adoption record
type Transaction struct {
	Hash          string        `json:"tx_hash"`
	UserID        string        `json:"user_id"`
	CropID        int           `json:"crop_id"`
	CropName      string        `json:"crop_name"`
	Amount        int64         `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	WalletAddress string        `json:"wallet_address"`
	Timestamp     time.Time     `json:"timestamp"`
	BlockNumber   int64         `json:"block_number"`
	GasUsed       int64         `json:"gas_used"`
	Confirmations int           `json:"confirmations"`
}

// Status of the transaction
func (t Transaction) Status() TxStatus {
	return StatusForConfirmations(t.Confirmations)
}

// ExplorerURL links the hash on the public block explorer
func (t Transaction) ExplorerURL() string {
	return ExplorerTxURL + t.Hash
}

// ShareURL is the museum's public receipt page
func (t Transaction) ShareURL() string {
	return MuseumTxURL + t.Hash
}

// ShortHash is the first ten characters followed by an ellipsis
func (t Transaction) ShortHash() string {
	if len(t.Hash) <= 10 {
		return t.Hash
	}
	return t.Hash[:10] + "..."
}

// ShareText is the copyable receipt blurb
func (t Transaction) ShareText() string {
	return fmt.Sprintf("Just adopted %s at Binhi Heritage Museum! Supporting Filipino agricultural heritage preservation. Transaction: %s",
		t.CropName, t.ShortHash())
}

// TransactionView adds derived fields for API consumers
type TransactionView struct {
	Transaction
	Status      TxStatus `json:"status"`
	AmountText  string   `json:"amount_text"`
	ExplorerURL string   `json:"explorer_url"`
	ShareURL    string   `json:"share_url"`
	ShareText   string   `json:"share_text"`
}

// View builds the derived representation
func (t Transaction) View() TransactionView {
	return TransactionView{
		Transaction: t,
		Status:      t.Status(),
		AmountText:  FormatPeso(t.Amount),
		ExplorerURL: t.ExplorerURL(),
		ShareURL:    t.ShareURL(),
		ShareText:   t.ShareText(),
	}
}

// DonationShare is one slice of the donation breakdown
type DonationShare struct {
	Category   string `json:"category"`
	Percentage int    `json:"percentage"`
	Amount     int64  `json:"amount"`
	AmountText string `json:"amount_text"`
}

// ImpactSummary describes the on-the-ground effect of a donation
type ImpactSummary struct {
	FarmersSupported string `json:"farmers_supported"`
	SeedBank         int    `json:"seed_bank_percent"`
	Research         int    `json:"research_percent"`
	Community        int    `json:"community_percent"`
}

// DonationBreakdown splits a transaction across beneficiaries
type DonationBreakdown struct {
	TxHash string          `json:"tx_hash"`
	Total  int64           `json:"total"`
	Shares []DonationShare `json:"shares"`
	Impact ImpactSummary   `json:"impact"`
}
