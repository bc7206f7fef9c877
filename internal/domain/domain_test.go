package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPeso(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₱0"},
		{500, "₱500"},
		{12500, "₱12,500"},
		{2500000, "₱2,500,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPeso(tt.amount))
	}
}

func TestPesoToETH(t *testing.T) {
	assert.Equal(t, "0.008333", PesoToETH(12500))
	assert.Equal(t, "1.000000", PesoToETH(1_500_000))
	assert.Equal(t, "0.000000", PesoToETH(0))
}

func TestNewQuote(t *testing.T) {
	q := NewQuote(12500)

	assert.Equal(t, int64(12500), q.Amount)
	assert.Equal(t, "₱12,500", q.AmountText)
	assert.Equal(t, int64(200), q.TransactionFee)
	assert.Equal(t, int64(500), q.ConservationFund)
	assert.Equal(t, int64(13200), q.Total)
	assert.Equal(t, "₱13,200", q.TotalText)
	assert.Equal(t, "0.008800", q.ETH)
}

func TestStatusForConfirmations(t *testing.T) {
	tests := []struct {
		n    int
		want TxStatus
	}{
		{1, TxPending},
		{5, TxPending},
		{6, TxConfirming},
		{11, TxConfirming},
		{12, TxConfirmed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForConfirmations(tt.n), "confirmations=%d", tt.n)
	}
}

func TestTransactionLinks(t *testing.T) {
	tx := Transaction{Hash: "0xabcdef0123456789", CropName: "Tinawon Rice", Amount: 12500}

	view := tx.View()
	assert.Equal(t, "https://etherscan.io/tx/0xabcdef0123456789", view.ExplorerURL)
	assert.Equal(t, "https://binhiheritage.museum/tx/0xabcdef0123456789", view.ShareURL)
	assert.Equal(t, "₱12,500", view.AmountText)
	assert.Contains(t, view.ShareText, "Just adopted Tinawon Rice")
	assert.Contains(t, view.ShareText, "Transaction: 0xabcdef01...")
}

func TestParseRarity(t *testing.T) {
	r, ok := ParseRarity("legendary")
	assert.True(t, ok)
	assert.Equal(t, RarityAlamat, r)

	r, ok = ParseRarity("bihira")
	assert.True(t, ok)
	assert.Equal(t, RarityBihira, r)

	_, ok = ParseRarity("mythic")
	assert.False(t, ok)
}

func TestProfileCloneIsDeep(t *testing.T) {
	p := &Profile{
		UserID:        "u1",
		Stats:         UserStats{Badges: []string{"A"}},
		QuestProgress: map[string]int{"ifugao": 1},
	}

	c := p.Clone()
	c.Stats.Badges[0] = "B"
	c.QuestProgress["ifugao"] = 3
	c.VisitedSections = append(c.VisitedSections, SectionGaleri)

	assert.Equal(t, "A", p.Stats.Badges[0])
	assert.Equal(t, 1, p.QuestProgress["ifugao"])
	assert.Empty(t, p.VisitedSections)
	assert.Equal(t, 3, c.QuestionsAnswered())
}

func TestCheckoutStepTerminal(t *testing.T) {
	assert.False(t, StepDetails.IsTerminal())
	assert.False(t, StepProcessing.IsTerminal())
	assert.True(t, StepSuccess.IsTerminal())
	assert.True(t, StepCancelled.IsTerminal())
	assert.True(t, StepFailed.IsTerminal())
}
