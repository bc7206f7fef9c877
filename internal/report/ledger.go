// Package report renders the transparency ledger as an XLSX workbook.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// Sheet names
const (
	SheetTransactions = "Transactions"
	SheetAllocation   = "Allocation"
	defaultSheet      = "Sheet1"
)

// ContentType is the MIME type of the workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var transactionHeader = []interface{}{
	"Tx Hash", "Crop", "Amount (PHP)", "Payment", "Wallet", "Timestamp",
	"Block", "Gas Used", "Confirmations", "Status", "Explorer URL",
}

var allocationHeader = []interface{}{"Category", "Percentage", "Amount (PHP)"}

// BreakdownFunc splits one transaction's amount across beneficiaries
type BreakdownFunc func(hash string, amount int64) *domain.DonationBreakdown

// WriteLedger writes one row per transaction plus an allocation sheet that
// totals every transaction's breakdown.
func WriteLedger(w io.Writer, txs []domain.TransactionView, breakdown BreakdownFunc) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetTransactions); err != nil {
		return err
	}
	if err := writeTransactions(f, txs); err != nil {
		return fmt.Errorf("failed to write transactions sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetAllocation); err != nil {
		return err
	}
	if err := writeAllocation(f, txs, breakdown); err != nil {
		return fmt.Errorf("failed to write allocation sheet: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
	})
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeTransactions(f *excelize.File, txs []domain.TransactionView) error {
	if err := writeHeader(f, SheetTransactions, transactionHeader); err != nil {
		return err
	}
	for i, tx := range txs {
		row := []interface{}{
			tx.Hash, tx.CropName, tx.Amount, string(tx.PaymentMethod), tx.WalletAddress,
			tx.Timestamp.Format("2006-01-02 15:04:05"), tx.BlockNumber, tx.GasUsed,
			tx.Confirmations, string(tx.Status), tx.ExplorerURL,
		}
		if err := writeRow(f, SheetTransactions, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetTransactions, "A", "A", 70)
}

func writeAllocation(f *excelize.File, txs []domain.TransactionView, breakdown BreakdownFunc) error {
	if err := writeHeader(f, SheetAllocation, allocationHeader); err != nil {
		return err
	}

	var order []string
	totals := make(map[string]int64)
	percents := make(map[string]int)
	for _, tx := range txs {
		for _, share := range breakdown(tx.Hash, tx.Amount).Shares {
			if _, seen := totals[share.Category]; !seen {
				order = append(order, share.Category)
				percents[share.Category] = share.Percentage
			}
			totals[share.Category] += share.Amount
		}
	}

	for i, category := range order {
		if err := writeRow(f, SheetAllocation, i+2, []interface{}{category, percents[category], totals[category]}); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetAllocation, "A", "A", 24)
}
