package domain

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PesosPerETH is the fixed display conversion rate used for crypto checkout quotes
const PesosPerETH = 1_500_000

var pesoPrinter = message.NewPrinter(language.English)

// FormatPeso renders an amount like ₱12,500
func FormatPeso(amount int64) string {
	return pesoPrinter.Sprintf("₱%d", amount)
}

// PesoToETH converts pesos to an ETH amount with six decimals
func PesoToETH(amount int64) string {
	return strconv.FormatFloat(float64(amount)/PesosPerETH, 'f', 6, 64)
}
