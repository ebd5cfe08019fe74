package utils

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Indian numbering units
const (
	thousand = 1e3
	lakh     = 1e5
	crore    = 1e7
	arab     = 1e9
)

var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatCurrency abbreviates an amount using Indian units:
//
//	500         -> "500"
//	50,000      -> "50.00 thousand"
//	50,00,000   -> "50.00 lakh"
//	50,00,00,000 -> "50.00 crore"
func FormatCurrency(amount float64) string {
	switch {
	case amount <= 999:
		return strconv.FormatFloat(amount, 'f', -1, 64)
	case amount <= 99999:
		return fmt.Sprintf("%.2f thousand", amount/thousand)
	case amount <= 9999999:
		return fmt.Sprintf("%.2f lakh", amount/lakh)
	case amount <= 999999999:
		return fmt.Sprintf("%.2f crore", amount/crore)
	default:
		return fmt.Sprintf("%.2f arab", amount/arab)
	}
}

// FormatPercent renders a percentage with two decimals, e.g. "55.00%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatIndianNumber rounds to whole rupees and groups digits the Indian way (12,34,567).
func FormatIndianNumber(amount float64) string {
	return indianPrinter.Sprint(number.Decimal(math.Round(amount), number.MaxFractionDigits(0)))
}

// FormatRupees is FormatIndianNumber with the rupee sign.
func FormatRupees(amount float64) string {
	return "₹" + FormatIndianNumber(amount)
}
