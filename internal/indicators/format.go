package indicators

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const infinity = "∞"

// FormatRatio renders a ratio with two decimals.
func FormatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return infinity
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatPercent renders a fraction as a percentage with two decimals.
func FormatPercent(v float64) string {
	if math.IsInf(v, 1) {
		return infinity + "%"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatCOP renders an amount in pesos with thousands separators.
func FormatCOP(v float64) string {
	if math.IsInf(v, 1) {
		return "$" + infinity + " COP"
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("$%.0f COP", v)
}

// FormatDays renders a day count with one decimal.
func FormatDays(v float64) string {
	if math.IsInf(v, 1) {
		return infinity + " días"
	}
	return fmt.Sprintf("%.1f días", v)
}
