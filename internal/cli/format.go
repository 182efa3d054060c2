// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount as dollars and cents with separators.
// e.g., 41.472 -> "$41.47", 3956.2718 -> "$3,956.27"
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$—"
	}
	cents := decimal.NewFromFloat(amount).Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return bigDollars(cents.Shift(-2), 2)
	}
	return money.New(cents.IntPart(), money.USD).Display()
}

// FormatMoneyCompact drops the cents for large amounts, for chart axes
// and narrow cells. e.g., 3956.27 -> "$3,956", 41.47 -> "$41.47"
func FormatMoneyCompact(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || math.Abs(amount) < 1000 {
		return FormatMoney(amount)
	}
	dollars := decimal.NewFromFloat(amount).Round(0)
	if !dollars.BigInt().IsInt64() {
		return bigDollars(dollars, 0)
	}
	return "$" + FormatNumber(dollars.IntPart())
}

// bigDollars formats amounts too large for go-money's int64 cents.
func bigDollars(d decimal.Decimal, places int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(places), ".")
	s := sign + "$" + groupDigits(whole)
	if frac != "" {
		s += "." + frac
	}
	return s
}

// FormatPercent formats a value already expressed in percent.
// e.g., 1.0483 -> "1.05%"
func FormatPercent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "—"
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatSignedPercent formats a percent with an explicit sign.
func FormatSignedPercent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "—"
	}
	return fmt.Sprintf("%+.2f%%", pct)
}

// FormatRate formats a growth fraction as a percent. e.g., 0.2 -> "20%"
func FormatRate(rate float64) string {
	s := strconv.FormatFloat(rate*100, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "%"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	return groupDigits(strconv.FormatInt(n, 10))
}

// groupDigits inserts thousands separators into a string of digits.
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatStep formats a 0-based index as the 1-based label users see.
func FormatStep(index int) string {
	return "#" + strconv.Itoa(index+1)
}

// FormatEstimate renders an estimated step count, or "N/A".
func FormatEstimate(steps int, ok bool) string {
	if !ok {
		return "N/A"
	}
	return strconv.Itoa(steps)
}

// ParseStep parses a 1-based step argument into a 0-based index.
func ParseStep(arg string, total int) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil {
		return 0, fmt.Errorf("step %q is not a number", arg)
	}
	if n < 1 || n > total {
		return 0, fmt.Errorf("step %d out of range (1-%d)", n, total)
	}
	return n - 1, nil
}

// Truncate shortens s to limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
