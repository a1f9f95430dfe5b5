// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/savrate/internal/model"
)

// FormatMoney formats a dollar figure with thousands separators and cents.
// e.g., 1234567.891 -> "$1,234,567.89", -12.5 -> "-$12.50"
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(cents/100), cents%100)
}

// FormatMoneyShort formats a dollar figure with K/M suffixes for cards.
// e.g., 1234 -> "$1.2K", 2500000 -> "$2.5M"
func FormatMoneyShort(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return FormatMoney(v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10), ",", []int{3})
}

// groupDigits inserts sep into an unsigned digit string. sizes are read
// right to left; the last size repeats.
func groupDigits(digits, sep string, sizes []int) string {
	if sep == "" || len(sizes) == 0 {
		return digits
	}
	var groups []string
	i := len(digits)
	for k := 0; i > 0; k++ {
		size := sizes[len(sizes)-1]
		if k < len(sizes) {
			size = sizes[k]
		}
		if size <= 0 || size >= i {
			groups = append(groups, digits[:i])
			break
		}
		groups = append(groups, digits[i-size:i])
		i -= size
	}
	for l, r := 0, len(groups)-1; l < r; l, r = l+1, r-1 {
		groups[l], groups[r] = groups[r], groups[l]
	}
	return strings.Join(groups, sep)
}

// FormatCommodity renders an amount the way hledger styled it: symbol side,
// spacing, decimal mark, digit groups and precision.
func FormatCommodity(c model.Commodity) string {
	d := c.Quantity.Decimal()
	fromFloat := c.Quantity.Mantissa == 0 && c.Quantity.Float != 0
	if fromFloat {
		d = decimal.NewFromFloat(c.Quantity.Float)
	}

	// Natural precision shows the quantity's own decimal places.
	st := c.Style
	var text string
	switch {
	case st.Precision >= 0:
		text = d.Abs().StringFixed(int32(st.Precision))
	case fromFloat:
		text = d.Abs().String()
	default:
		text = d.Abs().StringFixed(c.Quantity.Places)
	}

	intPart, frac, hasFrac := strings.Cut(text, ".")
	if st.DigitGroups != nil {
		intPart = groupDigits(intPart, st.DigitGroups.Separator, st.DigitGroups.Sizes)
	}
	point := st.DecimalPoint
	if point == "" {
		point = "."
	}
	num := intPart
	if hasFrac {
		num += point + frac
	}
	if d.IsNegative() {
		num = "-" + num
	}

	if c.Code == "" {
		return num
	}
	space := ""
	if st.Spaced {
		space = " "
	}
	if st.Side == model.SideRight {
		return num + space + c.Code
	}
	return c.Code + space + num
}

// FormatPercent formats a value that is already a percentage.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatShare formats a 0-1 fraction as a percentage string.
func FormatShare(f float64) string {
	return FormatPercent(f * 100)
}

// FormatSpan renders a date span compactly: "2024-01" for month starts,
// otherwise "start..end".
func FormatSpan(s model.DateSpan) string {
	if s.End == "" {
		return s.Start
	}
	if len(s.Start) == 10 && strings.HasSuffix(s.Start, "-01") {
		return s.Start[:7]
	}
	return s.String()
}
