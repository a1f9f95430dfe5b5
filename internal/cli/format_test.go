package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/savrate/internal/model"
	"github.com/theirongolddev/savrate/internal/pipeline"
)

func init() {
	// Plain output so assertions can match text.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{1234567.891, "$1,234,567.89"},
		{-2500, "-$2,500.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-999); got != "-999" {
		t.Errorf("FormatNumber = %q", got)
	}
}

func TestGroupDigits_IndianStyle(t *testing.T) {
	// 3 then repeating 2: 12,34,567
	if got := groupDigits("1234567", ",", []int{3, 2}); got != "12,34,567" {
		t.Errorf("groupDigits = %q, want 12,34,567", got)
	}
}

func TestFormatCommodity(t *testing.T) {
	left := model.Commodity{
		Code:     "$",
		Quantity: model.Quantity{Mantissa: 123456, Places: 2, Float: 1234.56},
		Style: model.Style{
			Side:         model.SideLeft,
			DecimalPoint: ".",
			DigitGroups:  &model.DigitGroups{Separator: ",", Sizes: []int{3}},
			Precision:    2,
		},
	}
	if got := FormatCommodity(left); got != "$1,234.56" {
		t.Errorf("left = %q, want $1,234.56", got)
	}

	right := model.Commodity{
		Code:     "EUR",
		Quantity: model.Quantity{Mantissa: -5, Places: 1, Float: -0.5},
		Style: model.Style{
			Side:         model.SideRight,
			Spaced:       true,
			DecimalPoint: ",",
			Precision:    2,
		},
	}
	if got := FormatCommodity(right); got != "-0,50 EUR" {
		t.Errorf("right = %q, want -0,50 EUR", got)
	}
}

func TestFormatCommodityNaturalPrecision(t *testing.T) {
	var c model.Commodity
	raw := `{"acommodity":"USD","aquantity":{"decimalMantissa":1650,"decimalPlaces":2,"floatingPoint":16.5},
		"astyle":{"ascommodityside":"R","ascommodityspaced":true,"asdecimalpoint":".","asdigitgroups":null,"asprecision":null}}`
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Style.Precision != model.NaturalPrecision {
		t.Fatalf("precision = %d, want natural", c.Style.Precision)
	}
	if got := FormatCommodity(c); got != "16.50 USD" {
		t.Errorf("got %q, want 16.50 USD", got)
	}
}

func TestFormatSpan(t *testing.T) {
	if got := FormatSpan(model.DateSpan{Start: "2024-03-01", End: "2024-04-01"}); got != "2024-03" {
		t.Errorf("month span = %q", got)
	}
	if got := FormatSpan(model.DateSpan{Start: "2021-11"}); got != "2021-11" {
		t.Errorf("csv span = %q", got)
	}
}

func TestSlices_RoundRobin(t *testing.T) {
	shares := make([]model.ExpenseShare, 7)
	for i := range shares {
		shares[i] = model.ExpenseShare{Label: string(rune('A' + i)), Fraction: 1.0 / 7}
	}
	slices := Slices(shares)
	if len(slices) != 7 {
		t.Fatalf("len = %d, want 7", len(slices))
	}
	for i, s := range slices {
		if s.Fill != Fills[i%5] || s.Color != SliceColors[i%5] {
			t.Errorf("slice %d: fill %q color %v", i, s.Fill, s.Color)
		}
		if s.Label != shares[i].Label {
			t.Errorf("slice %d label = %q, want %q", i, s.Label, shares[i].Label)
		}
	}
}

func TestRenderPie_LegendInOrder(t *testing.T) {
	out := RenderPie(Slices([]model.ExpenseShare{
		{Label: "Expenses:Rent", Fraction: 0.7},
		{Label: "Expenses:Food", Fraction: 0.3},
	}), 4, 2)

	rent := strings.Index(out, "Expenses:Rent")
	food := strings.Index(out, "Expenses:Food")
	if rent < 0 || food < 0 || rent > food {
		t.Fatalf("legend order wrong:\n%s", out)
	}
	if !strings.Contains(out, "70.0%") {
		t.Errorf("missing share in legend:\n%s", out)
	}
	if !strings.ContainsRune(out, Fills[0]) || !strings.ContainsRune(out, Fills[1]) {
		t.Errorf("missing slice fills:\n%s", out)
	}
}

func TestRenderStepChart(t *testing.T) {
	out := RenderStepChart([]pipeline.RatePoint{{Period: 0, Percent: 50}, {Period: 1, Percent: 0}, {Period: 2, Percent: -20}}, 40, 8)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 9 { // 8 plot rows + x axis
		t.Fatalf("got %d lines, want 9:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "50.0%") {
		t.Errorf("top label missing: %q", lines[0])
	}
	if !strings.Contains(lines[7], "-20.0%") {
		t.Errorf("bottom label missing: %q", lines[7])
	}
	if RenderStepChart(nil, 40, 8) != "" {
		t.Error("empty series should render nothing")
	}
}

func TestRenderRate_Thresholds(t *testing.T) {
	for _, pct := range []float64{-10, 0, 25, 50, 75} {
		if got := RenderRate(pct); !strings.Contains(got, FormatPercent(pct)) {
			t.Errorf("RenderRate(%v) = %q", pct, got)
		}
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Metric", "Value"},
		Rows:    [][]string{{"FIRE", "$1.00"}, {"---"}, {"AAW", "$100.00"}},
	})
	if !strings.Contains(out, "│ FIRE   │   $1.00 │") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if strings.Count(out, "├") != 2 {
		t.Errorf("want header and body separators:\n%s", out)
	}
}
