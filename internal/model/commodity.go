// Package model defines the normalized hledger report types consumed by savrate.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Side is where the commodity symbol is printed relative to the number.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns the hledger encoding of the side ("L" or "R").
func (s Side) String() string {
	if s == SideRight {
		return "R"
	}
	return "L"
}

// UnmarshalJSON accepts only "L" and "R".
func (s *Side) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("commodity side: %w", err)
	}
	switch raw {
	case "L":
		*s = SideLeft
	case "R":
		*s = SideRight
	default:
		return fmt.Errorf("commodity side: unknown variant %q", raw)
	}
	return nil
}

// MarshalJSON writes the side back in hledger form.
func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DigitGroups is the digit grouping rule: a separator and group sizes,
// right to left (e.g. "," with [3]).
type DigitGroups struct {
	Separator string
	Sizes     []int
}

// UnmarshalJSON decodes the [separator, [sizes...]] pair.
func (g *DigitGroups) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("digit groups: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("digit groups: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &g.Separator); err != nil {
		return fmt.Errorf("digit groups separator: %w", err)
	}
	if err := json.Unmarshal(pair[1], &g.Sizes); err != nil {
		return fmt.Errorf("digit groups sizes: %w", err)
	}
	return nil
}

// NaturalPrecision means "show as many decimals as the quantity has".
const NaturalPrecision = -1

// Precision is the display precision of an amount style.
type Precision int

// UnmarshalJSON accepts a bare integer (older hledger) or a tagged
// {"tag":"Precision","contents":n} object. Anything else, null included, is
// natural precision.
func (p *Precision) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = NaturalPrecision
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Precision(n)
		return nil
	}
	var tagged struct {
		Contents *int `json:"contents"`
	}
	if err := json.Unmarshal(data, &tagged); err == nil && tagged.Contents != nil {
		*p = Precision(*tagged.Contents)
		return nil
	}
	*p = NaturalPrecision
	return nil
}

// Style holds the display formatting metadata hledger attaches to an amount.
type Style struct {
	Side         Side         `json:"ascommodityside"`
	Spaced       bool         `json:"ascommodityspaced"`
	DecimalPoint string       `json:"asdecimalpoint"`
	DigitGroups  *DigitGroups `json:"asdigitgroups"`
	Precision    Precision    `json:"asprecision"`
}

// Quantity carries the same number three ways. Only Float is used for
// metrics; Mantissa and Places are kept for exact display.
type Quantity struct {
	Mantissa int64   `json:"decimalMantissa"`
	Places   int32   `json:"decimalPlaces"`
	Float    float64 `json:"floatingPoint"`
}

// Decimal rebuilds the exact quantity from mantissa and places.
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.New(q.Mantissa, -q.Places)
}

// Price is an optional unit or total cost attached to an amount.
type Price struct {
	Tag      string    `json:"tag"`
	Contents Commodity `json:"contents"`
}

// Commodity is one currency-denominated quantity plus its style.
type Commodity struct {
	Code     string   `json:"acommodity"`
	Price    *Price   `json:"aprice"`
	Quantity Quantity `json:"aquantity"`
	Style    Style    `json:"astyle"`
}
