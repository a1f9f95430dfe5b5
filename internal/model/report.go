package model

import (
	"encoding/json"
	"fmt"
)

// DefaultCommodity tags zero values synthesized for empty period slots.
const DefaultCommodity = "USD"

// DateSpan identifies one reporting period. Dates are kept as opaque strings.
type DateSpan struct {
	Start string
	End   string
}

// UnmarshalJSON decodes a [start, end] pair. Each side may be a plain
// string, a {"tag":..,"contents":"2024-01-01"} object, or null.
func (d *DateSpan) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("date span: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("date span: want 2 dates, got %d", len(pair))
	}
	var err error
	if d.Start, err = decodeDate(pair[0]); err != nil {
		return err
	}
	d.End, err = decodeDate(pair[1])
	return err
}

// String renders the span as "start..end".
func (d DateSpan) String() string {
	if d.Start == "" && d.End == "" {
		return ""
	}
	return d.Start + ".." + d.End
}

func decodeDate(raw json.RawMessage) (string, error) {
	var s *string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == nil {
			return "", nil
		}
		return *s, nil
	}
	var tagged struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return "", fmt.Errorf("date span: unrecognized date %s", raw)
	}
	return tagged.Contents, nil
}

// PeriodicRow is one account's balance across every period of a report.
type PeriodicRow struct {
	Name    string        `json:"prrName"`
	Depth   int           `json:"-"`
	Amounts [][]Commodity `json:"prrAmounts"`
	Total   []Commodity   `json:"prrTotal"`
	Average []Commodity   `json:"prrAverage"`
}

// AggregateRow is the report-wide totals row. Names lists the aggregated
// accounts and is usually empty.
type AggregateRow struct {
	Names   []string      `json:"prrName"`
	Amounts [][]Commodity `json:"prrAmounts"`
	Total   []Commodity   `json:"prrTotal"`
	Average []Commodity   `json:"prrAverage"`
}

// PeriodReport is a multi-period balance report: one amount slot per date
// span for each row and for the totals row.
type PeriodReport struct {
	Dates  []DateSpan    `json:"prDates"`
	Rows   []PeriodicRow `json:"prRows"`
	Totals AggregateRow  `json:"prTotals"`
}

// NormalizedValue is a flattened amount: the only shape the metrics use.
type NormalizedValue struct {
	Amount    float64
	Commodity string
	Span      DateSpan
}

// Validate checks that every date span has a matching totals slot.
func (r PeriodReport) Validate() error {
	if len(r.Dates) != len(r.Totals.Amounts) {
		return fmt.Errorf("%w: %d date spans but %d total amount slots",
			ErrStructure, len(r.Dates), len(r.Totals.Amounts))
	}
	return nil
}

// PeriodCount returns the number of periods in the report.
func (r PeriodReport) PeriodCount() int {
	return len(r.Dates)
}

// ValueAtPeriod returns the totals row amount for period i. An empty slot is
// a zero balance and yields a zero value in DefaultCommodity.
func (r PeriodReport) ValueAtPeriod(i int) (NormalizedValue, error) {
	if i < 0 || i >= len(r.Dates) {
		return NormalizedValue{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndex, i, len(r.Dates))
	}
	span := r.Dates[i]
	if i >= len(r.Totals.Amounts) || len(r.Totals.Amounts[i]) == 0 {
		return NormalizedValue{Commodity: DefaultCommodity, Span: span}, nil
	}
	c := r.Totals.Amounts[i][0]
	return NormalizedValue{
		Amount:    c.Quantity.Float,
		Commodity: c.Code,
		Span:      span,
	}, nil
}
