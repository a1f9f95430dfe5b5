package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/savrate/internal/model"
)

// NormalizeAmount reads a legacy text amount such as "1,234.56 USD":
// the commodity suffix and thousands separators are stripped and the rest
// parsed as a number.
func NormalizeAmount(s string) (float64, error) {
	d, _, err := normalizeDecimal(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func normalizeDecimal(s string) (decimal.Decimal, string, error) {
	cleaned := strings.TrimSpace(s)
	code := ""
	if i := strings.LastIndexByte(cleaned, ' '); i >= 0 {
		suffix := cleaned[i+1:]
		if isCommodityCode(suffix) {
			code = suffix
			cleaned = strings.TrimSpace(cleaned[:i])
		}
	}
	cleaned = stripSymbolPrefix(strings.ReplaceAll(cleaned, ",", ""))

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("%w: amount %q is not numeric", model.ErrParse, s)
	}
	return d, code, nil
}

// stripSymbolPrefix drops a left-side commodity symbol ("$100", "-$100").
func stripSymbolPrefix(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+'
	})
	return sign + strings.TrimSpace(s)
}

func isCommodityCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' || r == '+' {
			return false
		}
	}
	return true
}

// commodityFromText turns a legacy amount cell into a model commodity.
// Cells without a suffix are tagged with the default commodity.
func commodityFromText(cell string) (model.Commodity, error) {
	d, code, err := normalizeDecimal(cell)
	if err != nil {
		return model.Commodity{}, err
	}
	if code == "" {
		code = model.DefaultCommodity
	}
	return model.Commodity{
		Code: code,
		Quantity: model.Quantity{
			Mantissa: d.CoefficientInt64(),
			Places:   -d.Exponent(),
			Float:    d.InexactFloat64(),
		},
		Style: model.Style{
			Side:         model.SideRight,
			Spaced:       true,
			DecimalPoint: ".",
			DigitGroups:  &model.DigitGroups{Separator: ",", Sizes: []int{3}},
			Precision:    model.Precision(-d.Exponent()),
		},
	}, nil
}

func readCSV(raw []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading csv: %v", model.ErrParse, err)
	}
	return records, nil
}

// ParseLegacyReport decodes a multi-period hledger CSV balance report:
//
//	"account","2021-07","2021-08","total"
//	"Expenses:Food","10.00 USD","0","10.00 USD"
//	"total","10.00 USD","0","10.00 USD"
//
// Period columns become date spans; the final row becomes the totals row.
func ParseLegacyReport(raw []byte) (model.PeriodReport, error) {
	var r model.PeriodReport

	records, err := readCSV(raw)
	if err != nil {
		return r, err
	}
	if len(records) < 2 {
		return r, fmt.Errorf("%w: csv report needs a header and a total row", model.ErrParse)
	}

	header := records[0]
	if len(header) < 2 {
		return r, fmt.Errorf("%w: csv report header has %d columns", model.ErrParse, len(header))
	}
	// Skip the account column and, when present, the trailing total column.
	last := len(header)
	if strings.EqualFold(strings.TrimSpace(header[last-1]), "total") {
		last--
	}
	periods := header[1:last]
	for _, p := range periods {
		r.Dates = append(r.Dates, model.DateSpan{Start: strings.TrimSpace(p)})
	}

	parseRow := func(rec []string) ([][]model.Commodity, error) {
		if len(rec) < last {
			return nil, fmt.Errorf("%w: csv row %q has %d columns, want %d", model.ErrParse, rec[0], len(rec), len(header))
		}
		amounts := make([][]model.Commodity, 0, len(periods))
		for _, cell := range rec[1:last] {
			c, err := commodityFromText(cell)
			if err != nil {
				return nil, err
			}
			if c.Quantity.Float == 0 {
				amounts = append(amounts, nil)
				continue
			}
			amounts = append(amounts, []model.Commodity{c})
		}
		return amounts, nil
	}

	body := records[1:]
	for _, rec := range body[:len(body)-1] {
		amounts, err := parseRow(rec)
		if err != nil {
			return r, err
		}
		name := strings.TrimSpace(rec[0])
		r.Rows = append(r.Rows, model.PeriodicRow{
			Name:    name,
			Depth:   accountDepth(name),
			Amounts: amounts,
		})
	}

	totals, err := parseRow(body[len(body)-1])
	if err != nil {
		return r, err
	}
	r.Totals = model.AggregateRow{Amounts: totals}

	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// ParseLegacyListing decodes a single-period hledger CSV listing
// ("account","balance" rows ending with a "total" row).
func ParseLegacyListing(raw []byte) (model.SinglePeriodListing, error) {
	var listing model.SinglePeriodListing

	records, err := readCSV(raw)
	if err != nil {
		return listing, err
	}
	if len(records) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), "account") {
		records = records[1:]
	}

	for i, rec := range records {
		if len(rec) < 2 {
			return listing, fmt.Errorf("%w: csv listing row %d has %d columns", model.ErrParse, i+1, len(rec))
		}
		c, err := commodityFromText(rec[1])
		if err != nil {
			return listing, err
		}
		name := strings.TrimSpace(rec[0])
		if strings.EqualFold(name, "total") {
			listing.Rows = append(listing.Rows, model.TotalBalance(c))
			continue
		}
		listing.Rows = append(listing.Rows, model.AccountBalance(name, name, accountDepth(name), []model.Commodity{c}))
	}

	if err := listing.Validate(); err != nil {
		return listing, err
	}
	return listing, nil
}

// ParseLiabilities reads `hledger bal --format '%(total)'` output: the last
// non-empty line is the grand total. Empty output means no liabilities.
func ParseLiabilities(raw []byte) (float64, error) {
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		return NormalizeAmount(line)
	}
	return 0, nil
}
