// Package source decodes hledger balance report output into the report model.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/theirongolddev/savrate/internal/model"
)

// ParseReport decodes a multi-period hledger JSON balance report
// (`hledger bal -M -O json`).
func ParseReport(raw []byte) (model.PeriodReport, error) {
	var r model.PeriodReport
	if len(bytes.TrimSpace(raw)) == 0 {
		return r, fmt.Errorf("%w: empty period report", model.ErrParse)
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("%w: period report: %v", model.ErrParse, err)
	}
	for i := range r.Rows {
		r.Rows[i].Depth = accountDepth(r.Rows[i].Name)
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// ParseListing decodes a single-period hledger JSON balance listing
// (`hledger bal -O json` without a report interval).
//
// Two layouts are accepted: a flat array of rows, or hledger's native
// [[account rows...], [total amounts...]] pair. Each row is tried as an
// account tuple, then as a bare total amount. Rows matching neither are
// dropped and counted; a row matching both is a parse error.
func ParseListing(raw []byte) (model.SinglePeriodListing, int, error) {
	var listing model.SinglePeriodListing

	var top []json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return listing, 0, fmt.Errorf("%w: balance listing: %v", model.ErrParse, err)
	}

	elems := top
	if nested, ok := unnest(top); ok {
		elems = nested
	}

	dropped := 0
	for i, elem := range elems {
		acct, isAcct := decodeAccount(elem)
		total, isTotal := decodeTotal(elem)
		switch {
		case isAcct && isTotal:
			return listing, dropped, fmt.Errorf("%w: balance listing row %d matches both account and total shapes", model.ErrParse, i)
		case isAcct:
			listing.Rows = append(listing.Rows, acct)
		case isTotal:
			listing.Rows = append(listing.Rows, model.TotalBalance(total))
		default:
			dropped++
		}
	}

	if err := listing.Validate(); err != nil {
		return listing, dropped, err
	}
	return listing, dropped, nil
}

// unnest flattens hledger's [[accounts...], [totals...]] layout. It only
// applies when the outer array has exactly two array elements and the second
// holds objects (amounts), which a flat row list never does.
func unnest(top []json.RawMessage) ([]json.RawMessage, bool) {
	if len(top) != 2 {
		return nil, false
	}
	var accounts, totals []json.RawMessage
	if json.Unmarshal(top[0], &accounts) != nil || json.Unmarshal(top[1], &totals) != nil {
		return nil, false
	}
	for _, t := range totals {
		if !isObject(t) {
			return nil, false
		}
	}
	for _, a := range accounts {
		if isObject(a) {
			return nil, false
		}
	}
	return append(accounts, totals...), true
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// decodeAccount matches the [name, fullName, depth, [amounts...]] tuple.
func decodeAccount(raw json.RawMessage) (model.Balance, bool) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) != 4 {
		return model.Balance{}, false
	}
	var (
		name, fullName string
		depth          int
		amounts        []model.Commodity
	)
	if json.Unmarshal(tuple[0], &name) != nil ||
		json.Unmarshal(tuple[1], &fullName) != nil ||
		json.Unmarshal(tuple[2], &depth) != nil ||
		json.Unmarshal(tuple[3], &amounts) != nil {
		return model.Balance{}, false
	}
	return model.AccountBalance(name, fullName, depth, amounts), true
}

// decodeTotal matches a bare amount object. The commodity and quantity keys
// must be present so that unrelated objects are not read as zero totals.
func decodeTotal(raw json.RawMessage) (model.Commodity, bool) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return model.Commodity{}, false
	}
	if _, ok := keys["acommodity"]; !ok {
		return model.Commodity{}, false
	}
	if _, ok := keys["aquantity"]; !ok {
		return model.Commodity{}, false
	}
	var c model.Commodity
	if err := json.Unmarshal(raw, &c); err != nil {
		return model.Commodity{}, false
	}
	return c, true
}

func accountDepth(name string) int {
	if name == "" {
		return 0
	}
	return strings.Count(name, ":") + 1
}
