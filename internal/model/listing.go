package model

import "fmt"

// BalanceKind discriminates the two row shapes of a single-period listing.
type BalanceKind int

const (
	BalanceAccount BalanceKind = iota
	BalanceTotal
)

// Balance is one row of a single-period listing: either an account line or
// a total amount.
type Balance struct {
	Kind BalanceKind

	// Account rows.
	Name     string
	FullName string
	Depth    int
	Amounts  []Commodity

	// Total rows.
	Total Commodity
}

// AccountBalance builds an account row.
func AccountBalance(name, fullName string, depth int, amounts []Commodity) Balance {
	return Balance{Kind: BalanceAccount, Name: name, FullName: fullName, Depth: depth, Amounts: amounts}
}

// TotalBalance builds a total row.
func TotalBalance(total Commodity) Balance {
	return Balance{Kind: BalanceTotal, Total: total}
}

// SinglePeriodListing is a one-period balance report used for the monthly
// expense breakdown. Account rows come first, total rows last.
type SinglePeriodListing struct {
	Rows []Balance
}

// ExpenseShare is an account's fraction of the listing total.
type ExpenseShare struct {
	Label    string
	Amount   float64
	Fraction float64
}

// Validate requires a non-empty listing whose final row is a total.
func (l SinglePeriodListing) Validate() error {
	if len(l.Rows) == 0 {
		return fmt.Errorf("%w: last row must be a total (listing is empty)", ErrStructure)
	}
	if l.Rows[len(l.Rows)-1].Kind != BalanceTotal {
		return fmt.Errorf("%w: last row must be a total", ErrStructure)
	}
	return nil
}

func (l SinglePeriodListing) totalRows() ([]Balance, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	start := len(l.Rows)
	for start > 0 && l.Rows[start-1].Kind == BalanceTotal {
		start--
	}
	return l.Rows[start:], nil
}

// Totals returns the values of the trailing total rows, in order.
func (l SinglePeriodListing) Totals() ([]NormalizedValue, error) {
	rows, err := l.totalRows()
	if err != nil {
		return nil, err
	}
	totals := make([]NormalizedValue, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, NormalizedValue{
			Amount:    row.Total.Quantity.Float,
			Commodity: row.Total.Code,
		})
	}
	return totals, nil
}

// ShareTotal returns the first trailing total row, the one ExpenseShares
// divides by.
func (l SinglePeriodListing) ShareTotal() (Commodity, error) {
	rows, err := l.totalRows()
	if err != nil {
		return Commodity{}, err
	}
	return rows[0].Total, nil
}

// Accounts returns the account rows in listing order.
func (l SinglePeriodListing) Accounts() []Balance {
	var out []Balance
	for _, row := range l.Rows {
		if row.Kind == BalanceAccount {
			out = append(out, row)
		}
	}
	return out
}

// ExpenseShares divides each account's amount by the first total. Accounts
// keep their listing order. A zero total gives no shares.
func (l SinglePeriodListing) ExpenseShares() ([]ExpenseShare, error) {
	totals, err := l.Totals()
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: no total to divide by", ErrStructure)
	}
	total := totals[0].Amount
	if total == 0 {
		return nil, nil
	}

	accounts := l.Accounts()
	shares := make([]ExpenseShare, 0, len(accounts))
	for _, acct := range accounts {
		var amount float64
		if len(acct.Amounts) > 0 {
			amount = acct.Amounts[0].Quantity.Float
		}
		shares = append(shares, ExpenseShare{
			Label:    acct.FullName,
			Amount:   amount,
			Fraction: amount / total,
		})
	}
	return shares, nil
}
