package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/savrate/internal/hledger"
	"github.com/theirongolddev/savrate/internal/model"
)

type fakeFetcher struct {
	reports     map[string]string
	listing     string
	liabilities string
	failOn      string

	calls      []string
	invertSeen bool
}

func (f *fakeFetcher) PeriodReport(_ context.Context, query string, invert bool) ([]byte, error) {
	f.calls = append(f.calls, "period:"+query)
	if invert {
		f.invertSeen = true
	}
	if f.failOn == query {
		return nil, fmt.Errorf("%w: exit status 1", hledger.ErrFetch)
	}
	return []byte(f.reports[query]), nil
}

func (f *fakeFetcher) MonthListing(_ context.Context, query string) ([]byte, error) {
	f.calls = append(f.calls, "month:"+query)
	return []byte(f.listing), nil
}

func (f *fakeFetcher) Total(_ context.Context, query string) ([]byte, error) {
	f.calls = append(f.calls, "total:"+query)
	return []byte(f.liabilities), nil
}

func amountJSON(v float64) string {
	return fmt.Sprintf(`{"acommodity":"USD","aquantity":{"decimalMantissa":%d,"decimalPlaces":0,"floatingPoint":%g},
		"astyle":{"ascommodityside":"L","ascommodityspaced":false,"asdecimalpoint":".","asprecision":0}}`, int64(v), v)
}

func reportJSON(a, b float64) string {
	return fmt.Sprintf(`{"prDates":[["2024-01-01","2024-02-01"],["2024-02-01","2024-03-01"]],"prRows":[],
		"prTotals":{"prrName":[],"prrAmounts":[[%s],[%s]],"prrTotal":[],"prrAverage":[]}}`, amountJSON(a), amountJSON(b))
}

func newFake() *fakeFetcher {
	return &fakeFetcher{
		reports: map[string]string{
			"^Expenses": reportJSON(100, 200),
			"^Income":   reportJSON(200, 200),
		},
		listing: fmt.Sprintf(`[[["Food","Expenses:Food",2,[%s]],["Rent","Expenses:Rent",2,[%s]]],[%s]]`,
			amountJSON(30), amountJSON(70), amountJSON(100)),
		liabilities: "-1,000.00 USD\n",
	}
}

var testQueries = Queries{
	Expenses:     "^Expenses",
	Income:       "^Income",
	Liabilities:  "Liabilities",
	InvertIncome: true,
	Format:       hledger.FormatJSON,
}

func TestLoad(t *testing.T) {
	f := newFake()
	var seen []string
	result, err := Load(context.Background(), f, testQueries, func(cur, total int, stage string) {
		seen = append(seen, fmt.Sprintf("%d/%d %s", cur, total, stage))
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"total:Liabilities", "period:^Expenses", "period:^Income", "month:^Expenses"}, f.calls)
	assert.True(t, f.invertSeen)
	assert.Len(t, seen, 5)
	assert.Equal(t, "1/5 Fetching liabilities", seen[0])

	assert.Equal(t, -1000.0, result.Liabilities)
	assert.InDelta(t, 25.0, result.Series.CumulativeRate, 1e-9)
	assert.Equal(t, result.Series.AvgDailyExpense*365*25, result.Projections.FIRE)
	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, "Expenses:Food", result.Breakdown[0].Label)
	assert.InDelta(t, 0.3, result.Breakdown[0].Fraction, 1e-9)
	assert.Zero(t, result.DroppedRows)
}

func TestLoad_FetchErrorStopsLaterStages(t *testing.T) {
	f := newFake()
	f.failOn = "^Expenses"

	_, err := Load(context.Background(), f, testQueries, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, hledger.ErrFetch))
	assert.Equal(t, []string{"total:Liabilities", "period:^Expenses"}, f.calls)
}

func TestLoad_NoPeriods(t *testing.T) {
	f := newFake()
	f.reports["^Income"] = `{"prDates":[],"prRows":[],"prTotals":{"prrName":[],"prrAmounts":[],"prrTotal":[],"prrAverage":[]}}`

	_, err := Load(context.Background(), f, testQueries, nil)
	assert.ErrorIs(t, err, ErrNoPeriods)
	assert.NotContains(t, f.calls, "month:^Expenses")
}

func TestLoad_BadLiabilities(t *testing.T) {
	f := newFake()
	f.liabilities = "not a number"

	_, err := Load(context.Background(), f, testQueries, nil)
	assert.ErrorIs(t, err, model.ErrParse)
	assert.Len(t, f.calls, 1)
}

func TestLoad_ListingWithoutTotal(t *testing.T) {
	f := newFake()
	f.listing = fmt.Sprintf(`[["Food","Expenses:Food",2,[%s]]]`, amountJSON(30))

	_, err := Load(context.Background(), f, testQueries, nil)
	assert.ErrorIs(t, err, model.ErrStructure)
}

func TestLoad_CSVFormat(t *testing.T) {
	f := &fakeFetcher{
		reports: map[string]string{
			"^Expenses": "\"account\",\"2024-01\",\"2024-02\",\"total\"\n\"total\",\"100 USD\",\"200 USD\",\"300 USD\"\n",
			"^Income":   "\"account\",\"2024-01\",\"2024-02\",\"total\"\n\"total\",\"200 USD\",\"200 USD\",\"400 USD\"\n",
		},
		listing:     "\"account\",\"balance\"\n\"Expenses:Food\",\"30 USD\"\n\"Expenses:Rent\",\"70 USD\"\n\"total\",\"100 USD\"\n",
		liabilities: "0",
	}
	q := testQueries
	q.Format = hledger.FormatCSV

	result, err := Load(context.Background(), f, q, nil)
	require.NoError(t, err)
	assert.Equal(t, []RatePoint{{0, 50}, {1, 0}}, result.Series.Rates)
	require.Len(t, result.Breakdown, 2)
	assert.InDelta(t, 0.7, result.Breakdown[1].Fraction, 1e-9)
}
