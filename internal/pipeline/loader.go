package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theirongolddev/savrate/internal/hledger"
	"github.com/theirongolddev/savrate/internal/model"
	"github.com/theirongolddev/savrate/internal/source"
)

// Fetcher returns raw hledger output. *hledger.Runner implements it.
type Fetcher interface {
	PeriodReport(ctx context.Context, query string, invert bool) ([]byte, error)
	MonthListing(ctx context.Context, query string) ([]byte, error)
	Total(ctx context.Context, query string) ([]byte, error)
}

// Queries names the accounts each report is built from.
type Queries struct {
	Expenses     string
	Income       string
	Liabilities  string
	InvertIncome bool
	Format       hledger.Format
}

// LoadResult holds the parsed reports and every derived metric.
type LoadResult struct {
	Expenses    model.PeriodReport
	Income      model.PeriodReport
	Listing     model.SinglePeriodListing
	Liabilities float64

	Series      Series
	Projections Projections
	Breakdown   []model.ExpenseShare

	DroppedRows int
	LoadTime    time.Duration
}

// ProgressFunc is called as each load stage starts.
// current is the 1-based stage number, total the stage count.
type ProgressFunc func(current, total int, stage string)

var stages = []string{
	"Fetching liabilities",
	"Fetching expenses",
	"Fetching income",
	"Computing savings rate",
	"Fetching this month's expenses",
}

// Load fetches and parses every report, then computes the metrics. Stages run
// strictly in order and the first failure stops the load.
func Load(ctx context.Context, f Fetcher, q Queries, progressFn ProgressFunc) (*LoadResult, error) {
	start := time.Now()
	result := &LoadResult{}

	step := func(i int) {
		if progressFn != nil {
			progressFn(i+1, len(stages), stages[i])
		}
	}

	step(0)
	raw, err := f.Total(ctx, q.Liabilities)
	if err != nil {
		return nil, fmt.Errorf("liabilities: %w", err)
	}
	if result.Liabilities, err = source.ParseLiabilities(raw); err != nil {
		return nil, fmt.Errorf("liabilities: %w", err)
	}

	step(1)
	if result.Expenses, err = fetchReport(ctx, f, q.Expenses, false, q.Format); err != nil {
		return nil, fmt.Errorf("expenses: %w", err)
	}

	step(2)
	if result.Income, err = fetchReport(ctx, f, q.Income, q.InvertIncome, q.Format); err != nil {
		return nil, fmt.Errorf("income: %w", err)
	}

	step(3)
	if result.Series, err = ComputeSeries(result.Expenses, result.Income); err != nil {
		return nil, err
	}
	result.Projections = ComputeProjections(
		result.Series.AvgDailyExpense,
		result.Series.AvgDailyIncome,
		result.Liabilities,
	)

	step(4)
	if result.Listing, result.DroppedRows, err = fetchListing(ctx, f, q.Expenses, q.Format); err != nil {
		return nil, fmt.Errorf("monthly breakdown: %w", err)
	}
	if result.DroppedRows > 0 {
		log.Warn().Int("rows", result.DroppedRows).Msg("dropped unrecognized balance rows")
	}
	if result.Breakdown, err = ComputeExpenseBreakdown(result.Listing); err != nil {
		return nil, fmt.Errorf("monthly breakdown: %w", err)
	}

	result.LoadTime = time.Since(start)
	log.Debug().
		Int("months", result.Series.Months).
		Int("accounts", len(result.Breakdown)).
		Dur("took", result.LoadTime).
		Msg("load complete")
	return result, nil
}

func fetchReport(ctx context.Context, f Fetcher, query string, invert bool, format hledger.Format) (model.PeriodReport, error) {
	raw, err := f.PeriodReport(ctx, query, invert)
	if err != nil {
		return model.PeriodReport{}, err
	}
	if format == hledger.FormatCSV {
		return source.ParseLegacyReport(raw)
	}
	return source.ParseReport(raw)
}

func fetchListing(ctx context.Context, f Fetcher, query string, format hledger.Format) (model.SinglePeriodListing, int, error) {
	raw, err := f.MonthListing(ctx, query)
	if err != nil {
		return model.SinglePeriodListing{}, 0, err
	}
	if format == hledger.FormatCSV {
		listing, err := source.ParseLegacyListing(raw)
		return listing, 0, err
	}
	return source.ParseListing(raw)
}
