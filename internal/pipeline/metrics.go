// Package pipeline turns hledger reports into savings-rate metrics.
package pipeline

import (
	"fmt"
	"math"

	"github.com/theirongolddev/savrate/internal/model"
)

const (
	// DaysPerMonth models every month as 30 days when averaging daily
	// figures. Span boundaries are not consulted.
	DaysPerMonth = 30

	// FireMultiple is annual expenses to financial independence (4% rule).
	FireMultiple = 25
	// WealthMultiple scales annual income into the expected net worth
	// benchmark. AAW is half of it, PAW twice it.
	WealthMultiple = 2.3
	DaysPerYear    = 365
)

// ErrNoPeriods means one side of the savings-rate comparison has no data.
var ErrNoPeriods = fmt.Errorf("%w: no expenses/income recorded", model.ErrStructure)

// RatePoint is one step of the savings-rate chart.
type RatePoint struct {
	Period  float64
	Percent float64
}

// Series holds the per-period savings rates and their averages.
type Series struct {
	Rates           []RatePoint
	CumulativeRate  float64 // mean of Rates[i].Percent
	AvgDailyExpense float64
	AvgDailyIncome  float64
	Months          int
}

// Projections holds long-horizon wealth milestones and the annualized
// figures they are derived from.
type Projections struct {
	FIRE float64
	AAW  float64 // |AAWTarget - liabilities|
	PAW  float64 // |PAWTarget - liabilities|

	AnnualExpenses float64
	AnnualIncome   float64
	Benchmark      float64 // AnnualIncome * WealthMultiple
	AAWTarget      float64
	PAWTarget      float64
}

// Level classifies a savings rate percentage for display.
type Level int

const (
	LevelAlert Level = iota
	LevelCaution
	LevelGood
)

// RateLevel buckets a percentage: <= 0 alert, <= 50 caution, above good.
func RateLevel(percent float64) Level {
	switch {
	case percent <= 0:
		return LevelAlert
	case percent <= 50:
		return LevelCaution
	default:
		return LevelGood
	}
}

// SavingsRate is (income - expenses) / income, or 0 when that is undefined.
func SavingsRate(income, expenses float64) float64 {
	rate := (income - expenses) / income
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate
}

type seriesAcc struct {
	rates        []RatePoint
	rateSum      float64
	dailyExpense float64
	dailyIncome  float64
}

func (acc seriesAcc) add(i int, expenses, income float64) seriesAcc {
	rate := SavingsRate(income, expenses)
	acc.rates = append(acc.rates, RatePoint{Period: float64(i), Percent: rate * 100})
	acc.rateSum += rate
	acc.dailyExpense += expenses / DaysPerMonth
	acc.dailyIncome += income / DaysPerMonth
	return acc
}

// ComputeSeries pairs the expense and income reports period by period.
// Both reports must have the same, non-zero number of periods.
func ComputeSeries(expenses, income model.PeriodReport) (Series, error) {
	n := expenses.PeriodCount()
	if n == 0 || income.PeriodCount() == 0 {
		return Series{}, ErrNoPeriods
	}
	if income.PeriodCount() != n {
		return Series{}, fmt.Errorf("%w: %d expense periods but %d income periods",
			model.ErrStructure, n, income.PeriodCount())
	}

	acc := seriesAcc{rates: make([]RatePoint, 0, n)}
	for i := 0; i < n; i++ {
		e, err := expenses.ValueAtPeriod(i)
		if err != nil {
			return Series{}, err
		}
		in, err := income.ValueAtPeriod(i)
		if err != nil {
			return Series{}, err
		}
		acc = acc.add(i, e.Amount, in.Amount)
	}

	months := float64(n)
	return Series{
		Rates:           acc.rates,
		CumulativeRate:  acc.rateSum / months * 100,
		AvgDailyExpense: acc.dailyExpense / months,
		AvgDailyIncome:  acc.dailyIncome / months,
		Months:          n,
	}, nil
}

// ComputeProjections derives the FIRE target and the distances from the
// average and prodigious accumulator-of-wealth benchmarks.
func ComputeProjections(avgDailyExpense, avgDailyIncome, liabilities float64) Projections {
	p := Projections{
		AnnualExpenses: avgDailyExpense * DaysPerYear,
		AnnualIncome:   avgDailyIncome * DaysPerYear,
	}
	p.FIRE = avgDailyExpense * DaysPerYear * FireMultiple
	p.Benchmark = p.AnnualIncome * WealthMultiple
	p.AAWTarget = p.Benchmark / 2
	p.PAWTarget = p.Benchmark * 2
	p.AAW = math.Abs(p.AAWTarget - liabilities)
	p.PAW = math.Abs(p.PAWTarget - liabilities)
	return p
}

// ComputeExpenseBreakdown returns each account's share of the month's
// expenses, in listing order.
func ComputeExpenseBreakdown(listing model.SinglePeriodListing) ([]model.ExpenseShare, error) {
	return listing.ExpenseShares()
}
