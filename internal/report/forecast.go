package report

import (
	"github.com/shopspring/decimal"

	"github.com/baxley/shopbook/internal/config"
	"github.com/baxley/shopbook/internal/ledger"
)

// Forecaster projects revenue and expenses months ahead.
//
// The model is deliberately crude and inherited as-is: the average month is
// the total over the observed window divided by an assumed window length,
// compounded by a fixed monthly growth factor. It is a trend hint, not a
// regression; the factors and window live in configuration so deployments
// can tune them without code changes.
type Forecaster struct {
	params config.Forecast
}

// NewForecaster creates a forecaster with the given model parameters.
func NewForecaster(params config.Forecast) *Forecaster {
	return &Forecaster{params: params}
}

// minTransactionsForForecast gates the revenue forecast: with fewer
// observed transactions the window average is meaningless.
const minTransactionsForForecast = 3

// Revenue projects monthly revenue the given number of months out.
// Returns 0 when there are fewer than three recorded transactions.
func (f *Forecaster) Revenue(txns []ledger.Transaction, months int) float64 {
	if len(txns) < minTransactionsForForecast {
		return 0
	}
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(decimal.NewFromFloat(t.Total))
	}
	return f.project(total, f.params.RevenueGrowth, months)
}

// Expense projects monthly expenses the given number of months out.
// Returns 0 when no expense records exist.
func (f *Forecaster) Expense(recs []ledger.FinancialRecord, months int) float64 {
	total := decimal.Zero
	found := false
	for _, r := range recs {
		if r.Type == ledger.TypeExpense {
			total = total.Add(decimal.NewFromFloat(r.Amount))
			found = true
		}
	}
	if !found {
		return 0
	}
	return f.project(total, f.params.ExpenseGrowth, months)
}

// Profit is the revenue projection minus the expense projection.
func (f *Forecaster) Profit(txns []ledger.Transaction, recs []ledger.FinancialRecord, months int) float64 {
	rev := decimal.NewFromFloat(f.Revenue(txns, months))
	exp := decimal.NewFromFloat(f.Expense(recs, months))
	return rev.Sub(exp).InexactFloat64()
}

// project computes (windowTotal / windowMonths) * growth^months.
func (f *Forecaster) project(windowTotal decimal.Decimal, growth float64, months int) float64 {
	monthly := windowTotal.Div(decimal.NewFromInt(int64(f.params.WindowMonths)))
	factor := decimal.NewFromFloat(growth).Pow(decimal.NewFromInt(int64(months)))
	return monthly.Mul(factor).InexactFloat64()
}

// ForecastReport is the combined projection for one horizon.
type ForecastReport struct {
	Months       int
	Revenue      float64
	Expenses     float64
	Profit       float64
	ProfitMargin float64
}

// Report builds the combined forecast for the given horizon.
func (f *Forecaster) Report(txns []ledger.Transaction, recs []ledger.FinancialRecord, months int) ForecastReport {
	rep := ForecastReport{
		Months:   months,
		Revenue:  f.Revenue(txns, months),
		Expenses: f.Expense(recs, months),
	}
	rev := decimal.NewFromFloat(rep.Revenue)
	profit := rev.Sub(decimal.NewFromFloat(rep.Expenses))
	rep.Profit = profit.InexactFloat64()
	if rev.IsPositive() {
		rep.ProfitMargin, _ = profit.Div(rev).Mul(decimal.NewFromInt(100)).Float64()
	}
	return rep
}
