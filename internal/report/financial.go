package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/baxley/shopbook/internal/ledger"
)

// Income sums Income records inside the range.
func Income(recs []ledger.FinancialRecord, start, end string) (float64, error) {
	return sumByType(recs, start, end, ledger.TypeIncome)
}

// Expenses sums Expense records inside the range.
func Expenses(recs []ledger.FinancialRecord, start, end string) (float64, error) {
	return sumByType(recs, start, end, ledger.TypeExpense)
}

// Profit is income minus expenses for the range.
func Profit(recs []ledger.FinancialRecord, start, end string) (float64, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}
	income := sumByTypeUnchecked(recs, start, end, ledger.TypeIncome)
	expenses := sumByTypeUnchecked(recs, start, end, ledger.TypeExpense)
	return income.Sub(expenses).InexactFloat64(), nil
}

// ProfitMargin is profit as a percentage of income, zero when there is no
// income.
func ProfitMargin(recs []ledger.FinancialRecord, start, end string) (float64, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}
	income := sumByTypeUnchecked(recs, start, end, ledger.TypeIncome)
	if !income.IsPositive() {
		return 0, nil
	}
	profit := income.Sub(sumByTypeUnchecked(recs, start, end, ledger.TypeExpense))
	margin, _ := profit.Div(income).Mul(decimal.NewFromInt(100)).Float64()
	return margin, nil
}

func sumByType(recs []ledger.FinancialRecord, start, end, typ string) (float64, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}
	return sumByTypeUnchecked(recs, start, end, typ).InexactFloat64(), nil
}

func sumByTypeUnchecked(recs []ledger.FinancialRecord, start, end, typ string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range recs {
		if r.Type == typ && ledger.InDateRange(r.Date, start, end) {
			total = total.Add(decimal.NewFromFloat(r.Amount))
		}
	}
	return total
}

// IncomeStatement is the two-sided category breakdown for a period.
type IncomeStatement struct {
	Start, End        string
	IncomeByCategory  []Bucket
	TotalIncome       float64
	ExpenseByCategory []Bucket
	TotalExpenses     float64
	Profit            float64
	ProfitMargin      float64
}

// Statement builds the income statement: income and expense totals broken
// down by category in first-seen order, with profit and margin.
func Statement(recs []ledger.FinancialRecord, start, end string) (IncomeStatement, error) {
	if err := validateRange(start, end); err != nil {
		return IncomeStatement{}, err
	}

	st := IncomeStatement{Start: start, End: end}
	income := newGrouper()
	expenses := newGrouper()
	for _, r := range recs {
		if !ledger.InDateRange(r.Date, start, end) {
			continue
		}
		switch r.Type {
		case ledger.TypeIncome:
			income.add(r.Category, r.Amount)
		case ledger.TypeExpense:
			expenses.add(r.Category, r.Amount)
		}
	}

	incomeTotal := income.sum()
	expenseTotal := expenses.sum()
	st.IncomeByCategory = income.buckets(incomeTotal)
	st.ExpenseByCategory = expenses.buckets(expenseTotal)
	st.TotalIncome = incomeTotal.InexactFloat64()
	st.TotalExpenses = expenseTotal.InexactFloat64()
	profit := incomeTotal.Sub(expenseTotal)
	st.Profit = profit.InexactFloat64()
	if incomeTotal.IsPositive() {
		st.ProfitMargin, _ = profit.Div(incomeTotal).Mul(decimal.NewFromInt(100)).Float64()
	}
	return st, nil
}

// ExpenseReport is the expense-only category breakdown for a period.
type ExpenseReport struct {
	Start, End string
	ByCategory []Bucket // Percent is the share of Total
	Total      float64
	Detail     []ledger.FinancialRecord
}

// ExpenseBreakdown builds the expense report for a period.
func ExpenseBreakdown(recs []ledger.FinancialRecord, start, end string) (ExpenseReport, error) {
	if err := validateRange(start, end); err != nil {
		return ExpenseReport{}, err
	}

	rep := ExpenseReport{Start: start, End: end}
	byCat := newGrouper()
	for _, r := range recs {
		if r.Type != ledger.TypeExpense || !ledger.InDateRange(r.Date, start, end) {
			continue
		}
		byCat.add(r.Category, r.Amount)
		rep.Detail = append(rep.Detail, r)
	}
	total := byCat.sum()
	rep.ByCategory = byCat.buckets(total)
	rep.Total = total.InexactFloat64()
	return rep, nil
}

// MonthRow is one month of the profit-and-loss breakdown.
type MonthRow struct {
	Month    string // YYYY-MM
	Income   float64
	Expenses float64
	Profit   float64
}

// ProfitLoss is the period summary plus a month-by-month breakdown.
type ProfitLoss struct {
	Start, End    string
	TotalIncome   float64
	TotalExpenses float64
	Profit        float64
	ProfitMargin  float64
	Months        []MonthRow // ascending by month
}

// ProfitAndLoss builds the P&L report for a period.
func ProfitAndLoss(recs []ledger.FinancialRecord, start, end string) (ProfitLoss, error) {
	if err := validateRange(start, end); err != nil {
		return ProfitLoss{}, err
	}

	pl := ProfitLoss{Start: start, End: end}
	monthIncome := map[string]decimal.Decimal{}
	monthExpense := map[string]decimal.Decimal{}
	var months []string
	seen := map[string]bool{}
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	for _, r := range recs {
		if !ledger.InDateRange(r.Date, start, end) {
			continue
		}
		month := ledger.MonthOf(r.Date)
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
		amount := decimal.NewFromFloat(r.Amount)
		switch r.Type {
		case ledger.TypeIncome:
			monthIncome[month] = monthIncome[month].Add(amount)
			totalIncome = totalIncome.Add(amount)
		case ledger.TypeExpense:
			monthExpense[month] = monthExpense[month].Add(amount)
			totalExpense = totalExpense.Add(amount)
		}
	}

	sort.Strings(months)
	for _, m := range months {
		pl.Months = append(pl.Months, MonthRow{
			Month:    m,
			Income:   monthIncome[m].InexactFloat64(),
			Expenses: monthExpense[m].InexactFloat64(),
			Profit:   monthIncome[m].Sub(monthExpense[m]).InexactFloat64(),
		})
	}

	pl.TotalIncome = totalIncome.InexactFloat64()
	pl.TotalExpenses = totalExpense.InexactFloat64()
	profit := totalIncome.Sub(totalExpense)
	pl.Profit = profit.InexactFloat64()
	if totalIncome.IsPositive() {
		pl.ProfitMargin, _ = profit.Div(totalIncome).Mul(decimal.NewFromInt(100)).Float64()
	}
	return pl, nil
}
