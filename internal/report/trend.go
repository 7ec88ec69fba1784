package report

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/baxley/shopbook/internal/ledger"
)

// Series is an ordered set of trend points for display or CSV export.
// Header names the columns; every point has one value per column after
// the leading date.
type Series struct {
	Header []string
	Points []Point
}

// Point is one row of a trend series.
type Point struct {
	Date   string
	Labels []string  // optional identifying columns (product, category)
	Values []float64 // money columns
}

// SalesTrend lists completed-transaction totals by transaction date.
func SalesTrend(txns []ledger.Transaction, start, end string) (Series, error) {
	if err := validateRange(start, end); err != nil {
		return Series{}, err
	}
	s := Series{Header: []string{"Date", "Sales"}}
	for _, t := range txns {
		if t.Status != ledger.StatusCompleted || !ledger.InDateRange(t.Date, start, end) {
			continue
		}
		s.Points = append(s.Points, Point{
			Date:   ledger.DateOnly(t.Date),
			Values: []float64{t.Total},
		})
	}
	return s, nil
}

// ProductSalesTrend lists line-item subtotals for one product (productID
// > 0) or all products (productID == 0, with product columns).
func ProductSalesTrend(txns []ledger.Transaction, productID int32, start, end string) (Series, error) {
	if err := validateRange(start, end); err != nil {
		return Series{}, err
	}
	all := productID == 0
	s := Series{Header: []string{"Date", "Sales"}}
	if all {
		s.Header = []string{"Date", "ProductID", "ProductName", "Sales"}
	}
	for _, t := range txns {
		if t.Status != ledger.StatusCompleted || !ledger.InDateRange(t.Date, start, end) {
			continue
		}
		for _, it := range t.Items {
			if !all && it.ProductID != productID {
				continue
			}
			p := Point{Date: ledger.DateOnly(t.Date), Values: []float64{it.Subtotal}}
			if all {
				p.Labels = []string{strconv.FormatInt(int64(it.ProductID), 10), it.Name}
			}
			s.Points = append(s.Points, p)
		}
	}
	return s, nil
}

// CategorySalesTrend lists line-item subtotals grouped under the selling
// product's current category. Items whose product no longer exists are
// skipped: category is resolved by id at report time, not snapshotted.
func CategorySalesTrend(txns []ledger.Transaction, products *ledger.ProductStore, category, start, end string) (Series, error) {
	if err := validateRange(start, end); err != nil {
		return Series{}, err
	}
	if category != "" {
		category = ledger.NormalizeCategory(category)
	}
	all := category == ""
	s := Series{Header: []string{"Date", "Sales"}}
	if all {
		s.Header = []string{"Date", "Category", "Sales"}
	}
	for _, t := range txns {
		if t.Status != ledger.StatusCompleted || !ledger.InDateRange(t.Date, start, end) {
			continue
		}
		for _, it := range t.Items {
			p, err := products.Get(it.ProductID)
			if err != nil {
				continue
			}
			if !all && p.Category != category {
				continue
			}
			point := Point{Date: ledger.DateOnly(t.Date), Values: []float64{it.Subtotal}}
			if all {
				point.Labels = []string{p.Category}
			}
			s.Points = append(s.Points, point)
		}
	}
	return s, nil
}

// ProfitTrend aggregates financial records per calendar day into income,
// expenses, and net columns, in date order of first appearance.
func ProfitTrend(recs []ledger.FinancialRecord, start, end string) (Series, error) {
	if err := validateRange(start, end); err != nil {
		return Series{}, err
	}
	s := Series{Header: []string{"Date", "Income", "Expenses", "Profit"}}

	income := map[string]decimal.Decimal{}
	expenses := map[string]decimal.Decimal{}
	var dates []string
	seen := map[string]bool{}

	for _, r := range recs {
		if !ledger.InDateRange(r.Date, start, end) {
			continue
		}
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
		amount := decimal.NewFromFloat(r.Amount)
		switch r.Type {
		case ledger.TypeIncome:
			income[r.Date] = income[r.Date].Add(amount)
		case ledger.TypeExpense:
			expenses[r.Date] = expenses[r.Date].Add(amount)
		}
	}

	for _, d := range dates {
		s.Points = append(s.Points, Point{
			Date: d,
			Values: []float64{
				income[d].InexactFloat64(),
				expenses[d].InexactFloat64(),
				income[d].Sub(expenses[d]).InexactFloat64(),
			},
		})
	}
	return s, nil
}

// ExpenseTrend lists expense records for one category (or all, with a
// category column) over the period.
func ExpenseTrend(recs []ledger.FinancialRecord, category, start, end string) (Series, error) {
	if err := validateRange(start, end); err != nil {
		return Series{}, err
	}
	if category != "" {
		category = ledger.NormalizeCategory(category)
	}
	all := category == ""
	s := Series{Header: []string{"Date", "Expenses"}}
	if all {
		s.Header = []string{"Date", "Category", "Expenses"}
	}
	for _, r := range recs {
		if r.Type != ledger.TypeExpense || !ledger.InDateRange(r.Date, start, end) {
			continue
		}
		if !all && r.Category != category {
			continue
		}
		p := Point{Date: r.Date, Values: []float64{r.Amount}}
		if all {
			p.Labels = []string{r.Category}
		}
		s.Points = append(s.Points, p)
	}
	return s, nil
}
