package report

import (
	"github.com/shopspring/decimal"

	"github.com/baxley/shopbook/internal/ledger"
)

// SalesReport summarizes completed transactions over a period.
type SalesReport struct {
	Start          string // "" means all time
	End            string // "" means present
	Total          float64
	Transactions   int
	AverageSale    float64
	PaymentMethods []Bucket
	Detail         []ledger.Transaction // the transactions the report covers
}

// TotalSales sums the totals of completed transactions inside the range.
func TotalSales(txns []ledger.Transaction, start, end string) (float64, error) {
	if err := validateRange(start, end); err != nil {
		return 0, err
	}
	total := decimal.Zero
	for _, t := range txns {
		if t.Status != ledger.StatusCompleted || !ledger.InDateRange(t.Date, start, end) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(t.Total))
	}
	return total.InexactFloat64(), nil
}

// Sales builds the full sales report for a period: total, count, average
// sale, and a payment-method breakdown in first-seen order.
func Sales(txns []ledger.Transaction, start, end string) (SalesReport, error) {
	if err := validateRange(start, end); err != nil {
		return SalesReport{}, err
	}

	rep := SalesReport{Start: start, End: end}
	methods := newGrouper()
	total := decimal.Zero

	for _, t := range txns {
		if t.Status != ledger.StatusCompleted || !ledger.InDateRange(t.Date, start, end) {
			continue
		}
		rep.Transactions++
		total = total.Add(decimal.NewFromFloat(t.Total))
		methods.add(t.PaymentMethod, t.Total)
		rep.Detail = append(rep.Detail, t)
	}

	rep.Total = total.InexactFloat64()
	if rep.Transactions > 0 {
		rep.AverageSale, _ = total.Div(decimal.NewFromInt(int64(rep.Transactions))).Float64()
	}
	rep.PaymentMethods = methods.buckets(total)
	return rep, nil
}

func validateRange(start, end string) error {
	if err := ledger.ValidateOptionalDate(start); err != nil {
		return err
	}
	return ledger.ValidateOptionalDate(end)
}
