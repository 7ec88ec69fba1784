package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxley/shopbook/internal/ledger"
	"github.com/baxley/shopbook/internal/report"
)

func TestWriteFinancialCSV(t *testing.T) {
	recs := []ledger.FinancialRecord{
		{Date: "2024-01-05", Category: "Sales", Description: "Walk-in sale", Amount: 100, Type: ledger.TypeIncome},
		{Date: "2024-02-01", Category: "Rent", Description: "February rent", Amount: 80.5, Type: ledger.TypeExpense},
	}

	var b strings.Builder
	require.NoError(t, WriteFinancialCSV(&b, recs))

	want := "Date,Category,Description,Amount,Type\n" +
		"2024-01-05,Sales,Walk-in sale,$100.00,Income\n" +
		"2024-02-01,Rent,February rent,$80.50,Expense\n"
	assert.Equal(t, want, b.String())
}

func TestWriteSalesCSV(t *testing.T) {
	rep := report.SalesReport{
		Total: 160,
		Detail: []ledger.Transaction{
			{ID: "TXN-1", Date: "2024-01-05 10:00:00", CustomerID: "Anonymous", PaymentMethod: "Cash", Total: 100},
			{ID: "TXN-2", Date: "2024-02-10 12:30:00", CustomerID: "7", PaymentMethod: "Credit Card", Total: 60},
		},
	}

	var b strings.Builder
	require.NoError(t, WriteSalesCSV(&b, rep))

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "TransactionID,Date,CustomerID,PaymentMethod,Total", lines[0])
	assert.Equal(t, "TXN-1,2024-01-05 10:00:00,Anonymous,Cash,100.00", lines[1])
	assert.Equal(t, "TOTAL,,,,160.00", lines[3])
}

func TestWriteSeriesCSV(t *testing.T) {
	s := report.Series{
		Header: []string{"Date", "Category", "Sales"},
		Points: []report.Point{
			{Date: "2024-01-05", Labels: []string{"Electronics"}, Values: []float64{100}},
			{Date: "2024-02-10", Labels: []string{"Office"}, Values: []float64{60}},
		},
	}

	var b strings.Builder
	require.NoError(t, WriteSeriesCSV(&b, s))

	want := "Date,Category,Sales\n" +
		"2024-01-05,Electronics,100.00\n" +
		"2024-02-10,Office,60.00\n"
	assert.Equal(t, want, b.String())
}

func TestWriteForecastCSV(t *testing.T) {
	rep := report.ForecastReport{Months: 3, Revenue: 115.76, Expenses: 10.93, Profit: 104.83}

	var b strings.Builder
	require.NoError(t, WriteForecastCSV(&b, rep))

	want := "Months,Figure,Amount\n" +
		"3,Revenue,115.76\n" +
		"3,Expenses,10.93\n" +
		"3,Profit,104.83\n"
	assert.Equal(t, want, b.String())
}
