package report

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/baxley/shopbook/internal/config"
	"github.com/baxley/shopbook/internal/ledger"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestSalesReportText(t *testing.T) {
	rep, err := Sales(fixtureTransactions(), "", "")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "sales_report", []byte(rep.Text()))
}

func TestIncomeStatementText(t *testing.T) {
	st, err := Statement(fixtureRecords(), "2024-01-01", "2024-02-28")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "income_statement", []byte(st.Text()))
}

func TestExpenseReportText(t *testing.T) {
	rep, err := ExpenseBreakdown(fixtureRecords(), "", "")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "expense_report", []byte(rep.Text()))
}

func TestProfitLossText(t *testing.T) {
	pl, err := ProfitAndLoss(fixtureRecords(), "", "")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "profit_loss", []byte(pl.Text()))
}

func TestForecastReportText(t *testing.T) {
	f := NewForecaster(config.Default().Forecast)
	txns := []ledger.Transaction{
		txn("TXN-1", "2024-01-05 10:00:00", "Cash", 100),
		txn("TXN-2", "2024-02-10 10:00:00", "Cash", 100),
		txn("TXN-3", "2024-03-01 10:00:00", "Cash", 100),
	}
	recs := []ledger.FinancialRecord{
		{Date: "2024-01-01", Category: "Rent", Amount: 30, Type: ledger.TypeExpense},
	}
	rep := f.Report(txns, recs, 1)
	newGoldie(t).Assert(t, "forecast_report", []byte(rep.Text()))
}

func TestSeriesText(t *testing.T) {
	s, err := ProductSalesTrend(fixtureTransactions(), 0, "", "")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "product_trend", []byte(s.Text()))
}
