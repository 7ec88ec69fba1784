package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxley/shopbook/internal/ledger"
)

// runCLI executes the root command against dir as the data directory and
// returns combined stdout.
func runCLI(t *testing.T, dir string, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(append([]string{"--data-dir", dir}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, "", args...)
	require.NoError(t, err, "output:\n%s", out)
	return out
}

// seedTransactions writes a transaction snapshot with $300 of completed
// sales, enough history for the forecast to engage.
func seedTransactions(t *testing.T, dir string) {
	t.Helper()
	txns := ledger.NewTransactionStore()
	for i, date := range []string{"2024-01-05 10:00:00", "2024-02-10 12:30:00", "2024-03-01 09:00:00"} {
		require.NoError(t, txns.Append(ledger.Transaction{
			ID:            fmt.Sprintf("TXN-2024%02d", i),
			Date:          date,
			CustomerID:    "Anonymous",
			Total:         100,
			PaymentMethod: "Cash",
			Status:        ledger.StatusCompleted,
		}))
	}
	require.NoError(t, txns.Save(dir))
}

func TestProductWorkflow(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "product", "add", "--name", "USB Cable", "--price", "4.50", "--quantity", "10", "--category", "electronics")
	assert.Contains(t, out, "Added product 1: USB Cable")

	mustRun(t, dir, "product", "add", "--name", "Notebook", "--price", "2.00", "--quantity", "3", "--category", "stationery")

	out = mustRun(t, dir, "product", "list")
	assert.Contains(t, out, "USB Cable")
	assert.Contains(t, out, "Notebook")
	assert.Contains(t, out, "2 product(s)")

	// Category was normalized on the way in.
	out = mustRun(t, dir, "product", "show", "1")
	assert.Contains(t, out, "Electronics")

	out = mustRun(t, dir, "product", "edit", "1", "--price", "5.00")
	assert.Contains(t, out, "Updated product 1")
	out = mustRun(t, dir, "product", "show", "1")
	assert.Contains(t, out, "$5.00")

	out = mustRun(t, dir, "product", "search", "cable")
	assert.Contains(t, out, "USB Cable")
	assert.NotContains(t, out, "Notebook")

	out = mustRun(t, dir, "product", "low-stock")
	assert.Contains(t, out, "Notebook")
	assert.NotContains(t, out, "USB Cable")

	out = mustRun(t, dir, "product", "delete", "2")
	assert.Contains(t, out, "Deleted product 2")
	out = mustRun(t, dir, "product", "list")
	assert.Contains(t, out, "1 product(s)")
}

func TestProductAddWithoutCategory(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "product", "add", "--name", "Bulk Screws", "--price", "0.05")
	assert.Contains(t, out, "Added product 1: Bulk Screws")

	out = mustRun(t, dir, "product", "list")
	assert.Contains(t, out, "Bulk Screws")
}

func TestProductShowMissing(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "", "product", "show", "42")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "NOT_FOUND")
}

func TestProductListJSON(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "product", "add", "--name", "Mouse", "--price", "12")

	out := mustRun(t, dir, "--format", "json", "product", "list")
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotNil(t, resp.Data)
}

func TestCustomerWorkflow(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "customer", "add", "--name", "Dana Voss", "--phone", "555-0100")
	assert.Contains(t, out, "Added customer 1: Dana Voss")

	out = mustRun(t, dir, "customer", "list")
	assert.Contains(t, out, "Dana Voss")
	assert.Contains(t, out, "555-0100")

	mustRun(t, dir, "customer", "edit", "1", "--email", "dana@example.com")
	out = mustRun(t, dir, "customer", "show", "1")
	assert.Contains(t, out, "dana@example.com")

	out = mustRun(t, dir, "customer", "search", "voss")
	assert.Contains(t, out, "Dana Voss")

	mustRun(t, dir, "customer", "add", "--name", "Ada Quinn")
	out = mustRun(t, dir, "customer", "list", "--sort", "name")
	assert.Less(t, strings.Index(out, "Ada Quinn"), strings.Index(out, "Dana Voss"))

	mustRun(t, dir, "customer", "delete", "2")
	mustRun(t, dir, "customer", "delete", "1")
	out = mustRun(t, dir, "customer", "list")
	assert.Contains(t, out, "No customers found")
}

func TestBillSessionCompletesSale(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "product", "add", "--name", "USB Cable", "--price", "4.50", "--quantity", "10")

	stdin := "add 1 2\nitems\ndone\n"
	out, err := runCLI(t, dir, stdin, "bill", "new")
	require.NoError(t, err, "output:\n%s", out)
	assert.Contains(t, out, "Opened bill TXN-")
	assert.Contains(t, out, "USB Cable")
	assert.Contains(t, out, "Total: $9.00")

	// Stock was decremented and the sale recorded.
	out = mustRun(t, dir, "product", "show", "1")
	assert.Contains(t, out, "Quantity:    8")

	out = mustRun(t, dir, "bill", "history")
	assert.Contains(t, out, "1 transaction(s)")
	assert.Contains(t, out, "Anonymous")
}

func TestBillSessionCancelRestoresStock(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "product", "add", "--name", "Mouse", "--price", "12", "--quantity", "5")

	out, err := runCLI(t, dir, "add 1 3\ncancel\n", "bill", "new")
	require.NoError(t, err, "output:\n%s", out)
	assert.Contains(t, out, "Bill cancelled, stock restored")

	out = mustRun(t, dir, "product", "show", "1")
	assert.Contains(t, out, "Quantity:    5")

	out = mustRun(t, dir, "bill", "history")
	assert.Contains(t, out, "No transactions found")
}

func TestBillSessionRejectsOverdraw(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "product", "add", "--name", "Mouse", "--price", "12", "--quantity", "2")

	out, err := runCLI(t, dir, "add 1 5\ncancel\n", "bill", "new")
	require.NoError(t, err, "output:\n%s", out)
	assert.Contains(t, out, "cannot add")
}

func TestBillReport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "product", "add", "--name", "Mouse", "--price", "12", "--quantity", "5")
	out, err := runCLI(t, dir, "add 1 1\ndone\n", "bill", "new")
	require.NoError(t, err, "output:\n%s", out)

	out = mustRun(t, dir, "bill", "report")
	assert.Contains(t, out, "SALES REPORT")
	assert.Contains(t, out, "Total Sales: $12.00")
	assert.Contains(t, out, "Cash: 1 transactions")
}

func TestFinanceWorkflow(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, dir, "finance", "add", "--date", "2024-01-05", "--category", "sales", "--amount", "100", "--type", "Income")
	mustRun(t, dir, "finance", "add", "--date", "2024-01-20", "--category", "rent", "--amount", "40", "--type", "Expense")

	out := mustRun(t, dir, "finance", "list")
	assert.Contains(t, out, "Sales")
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "2 entry(ies)")

	out = mustRun(t, dir, "finance", "statement")
	assert.Contains(t, out, "INCOME STATEMENT")
	assert.Contains(t, out, "Total Income")
	assert.Contains(t, out, "60.00") // net profit

	out = mustRun(t, dir, "finance", "expenses")
	assert.Contains(t, out, "EXPENSE REPORT")
	assert.Contains(t, out, "Rent")

	out = mustRun(t, dir, "finance", "pnl")
	assert.Contains(t, out, "PROFIT AND LOSS REPORT")
	assert.Contains(t, out, "2024-01")
}

func TestFinanceAddRejectsBadDate(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, dir, "",
		"finance", "add", "--date", "01/05/2024", "--category", "sales", "--amount", "100", "--type", "Income")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "INVALID_INPUT")
}

func TestFinanceExportCSV(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "finance", "add", "--date", "2024-01-05", "--category", "sales", "--amount", "100", "--type", "Income")

	csvPath := filepath.Join(dir, "ledger.csv")
	out := mustRun(t, dir, "finance", "export", "--out", csvPath)
	assert.Contains(t, out, "Exported 1 record(s)")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Category,Description,Amount,Type")
	assert.Contains(t, string(data), "2024-01-05,Sales,,$100.00,Income")
}

func TestTrendForecast(t *testing.T) {
	dir := t.TempDir()
	seedTransactions(t, dir)

	out := mustRun(t, dir, "trend", "forecast", "--months", "1")
	assert.Contains(t, out, "1-MONTH FORECAST REPORT")
	// (300/3) * 1.05 with the default parameters.
	assert.Contains(t, out, "$105.00")
}

func TestTrendSalesCSV(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "product", "add", "--name", "Mouse", "--price", "12", "--quantity", "5")
	out, err := runCLI(t, dir, "add 1 1\ndone\n", "bill", "new")
	require.NoError(t, err, "output:\n%s", out)

	csvPath := filepath.Join(dir, "sales.csv")
	out = mustRun(t, dir, "trend", "sales", "--csv", csvPath)
	assert.Contains(t, out, "Date")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Sales")
	assert.Contains(t, string(data), "12.00")
}

func TestExportSQLiteCommand(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "product", "add", "--name", "Mouse", "--price", "12", "--quantity", "5")

	dbPath := filepath.Join(dir, "archive.db")
	out := mustRun(t, dir, "export", "sqlite", "--out", dbPath)
	assert.Contains(t, out, "Exported 1 products")

	_, err := os.Stat(dbPath)
	require.NoError(t, err)
}
