package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baxley/shopbook/internal/ledger"
	"github.com/baxley/shopbook/internal/report"
)

// Fields are written as-is, without CSV quoting. Category and
// description inputs are plain words in practice; a field containing a
// comma would shift columns in the output.

// WriteFinancialCSV writes financial records one per line.
func WriteFinancialCSV(w io.Writer, recs []ledger.FinancialRecord) error {
	if _, err := fmt.Fprintln(w, "Date,Category,Description,Amount,Type"); err != nil {
		return err
	}
	for _, r := range recs {
		_, err := fmt.Fprintf(w, "%s,%s,%s,$%.2f,%s\n",
			r.Date, r.Category, r.Description, r.Amount, r.Type)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSalesCSV writes the transactions behind a sales report, one line
// per transaction, followed by a summary row.
func WriteSalesCSV(w io.Writer, rep report.SalesReport) error {
	if _, err := fmt.Fprintln(w, "TransactionID,Date,CustomerID,PaymentMethod,Total"); err != nil {
		return err
	}
	for _, t := range rep.Detail {
		_, err := fmt.Fprintf(w, "%s,%s,%s,%s,%.2f\n",
			t.ID, t.Date, t.CustomerID, t.PaymentMethod, t.Total)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "TOTAL,,,,%.2f\n", rep.Total)
	return err
}

// WriteSeriesCSV writes a trend series with its header row.
func WriteSeriesCSV(w io.Writer, s report.Series) error {
	if _, err := fmt.Fprintln(w, strings.Join(s.Header, ",")); err != nil {
		return err
	}
	for _, p := range s.Points {
		cols := make([]string, 0, 1+len(p.Labels)+len(p.Values))
		cols = append(cols, p.Date)
		cols = append(cols, p.Labels...)
		for _, v := range p.Values {
			cols = append(cols, fmt.Sprintf("%.2f", v))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cols, ",")); err != nil {
			return err
		}
	}
	return nil
}

// WriteForecastCSV writes a forecast report as one row per figure.
func WriteForecastCSV(w io.Writer, rep report.ForecastReport) error {
	if _, err := fmt.Fprintln(w, "Months,Figure,Amount"); err != nil {
		return err
	}
	rows := []struct {
		name  string
		value float64
	}{
		{"Revenue", rep.Revenue},
		{"Expenses", rep.Expenses},
		{"Profit", rep.Profit},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%d,%s,%.2f\n", rep.Months, r.name, r.value); err != nil {
			return err
		}
	}
	return nil
}

// ToFile writes a CSV via fn to path, creating or truncating the file.
func ToFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
