package report

import (
	"fmt"
	"strings"
)

const (
	rule    = "========================================"
	thinSep = "----------------------------------------------"
)

func period(start, end string) string {
	if start == "" {
		start = "All time"
	}
	if end == "" {
		end = "Present"
	}
	return fmt.Sprintf("Period: %s to %s", start, end)
}

func header(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n%s\n%s\n", rule, title, rule)
}

// Text renders the sales report for the terminal.
func (r SalesReport) Text() string {
	var b strings.Builder
	header(&b, "           SALES REPORT")
	fmt.Fprintf(&b, "%s\n\n", period(r.Start, r.End))
	fmt.Fprintf(&b, "Total Sales: $%.2f\n", r.Total)
	fmt.Fprintf(&b, "Number of Transactions: %d\n", r.Transactions)
	fmt.Fprintf(&b, "Average Sale: $%.2f\n\n", r.AverageSale)
	fmt.Fprintf(&b, "Payment Method Breakdown:\n")
	fmt.Fprintf(&b, "------------------------\n")
	for _, m := range r.PaymentMethods {
		fmt.Fprintf(&b, "%s: %d transactions, $%.2f (%.1f%%)\n", m.Key, m.Count, m.Total, m.Percent)
	}
	return b.String()
}

// Text renders the income statement for the terminal.
func (s IncomeStatement) Text() string {
	var b strings.Builder
	header(&b, "        INCOME STATEMENT")
	fmt.Fprintf(&b, "%s\n\n", period(s.Start, s.End))

	fmt.Fprintf(&b, "INCOME\n%s\n", thinSep)
	for _, c := range s.IncomeByCategory {
		fmt.Fprintf(&b, "%-30s $%10.2f\n", c.Key, c.Total)
	}
	fmt.Fprintf(&b, "%s\n%-30s $%10.2f\n\n", thinSep, "Total Income", s.TotalIncome)

	fmt.Fprintf(&b, "EXPENSES\n%s\n", thinSep)
	for _, c := range s.ExpenseByCategory {
		fmt.Fprintf(&b, "%-30s $%10.2f\n", c.Key, c.Total)
	}
	fmt.Fprintf(&b, "%s\n%-30s $%10.2f\n\n", thinSep, "Total Expenses", s.TotalExpenses)

	fmt.Fprintf(&b, "%-30s $%10.2f\n", "Net Profit/Loss", s.Profit)
	fmt.Fprintf(&b, "%-30s %10.1f%%\n", "Profit Margin", s.ProfitMargin)
	return b.String()
}

// Text renders the expense report for the terminal.
func (r ExpenseReport) Text() string {
	var b strings.Builder
	header(&b, "        EXPENSE REPORT")
	fmt.Fprintf(&b, "%s\n\n", period(r.Start, r.End))
	fmt.Fprintf(&b, "EXPENSE BREAKDOWN\n%s\n", thinSep)
	for _, c := range r.ByCategory {
		fmt.Fprintf(&b, "%-30s $%10.2f (%5.1f%%)\n", c.Key, c.Total, c.Percent)
	}
	fmt.Fprintf(&b, "%s\n", thinSep)
	fmt.Fprintf(&b, "%-30s $%10.2f (100.0%%)\n", "Total Expenses", r.Total)
	return b.String()
}

// Text renders the profit-and-loss report for the terminal.
func (pl ProfitLoss) Text() string {
	var b strings.Builder
	header(&b, "      PROFIT AND LOSS REPORT")
	fmt.Fprintf(&b, "%s\n\n", period(pl.Start, pl.End))

	fmt.Fprintf(&b, "SUMMARY\n%s\n", thinSep)
	fmt.Fprintf(&b, "%-30s $%10.2f\n", "Total Income", pl.TotalIncome)
	fmt.Fprintf(&b, "%-30s $%10.2f\n", "Total Expenses", pl.TotalExpenses)
	fmt.Fprintf(&b, "%-30s $%10.2f\n", "Net Profit/Loss", pl.Profit)
	fmt.Fprintf(&b, "%-30s %10.1f%%\n\n", "Profit Margin", pl.ProfitMargin)

	fmt.Fprintf(&b, "MONTHLY BREAKDOWN\n%s\n", thinSep)
	fmt.Fprintf(&b, "%-10s %-12s %-12s %-12s\n", "Month", "Income", "Expenses", "Profit/Loss")
	fmt.Fprintf(&b, "%s\n", thinSep)
	for _, m := range pl.Months {
		fmt.Fprintf(&b, "%-10s $%-11.2f $%-11.2f $%-11.2f\n", m.Month, m.Income, m.Expenses, m.Profit)
	}
	return b.String()
}

// Text renders the forecast report for the terminal.
func (r ForecastReport) Text() string {
	var b strings.Builder
	header(&b, fmt.Sprintf("      %d-MONTH FORECAST REPORT", r.Months))
	fmt.Fprintf(&b, "Forecasted Monthly Figures:\n\n")
	fmt.Fprintf(&b, "%-20s $%.2f\n", "Revenue:", r.Revenue)
	fmt.Fprintf(&b, "%-20s $%.2f\n", "Expenses:", r.Expenses)
	fmt.Fprintf(&b, "%-20s $%.2f\n", "Profit:", r.Profit)
	fmt.Fprintf(&b, "%-20s %.1f%%\n", "Profit Margin:", r.ProfitMargin)
	fmt.Fprintf(&b, "\nNote: this forecast assumes similar business conditions going forward.\n")
	return b.String()
}

// Text renders a trend series as an aligned table.
func (s Series) Text() string {
	var b strings.Builder
	for i, col := range s.Header {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-12s", col)
	}
	b.WriteString("\n")
	for _, p := range s.Points {
		fmt.Fprintf(&b, "%-12s", p.Date)
		for _, l := range p.Labels {
			fmt.Fprintf(&b, "  %-12s", l)
		}
		for _, v := range p.Values {
			fmt.Fprintf(&b, "  %-12s", fmt.Sprintf("$%.2f", v))
		}
		b.WriteString("\n")
	}
	return b.String()
}
