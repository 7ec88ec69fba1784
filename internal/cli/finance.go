package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baxley/shopbook/internal/export"
	"github.com/baxley/shopbook/internal/ledger"
	"github.com/baxley/shopbook/internal/report"
)

// FinanceOptions holds flags for the finance subcommands.
type FinanceOptions struct {
	*RootOptions
	Date        string
	Category    string
	Amount      float64
	Type        string
	Description string
	Start       string
	End         string
	Out         string
}

// NewFinanceCommand creates the finance command and its subcommands.
func NewFinanceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FinanceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Record income and expenses and run financial reports",
	}

	add := &cobra.Command{
		Use:           "add",
		Short:         "Record an income or expense entry",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return financeAdd(opts, cmd)
		},
	}
	add.Flags().StringVar(&opts.Date, "date", "", "entry date YYYY-MM-DD (required)")
	add.Flags().StringVar(&opts.Category, "category", "", "category (required)")
	add.Flags().Float64Var(&opts.Amount, "amount", 0, "amount (required, positive)")
	add.Flags().StringVar(&opts.Type, "type", "", "Income or Expense (required)")
	add.Flags().StringVar(&opts.Description, "description", "", "free-form description")
	_ = add.MarkFlagRequired("date")
	_ = add.MarkFlagRequired("category")
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("type")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List ledger entries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return financeList(opts, cmd)
		},
	}
	list.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
	list.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")
	list.Flags().StringVar(&opts.Type, "type", "", "filter by type (Income|Expense)")

	statement := &cobra.Command{
		Use:           "statement",
		Short:         "Income statement for a period",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return financeStatement(opts, cmd)
		},
	}
	statement.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
	statement.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")

	expenses := &cobra.Command{
		Use:           "expenses",
		Short:         "Expense breakdown for a period",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return financeExpenses(opts, cmd)
		},
	}
	expenses.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
	expenses.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")

	pnl := &cobra.Command{
		Use:           "pnl",
		Short:         "Profit and loss report with monthly breakdown",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return financePnL(opts, cmd)
		},
	}
	pnl.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
	pnl.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")

	exportCmd := &cobra.Command{
		Use:           "export",
		Short:         "Export ledger entries as CSV",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return financeExport(opts, cmd)
		},
	}
	exportCmd.Flags().StringVar(&opts.Out, "out", "", "output file (required)")
	exportCmd.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")
	_ = exportCmd.MarkFlagRequired("out")

	cmd.AddCommand(add, list, statement, expenses, pnl, exportCmd)
	return cmd
}

func financeAdd(opts *FinanceOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	r := ledger.FinancialRecord{
		Date:        opts.Date,
		Category:    ledger.NormalizeCategory(opts.Category),
		Amount:      opts.Amount,
		Type:        opts.Type,
		Description: opts.Description,
	}
	if err := app.Financial.Add(r); err != nil {
		return f.Error(err)
	}
	if err := app.Financial.Save(app.DataDir); err != nil {
		return f.Error(err)
	}
	return f.Success(r, fmt.Sprintf("Recorded %s: %s $%.2f on %s\n",
		strings.ToLower(r.Type), r.Category, r.Amount, r.Date))
}

func financeList(opts *FinanceOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	recs := app.Financial.Filter(opts.Start, opts.End, opts.Type)
	if len(recs) == 0 {
		return f.Success(recs, "No ledger entries found\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-20s %-8s %12s  %s\n", "Date", "Category", "Type", "Amount", "Description")
	b.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "%-12s %-20s %-8s $%11.2f  %s\n",
			r.Date, r.Category, r.Type, r.Amount, r.Description)
	}
	fmt.Fprintf(&b, "\n%d entry(ies)\n", len(recs))
	return f.Success(recs, b.String())
}

func financeStatement(opts *FinanceOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	st, err := report.Statement(app.Financial.All(), opts.Start, opts.End)
	if err != nil {
		return f.Error(err)
	}
	return f.Success(st, st.Text())
}

func financeExpenses(opts *FinanceOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	rep, err := report.ExpenseBreakdown(app.Financial.All(), opts.Start, opts.End)
	if err != nil {
		return f.Error(err)
	}
	return f.Success(rep, rep.Text())
}

func financePnL(opts *FinanceOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	pl, err := report.ProfitAndLoss(app.Financial.All(), opts.Start, opts.End)
	if err != nil {
		return f.Error(err)
	}
	return f.Success(pl, pl.Text())
}

func financeExport(opts *FinanceOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	recs := app.Financial.Filter(opts.Start, opts.End, "")
	err = export.ToFile(opts.Out, func(w io.Writer) error {
		return export.WriteFinancialCSV(w, recs)
	})
	if err != nil {
		return f.Error(err)
	}
	return f.Success(map[string]any{"file": opts.Out, "records": len(recs)},
		fmt.Sprintf("Exported %d record(s) to %s\n", len(recs), opts.Out))
}
