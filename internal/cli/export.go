package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baxley/shopbook/internal/export"
)

// ExportOptions holds flags for the export subcommands.
type ExportOptions struct {
	*RootOptions
	Out string
}

// NewExportCommand creates the export command and its subcommands.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the books to external formats",
	}

	sqlite := &cobra.Command{
		Use:           "sqlite",
		Short:         "Export every store to a SQLite archive",
		Long: `Export products, customers, transactions, and the financial
ledger into a SQLite database for ad-hoc querying. Re-exporting to the
same file replaces rows rather than duplicating them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportSQLite(opts, cmd)
		},
	}
	sqlite.Flags().StringVar(&opts.Out, "out", "", "archive file (required)")
	_ = sqlite.MarkFlagRequired("out")

	cmd.AddCommand(sqlite)
	return cmd
}

func exportSQLite(opts *ExportOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	err = export.SQLite(cmd.Context(), opts.Out,
		app.Products, app.Customers, app.Transactions, app.Financial)
	if err != nil {
		return f.Error(err)
	}
	return f.Success(map[string]any{
		"file":         opts.Out,
		"products":     app.Products.Len(),
		"customers":    app.Customers.Len(),
		"transactions": app.Transactions.Len(),
		"financial":    app.Financial.Len(),
	}, fmt.Sprintf("Exported %d products, %d customers, %d transactions, %d ledger entries to %s\n",
		app.Products.Len(), app.Customers.Len(), app.Transactions.Len(), app.Financial.Len(), opts.Out))
}
