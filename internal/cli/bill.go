package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baxley/shopbook/internal/billing"
	"github.com/baxley/shopbook/internal/export"
	"github.com/baxley/shopbook/internal/report"
)

// BillOptions holds flags for the bill subcommands.
type BillOptions struct {
	*RootOptions
	Start   string
	End     string
	Method  string
	CSVPath string
}

// NewBillCommand creates the bill command and its subcommands.
func NewBillCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BillOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Create bills and browse the transaction history",
	}

	newCmd := &cobra.Command{
		Use:           "new",
		Short:         "Open an interactive billing session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return billSession(opts, cmd)
		},
	}

	history := &cobra.Command{
		Use:           "history",
		Short:         "List past transactions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return billHistory(opts, cmd)
		},
	}
	history.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
	history.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")
	history.Flags().StringVar(&opts.Method, "method", "", "filter by payment method")

	show := &cobra.Command{
		Use:           "show <transaction-id>",
		Short:         "Print the receipt for a past transaction",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return billShow(opts, args[0], cmd)
		},
	}

	reportCmd := &cobra.Command{
		Use:           "report",
		Short:         "Sales report for a period",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return billReport(opts, cmd)
		},
	}
	reportCmd.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&opts.CSVPath, "csv", "", "also write the report as CSV to this file")

	cmd.AddCommand(newCmd, history, show, reportCmd)
	return cmd
}

const billSessionHelp = `Commands:
  add <product-id> <quantity>   add items to the bill
  remove <line>                 remove a line (1-based)
  items                         show the bill so far
  done [customer] [payment]     complete the sale and print the receipt
  cancel                        abort and restore stock
  help                          show this help
`

// billSession drives the interactive billing loop. Stock is reserved as
// items are added, so quitting any way but "done" restores it via Abort.
func billSession(opts *BillOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	out := cmd.OutOrStdout()
	reg := billing.NewRegister(app.Products, app.Transactions, app.DataDir)
	id, err := reg.Create()
	if err != nil {
		return f.Error(err)
	}
	fmt.Fprintf(out, "Opened bill %s\n", id)
	fmt.Fprint(out, billSessionHelp)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "bill> ")
		if !scanner.Scan() {
			// EOF without done: treat like cancel.
			if abortErr := reg.Abort(); abortErr != nil {
				return f.Error(abortErr)
			}
			fmt.Fprintln(out, "\nBill cancelled, stock restored")
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "add":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: add <product-id> <quantity>")
				continue
			}
			pid, err1 := strconv.ParseInt(fields[1], 10, 32)
			qty, err2 := strconv.ParseInt(fields[2], 10, 32)
			if err1 != nil || err2 != nil {
				fmt.Fprintln(out, "usage: add <product-id> <quantity>")
				continue
			}
			if err := reg.AddItem(int32(pid), int32(qty)); err != nil {
				fmt.Fprintf(out, "cannot add: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Running total: $%.2f\n", reg.Total())

		case "remove":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: remove <line>")
				continue
			}
			line, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintln(out, "usage: remove <line>")
				continue
			}
			if err := reg.RemoveItem(line - 1); err != nil {
				fmt.Fprintf(out, "cannot remove: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Running total: $%.2f\n", reg.Total())

		case "items":
			items := reg.Items()
			if len(items) == 0 {
				fmt.Fprintln(out, "Bill is empty")
				continue
			}
			for i, it := range items {
				fmt.Fprintf(out, "%2d. %-30s %3d x $%8.2f = $%9.2f\n",
					i+1, it.Name, it.Quantity, it.Price, it.Subtotal)
			}
			fmt.Fprintf(out, "Total: $%.2f\n", reg.Total())

		case "done":
			customer, payment := "", ""
			if len(fields) > 1 {
				customer = fields[1]
			}
			if len(fields) > 2 {
				payment = strings.Join(fields[2:], " ")
			}
			t, err := reg.Complete(customer, payment)
			if err != nil {
				fmt.Fprintf(out, "cannot complete: %v\n", err)
				continue
			}
			fmt.Fprint(out, billing.Receipt(t))
			return nil

		case "cancel", "quit", "exit":
			if err := reg.Abort(); err != nil {
				return f.Error(err)
			}
			fmt.Fprintln(out, "Bill cancelled, stock restored")
			return nil

		case "help":
			fmt.Fprint(out, billSessionHelp)

		default:
			fmt.Fprintf(out, "unknown command %q (try help)\n", fields[0])
		}
	}
}

func billHistory(opts *BillOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	txns := app.Transactions.Filter(opts.Start, opts.End, opts.Method)
	if len(txns) == 0 {
		return f.Success(txns, "No transactions found\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %-20s %-12s %-15s %10s\n",
		"ID", "Date", "Customer", "Payment", "Total")
	b.WriteString(strings.Repeat("-", 82) + "\n")
	for _, t := range txns {
		fmt.Fprintf(&b, "%-20s %-20s %-12s %-15s $%9.2f\n",
			t.ID, t.Date, t.CustomerID, t.PaymentMethod, t.Total)
	}
	fmt.Fprintf(&b, "\n%d transaction(s)\n", len(txns))
	return f.Success(txns, b.String())
}

func billShow(opts *BillOptions, id string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	t, err := app.Transactions.Get(id)
	if err != nil {
		return f.Error(err)
	}
	return f.Success(t, billing.Receipt(t))
}

func billReport(opts *BillOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	rep, err := report.Sales(app.Transactions.All(), opts.Start, opts.End)
	if err != nil {
		return f.Error(err)
	}
	if opts.CSVPath != "" {
		err := export.ToFile(opts.CSVPath, func(w io.Writer) error {
			return export.WriteSalesCSV(w, rep)
		})
		if err != nil {
			return f.Error(err)
		}
		f.VerboseLog("wrote %s", opts.CSVPath)
	}
	return f.Success(rep, rep.Text())
}
