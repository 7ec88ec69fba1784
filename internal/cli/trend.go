package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/baxley/shopbook/internal/export"
	"github.com/baxley/shopbook/internal/report"
)

// TrendOptions holds flags for the trend subcommands.
type TrendOptions struct {
	*RootOptions
	Start     string
	End       string
	ProductID int32
	Category  string
	Months    int
	CSVPath   string
}

// NewTrendCommand creates the trend command and its subcommands.
func NewTrendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TrendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Trend series and forecasts over recorded data",
	}

	rangeFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&opts.Start, "start", "", "start date (YYYY-MM-DD)")
		c.Flags().StringVar(&opts.End, "end", "", "end date (YYYY-MM-DD)")
		c.Flags().StringVar(&opts.CSVPath, "csv", "", "write the series as CSV to this file")
	}

	sales := &cobra.Command{
		Use:           "sales",
		Short:         "Per-transaction sales over time",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return trendSeries(opts, cmd, func(app *App) (report.Series, error) {
				return report.SalesTrend(app.Transactions.All(), opts.Start, opts.End)
			})
		},
	}
	rangeFlags(sales)

	products := &cobra.Command{
		Use:           "products",
		Short:         "Per-product sales over time",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return trendSeries(opts, cmd, func(app *App) (report.Series, error) {
				return report.ProductSalesTrend(app.Transactions.All(), opts.ProductID, opts.Start, opts.End)
			})
		},
	}
	rangeFlags(products)
	products.Flags().Int32Var(&opts.ProductID, "product", 0, "limit to one product id (0 = all)")

	categories := &cobra.Command{
		Use:           "categories",
		Short:         "Sales by product category over time",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return trendSeries(opts, cmd, func(app *App) (report.Series, error) {
				return report.CategorySalesTrend(app.Transactions.All(), app.Products,
					opts.Category, opts.Start, opts.End)
			})
		},
	}
	rangeFlags(categories)
	categories.Flags().StringVar(&opts.Category, "category", "", "limit to one category (empty = all)")

	profit := &cobra.Command{
		Use:           "profit",
		Short:         "Daily income, expenses, and profit",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return trendSeries(opts, cmd, func(app *App) (report.Series, error) {
				return report.ProfitTrend(app.Financial.All(), opts.Start, opts.End)
			})
		},
	}
	rangeFlags(profit)

	expenses := &cobra.Command{
		Use:           "expenses",
		Short:         "Expense entries over time",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return trendSeries(opts, cmd, func(app *App) (report.Series, error) {
				return report.ExpenseTrend(app.Financial.All(), opts.Category, opts.Start, opts.End)
			})
		},
	}
	rangeFlags(expenses)
	expenses.Flags().StringVar(&opts.Category, "category", "", "limit to one category (empty = all)")

	forecast := &cobra.Command{
		Use:           "forecast",
		Short:         "Project revenue, expenses, and profit forward",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return trendForecast(opts, cmd)
		},
	}
	forecast.Flags().IntVar(&opts.Months, "months", 1, "months ahead to project")
	forecast.Flags().StringVar(&opts.CSVPath, "csv", "", "write the forecast as CSV to this file")

	cmd.AddCommand(sales, products, categories, profit, expenses, forecast)
	return cmd
}

func trendSeries(opts *TrendOptions, cmd *cobra.Command, build func(*App) (report.Series, error)) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	s, err := build(app)
	if err != nil {
		return f.Error(err)
	}
	if opts.CSVPath != "" {
		err := export.ToFile(opts.CSVPath, func(w io.Writer) error {
			return export.WriteSeriesCSV(w, s)
		})
		if err != nil {
			return f.Error(err)
		}
		f.VerboseLog("wrote %s", opts.CSVPath)
	}
	return f.Success(s, s.Text())
}

func trendForecast(opts *TrendOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	if opts.Months < 1 {
		return f.Error(NewExitError(ExitCommandError,
			fmt.Sprintf("months must be at least 1, got %d", opts.Months)))
	}
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	forecaster := report.NewForecaster(app.Config.Forecast)
	rep := forecaster.Report(app.Transactions.All(), app.Financial.All(), opts.Months)
	if opts.CSVPath != "" {
		err := export.ToFile(opts.CSVPath, func(w io.Writer) error {
			return export.WriteForecastCSV(w, rep)
		})
		if err != nil {
			return f.Error(err)
		}
		f.VerboseLog("wrote %s", opts.CSVPath)
	}
	return f.Success(rep, rep.Text())
}
