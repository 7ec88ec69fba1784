package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baxley/shopbook/internal/ledger"
)

// ProductOptions holds flags for the product subcommands.
type ProductOptions struct {
	*RootOptions
	Name        string
	Price       float64
	Quantity    int32
	Category    string
	Description string
	Sort        string
	Threshold   int32
}

// NewProductCommand creates the product command and its subcommands.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product inventory",
	}

	add := &cobra.Command{
		Use:           "add",
		Short:         "Add a product",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return productAdd(opts, cmd)
		},
	}
	add.Flags().StringVar(&opts.Name, "name", "", "product name (required)")
	add.Flags().Float64Var(&opts.Price, "price", 0, "unit price (required)")
	add.Flags().Int32Var(&opts.Quantity, "quantity", 0, "stock quantity")
	add.Flags().StringVar(&opts.Category, "category", "", "category name")
	add.Flags().StringVar(&opts.Description, "description", "", "description")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("price")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List products",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return productList(opts, cmd)
		},
	}
	list.Flags().StringVar(&opts.Sort, "sort", "id", "sort order (id|name|price|quantity)")
	list.Flags().StringVar(&opts.Category, "category", "", "filter by category")

	show := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one product",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return productShow(opts, args[0], cmd)
		},
	}

	edit := &cobra.Command{
		Use:           "edit <id>",
		Short:         "Edit a product's fields",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return productEdit(opts, args[0], cmd)
		},
	}
	edit.Flags().StringVar(&opts.Name, "name", "", "new name")
	edit.Flags().Float64Var(&opts.Price, "price", 0, "new price")
	edit.Flags().Int32Var(&opts.Quantity, "quantity", 0, "new quantity")
	edit.Flags().StringVar(&opts.Category, "category", "", "new category")
	edit.Flags().StringVar(&opts.Description, "description", "", "new description")

	del := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a product",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return productDelete(opts, args[0], cmd)
		},
	}

	search := &cobra.Command{
		Use:           "search <query>",
		Short:         "Search products by name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return productSearch(opts, args[0], cmd)
		},
	}

	lowStock := &cobra.Command{
		Use:           "low-stock",
		Short:         "List products below the low-stock threshold",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return productLowStock(opts, cmd)
		},
	}
	lowStock.Flags().Int32Var(&opts.Threshold, "threshold", -1, "override the configured threshold")

	cmd.AddCommand(add, list, show, edit, del, search, lowStock)
	return cmd
}

func formatterFor(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func parseID(arg, entity string) (int32, error) {
	id, err := strconv.ParseInt(arg, 10, 32)
	if err != nil || id < 1 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid %s id %q", entity, arg))
	}
	return int32(id), nil
}

func productAdd(opts *ProductOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	p := ledger.Product{
		ID:          app.NextProductID(),
		Name:        opts.Name,
		Price:       opts.Price,
		Quantity:    opts.Quantity,
		Category:    ledger.NormalizeCategory(opts.Category),
		Description: opts.Description,
	}
	if err := app.Products.Add(p); err != nil {
		return f.Error(err)
	}
	if err := app.Products.Save(app.DataDir); err != nil {
		return f.Error(err)
	}
	return f.Success(p, fmt.Sprintf("Added product %d: %s\n", p.ID, p.Name))
}

func productList(opts *ProductOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	var products []ledger.Product
	if opts.Category != "" {
		products = app.Products.ByCategory(opts.Category)
	} else {
		products, err = app.Products.SortedBy(ledger.ProductSort(opts.Sort))
		if err != nil {
			return f.Error(err)
		}
	}
	return f.Success(products, renderProducts(products))
}

func productShow(opts *ProductOptions, arg string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	id, err := parseID(arg, "product")
	if err != nil {
		return f.Error(err)
	}
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	p, err := app.Products.Get(id)
	if err != nil {
		return f.Error(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Product %d\n", p.ID)
	fmt.Fprintf(&b, "  Name:        %s\n", p.Name)
	fmt.Fprintf(&b, "  Price:       $%.2f\n", p.Price)
	fmt.Fprintf(&b, "  Quantity:    %d\n", p.Quantity)
	fmt.Fprintf(&b, "  Category:    %s\n", p.Category)
	if p.Description != "" {
		fmt.Fprintf(&b, "  Description: %s\n", p.Description)
	}
	return f.Success(p, b.String())
}

func productEdit(opts *ProductOptions, arg string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	id, err := parseID(arg, "product")
	if err != nil {
		return f.Error(err)
	}
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	p, err := app.Products.Get(id)
	if err != nil {
		return f.Error(err)
	}

	// Only flags the user actually set change the record.
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = opts.Name
	}
	if flags.Changed("price") {
		p.Price = opts.Price
	}
	if flags.Changed("quantity") {
		p.Quantity = opts.Quantity
	}
	if flags.Changed("category") {
		p.Category = ledger.NormalizeCategory(opts.Category)
	}
	if flags.Changed("description") {
		p.Description = opts.Description
	}

	if err := app.Products.Update(p); err != nil {
		return f.Error(err)
	}
	if err := app.Products.Save(app.DataDir); err != nil {
		return f.Error(err)
	}
	return f.Success(p, fmt.Sprintf("Updated product %d\n", p.ID))
}

func productDelete(opts *ProductOptions, arg string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	id, err := parseID(arg, "product")
	if err != nil {
		return f.Error(err)
	}
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	if err := app.Products.Delete(id); err != nil {
		return f.Error(err)
	}
	if err := app.Products.Save(app.DataDir); err != nil {
		return f.Error(err)
	}
	return f.Success(map[string]any{"deleted": id},
		fmt.Sprintf("Deleted product %d\n", id))
}

func productSearch(opts *ProductOptions, query string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}
	products := app.Products.SearchByName(query)
	return f.Success(products, renderProducts(products))
}

func productLowStock(opts *ProductOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	threshold := app.Config.LowStockThreshold
	if opts.Threshold >= 0 {
		threshold = opts.Threshold
	}
	products := app.Products.LowStock(threshold)
	if len(products) == 0 {
		return f.Success(products, fmt.Sprintf("No products below quantity %d\n", threshold))
	}
	return f.Success(products, renderProducts(products))
}

func renderProducts(products []ledger.Product) string {
	if len(products) == 0 {
		return "No products found\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-30s %10s %8s  %s\n", "ID", "Name", "Price", "Qty", "Category")
	b.WriteString(strings.Repeat("-", 75) + "\n")
	for _, p := range products {
		fmt.Fprintf(&b, "%-5d %-30s $%9.2f %8d  %s\n", p.ID, p.Name, p.Price, p.Quantity, p.Category)
	}
	fmt.Fprintf(&b, "\n%d product(s)\n", len(products))
	return b.String()
}
