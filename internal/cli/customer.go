package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baxley/shopbook/internal/ledger"
)

// CustomerOptions holds flags for the customer subcommands.
type CustomerOptions struct {
	*RootOptions
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
	Sort    string
}

// NewCustomerCommand creates the customer command and its subcommands.
func NewCustomerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CustomerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage the customer book",
	}

	add := &cobra.Command{
		Use:           "add",
		Short:         "Add a customer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return customerAdd(opts, cmd)
		},
	}
	add.Flags().StringVar(&opts.Name, "name", "", "customer name (required)")
	add.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	add.Flags().StringVar(&opts.Email, "email", "", "email address")
	add.Flags().StringVar(&opts.Address, "address", "", "postal address")
	add.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List customers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return customerList(opts, cmd)
		},
	}
	list.Flags().StringVar(&opts.Sort, "sort", "id", "sort order (id|name)")

	show := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one customer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return customerShow(opts, args[0], cmd)
		},
	}

	edit := &cobra.Command{
		Use:           "edit <id>",
		Short:         "Edit a customer's fields",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return customerEdit(opts, args[0], cmd)
		},
	}
	edit.Flags().StringVar(&opts.Name, "name", "", "new name")
	edit.Flags().StringVar(&opts.Phone, "phone", "", "new phone number")
	edit.Flags().StringVar(&opts.Email, "email", "", "new email address")
	edit.Flags().StringVar(&opts.Address, "address", "", "new postal address")
	edit.Flags().StringVar(&opts.Notes, "notes", "", "new notes")

	del := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a customer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return customerDelete(opts, args[0], cmd)
		},
	}

	search := &cobra.Command{
		Use:           "search <query>",
		Short:         "Search customers by name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return customerSearch(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(add, list, show, edit, del, search)
	return cmd
}

func customerAdd(opts *CustomerOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	c := ledger.Customer{
		ID:      app.NextCustomerID(),
		Name:    opts.Name,
		Phone:   opts.Phone,
		Email:   opts.Email,
		Address: opts.Address,
		Notes:   opts.Notes,
	}
	if err := app.Customers.Add(c); err != nil {
		return f.Error(err)
	}
	if err := app.Customers.Save(app.DataDir); err != nil {
		return f.Error(err)
	}
	return f.Success(c, fmt.Sprintf("Added customer %d: %s\n", c.ID, c.Name))
}

func customerList(opts *CustomerOptions, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}
	customers, err := app.Customers.SortedBy(ledger.CustomerSort(opts.Sort))
	if err != nil {
		return f.Error(err)
	}
	return f.Success(customers, renderCustomers(customers))
}

func customerShow(opts *CustomerOptions, arg string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	id, err := parseID(arg, "customer")
	if err != nil {
		return f.Error(err)
	}
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	c, err := app.Customers.Get(id)
	if err != nil {
		return f.Error(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customer %d\n", c.ID)
	fmt.Fprintf(&b, "  Name:    %s\n", c.Name)
	if c.Phone != "" {
		fmt.Fprintf(&b, "  Phone:   %s\n", c.Phone)
	}
	if c.Email != "" {
		fmt.Fprintf(&b, "  Email:   %s\n", c.Email)
	}
	if c.Address != "" {
		fmt.Fprintf(&b, "  Address: %s\n", c.Address)
	}
	if c.Notes != "" {
		fmt.Fprintf(&b, "  Notes:   %s\n", c.Notes)
	}
	return f.Success(c, b.String())
}

func customerEdit(opts *CustomerOptions, arg string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	id, err := parseID(arg, "customer")
	if err != nil {
		return f.Error(err)
	}
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	c, err := app.Customers.Get(id)
	if err != nil {
		return f.Error(err)
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		c.Name = opts.Name
	}
	if flags.Changed("phone") {
		c.Phone = opts.Phone
	}
	if flags.Changed("email") {
		c.Email = opts.Email
	}
	if flags.Changed("address") {
		c.Address = opts.Address
	}
	if flags.Changed("notes") {
		c.Notes = opts.Notes
	}

	if err := app.Customers.Update(c); err != nil {
		return f.Error(err)
	}
	if err := app.Customers.Save(app.DataDir); err != nil {
		return f.Error(err)
	}
	return f.Success(c, fmt.Sprintf("Updated customer %d\n", c.ID))
}

func customerDelete(opts *CustomerOptions, arg string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	id, err := parseID(arg, "customer")
	if err != nil {
		return f.Error(err)
	}
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}

	if err := app.Customers.Delete(id); err != nil {
		return f.Error(err)
	}
	if err := app.Customers.Save(app.DataDir); err != nil {
		return f.Error(err)
	}
	return f.Success(map[string]any{"deleted": id},
		fmt.Sprintf("Deleted customer %d\n", id))
}

func customerSearch(opts *CustomerOptions, query string, cmd *cobra.Command) error {
	f := formatterFor(opts.RootOptions, cmd)
	app, err := LoadApp(opts.RootOptions)
	if err != nil {
		return f.Error(err)
	}
	customers := app.Customers.SearchByName(query)
	return f.Success(customers, renderCustomers(customers))
}

func renderCustomers(customers []ledger.Customer) string {
	if len(customers) == 0 {
		return "No customers found\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-30s %-15s %s\n", "ID", "Name", "Phone", "Email")
	b.WriteString(strings.Repeat("-", 75) + "\n")
	for _, c := range customers {
		fmt.Fprintf(&b, "%-5d %-30s %-15s %s\n", c.ID, c.Name, c.Phone, c.Email)
	}
	fmt.Fprintf(&b, "\n%d customer(s)\n", len(customers))
	return b.String()
}
