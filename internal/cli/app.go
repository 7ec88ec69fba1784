package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/baxley/shopbook/internal/config"
	"github.com/baxley/shopbook/internal/ledger"
	"github.com/baxley/shopbook/internal/store"
)

// App bundles the configuration and the four loaded stores that every
// command works against.
type App struct {
	Config       config.Config
	DataDir      string
	Products     *ledger.ProductStore
	Customers    *ledger.CustomerStore
	Transactions *ledger.TransactionStore
	Financial    *ledger.FinancialStore
}

// LoadApp reads the configuration and loads all four snapshot files.
// Missing snapshots start empty. A corrupt snapshot is reset to empty
// and reported, but does not stop the command: the other stores stay
// usable and the next save overwrites the bad file.
func LoadApp(opts *RootOptions) (*App, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultFileName
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	dataDir := cfg.DataDir
	if opts.DataDir != "" {
		dataDir = opts.DataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, WrapExitError(ExitCommandError, "create data directory", err)
	}

	app := &App{
		Config:       cfg,
		DataDir:      dataDir,
		Products:     ledger.NewProductStore(),
		Customers:    ledger.NewCustomerStore(),
		Transactions: ledger.NewTransactionStore(),
		Financial:    ledger.NewFinancialStore(),
	}

	loads := []struct {
		name string
		load func(string) error
	}{
		{"products", app.Products.Load},
		{"customers", app.Customers.Load},
		{"transactions", app.Transactions.Load},
		{"financial records", app.Financial.Load},
	}
	for _, l := range loads {
		if err := l.load(dataDir); err != nil {
			if store.IsCorrupt(err) {
				slog.Warn("snapshot corrupt, starting empty", "store", l.name, "error", err)
				continue
			}
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("load %s", l.name), err)
		}
	}
	slog.Debug("stores loaded",
		"dir", dataDir,
		"products", app.Products.Len(),
		"customers", app.Customers.Len(),
		"transactions", app.Transactions.Len(),
		"financial", app.Financial.Len(),
	)
	return app, nil
}

// SaveAll writes every store snapshot back to the data directory.
func (a *App) SaveAll() error {
	saves := []struct {
		name string
		save func(string) error
	}{
		{"products", a.Products.Save},
		{"customers", a.Customers.Save},
		{"transactions", a.Transactions.Save},
		{"financial records", a.Financial.Save},
	}
	for _, s := range saves {
		if err := s.save(a.DataDir); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("save %s", s.name), err)
		}
	}
	return nil
}

// NextProductID returns one greater than the highest product id in use.
func (a *App) NextProductID() int32 {
	var max int32
	for _, p := range a.Products.All() {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// NextCustomerID returns one greater than the highest customer id in use.
func (a *App) NextCustomerID() int32 {
	var max int32
	for _, c := range a.Customers.All() {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
