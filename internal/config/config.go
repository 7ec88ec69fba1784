// Package config loads the optional shopbook configuration file.
//
// Configuration is a single small YAML document. Every field has a default
// reproducing the original tool's hard-coded constants, so a missing file
// is a complete, valid configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory
// when --config is not given.
const DefaultFileName = "shopbook.yaml"

// Forecast holds the toy forecast model's parameters. The model is a crude
// average compounded by a fixed monthly growth rate; these knobs exist so
// the constants are replaceable without being silently different.
type Forecast struct {
	// RevenueGrowth is the compounded monthly revenue growth factor.
	RevenueGrowth float64 `yaml:"revenue_growth"`

	// ExpenseGrowth is the compounded monthly expense growth factor.
	ExpenseGrowth float64 `yaml:"expense_growth"`

	// WindowMonths is the assumed span of the observed data in months.
	// The monthly average divides the window total by this.
	WindowMonths int `yaml:"window_months"`
}

// Config is the full shopbook configuration.
type Config struct {
	// DataDir holds the four store snapshot files. Relative paths are
	// resolved against the working directory.
	DataDir string `yaml:"data_dir"`

	// LowStockThreshold is the default quantity below which a product
	// counts as low stock.
	LowStockThreshold int32 `yaml:"low_stock_threshold"`

	Forecast Forecast `yaml:"forecast"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataDir:           "data",
		LowStockThreshold: 5,
		Forecast: Forecast{
			RevenueGrowth: 1.05,
			ExpenseGrowth: 1.03,
			WindowMonths:  3,
		},
	}
}

// Load reads the configuration from path, filling unset fields with
// defaults. A missing file yields Default() with no error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the reporting code cannot use.
func (c Config) Validate() error {
	switch {
	case c.DataDir == "":
		return fmt.Errorf("data_dir must not be empty")
	case c.Forecast.RevenueGrowth <= 0:
		return fmt.Errorf("forecast.revenue_growth must be positive, got %v", c.Forecast.RevenueGrowth)
	case c.Forecast.ExpenseGrowth <= 0:
		return fmt.Errorf("forecast.expense_growth must be positive, got %v", c.Forecast.ExpenseGrowth)
	case c.Forecast.WindowMonths < 1:
		return fmt.Errorf("forecast.window_months must be at least 1, got %d", c.Forecast.WindowMonths)
	case c.LowStockThreshold < 0:
		return fmt.Errorf("low_stock_threshold must not be negative, got %d", c.LowStockThreshold)
	}
	return nil
}
