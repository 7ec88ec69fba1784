package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsReproduceOriginalConstants(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1.05, cfg.Forecast.RevenueGrowth)
	assert.Equal(t, 1.03, cfg.Forecast.ExpenseGrowth)
	assert.Equal(t, 3, cfg.Forecast.WindowMonths)
	assert.Equal(t, "data", cfg.DataDir)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data_dir: /var/lib/shopbook\nforecast:\n  revenue_growth: 1.10\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/shopbook", cfg.DataDir)
	assert.Equal(t, 1.10, cfg.Forecast.RevenueGrowth)
	assert.Equal(t, 1.03, cfg.Forecast.ExpenseGrowth, "unset fields keep defaults")
	assert.Equal(t, 3, cfg.Forecast.WindowMonths)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero growth", "forecast:\n  revenue_growth: 0\n"},
		{"negative expense growth", "forecast:\n  expense_growth: -1.03\n"},
		{"zero window", "forecast:\n  window_months: 0\n"},
		{"empty data dir", "data_dir: \"\"\n"},
		{"negative threshold", "low_stock_threshold: -2\n"},
		{"malformed yaml", "forecast: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shopbook.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
