package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/forecast"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Forecast.Horizon)
	assert.Equal(t, forecast.BandResidual, cfg.Forecast.BandPolicy)
	assert.Equal(t, dataset.DefaultForecastKPIs, cfg.Forecast.KPIs)
	assert.Equal(t, 10*time.Minute, cfg.Scheduler.RefreshInterval)
	assert.Equal(t, 6, cfg.Partnership.CommissionMonths)
	assert.InDelta(t, 0.15, cfg.Partnership.CommissionRate, 1e-12)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
forecast:
  horizon: 6
  band_policy: fixed
  band_percent: 0.2
  kpis: [leads, roi]
scheduler:
  refresh_interval: 30s
logging:
  verbose: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 6, cfg.Forecast.Horizon)
	assert.Equal(t, []string{"leads", "roi"}, cfg.Forecast.KPIs)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.RefreshInterval)
	assert.True(t, cfg.Logging.Verbose)

	band, err := cfg.Band()
	require.NoError(t, err)
	assert.Equal(t, forecast.FixedPercent{P: 0.2}, band)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DASHBOARD_FORECAST_HORIZON", "5")
	t.Setenv("DASHBOARD_SERVER_ADDR", ":7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Forecast.Horizon)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative horizon", "forecast:\n  horizon: -1\n"},
		{"unknown band", "forecast:\n  band_policy: gaussian\n"},
		{"negative percent", "forecast:\n  band_policy: fixed\n  band_percent: -0.1\n"},
		{"unknown kpi", "forecast:\n  kpis: [bounce_rate]\n"},
		{"zero interval", "scheduler:\n  refresh_interval: 0s\n"},
		{"bad commission", "partnership:\n  commission_rate: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDashboardConfig(t *testing.T) {
	cfg := Default()
	cfg.Forecast.BandPolicy = forecast.BandFixed

	dc, err := cfg.DashboardConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, dc.Forecast.Horizon)
	assert.Equal(t, forecast.FixedPercent{P: 0.10}, dc.Forecast.Band)
	assert.Equal(t, 6, dc.Partnership.CommissionMonths)
	assert.Equal(t, dataset.DefaultForecastKPIs, dc.KPIs)
}
