package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[logs]
level = "debug"

[metrics]
enabled = true
textfile_path = "/tmp/scheduler.prom"

[database]
host = "db"
user = "smc"
password = "secret"
dbname = "bookings"

[scheduler]
max_parallel = 3
overlap_scope = "all"
overlap_window_days = 14
timezone = "Europe/Moscow"

[demand]
enabled = true
seed = 42
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "smc_slot_scheduler", cfg.Metrics.ServiceName)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3, cfg.Scheduler.MaxParallel)
	assert.Equal(t, 60, cfg.Scheduler.BufferMinutes)
	assert.Equal(t, 0.3, cfg.Scheduler.AvgThreshold)
	assert.Equal(t, "all", cfg.Scheduler.OverlapScope)
	assert.Equal(t, 14, cfg.Scheduler.OverlapWindowDays)
	assert.Equal(t, uint64(42), cfg.Demand.Seed)
	assert.Equal(t, []int{8, 12, 18, 20}, cfg.Demand.PeakHours)
	assert.Equal(t, "host=db port=5432 user=smc password=secret dbname=bookings sslmode=disable", cfg.Database.DSN())

	loc, err := cfg.Scheduler.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing database user",
			content: "[database]\nhost = \"db\"\ndbname = \"x\"\n",
		},
		{
			name:    "zero max parallel",
			content: "[database]\nuser = \"u\"\ndbname = \"x\"\n[scheduler]\nmax_parallel = 0\n",
		},
		{
			name:    "unknown overlap scope",
			content: "[database]\nuser = \"u\"\ndbname = \"x\"\n[scheduler]\noverlap_scope = \"week\"\n",
		},
		{
			name:    "negative overlap window",
			content: "[database]\nuser = \"u\"\ndbname = \"x\"\n[scheduler]\noverlap_window_days = -1\n",
		},
		{
			name:    "peak hour out of range",
			content: "[database]\nuser = \"u\"\ndbname = \"x\"\n[demand]\npeak_hours = [25]\n",
		},
		{
			name:    "unknown log level",
			content: "[logs]\nlevel = \"trace\"\n[database]\nuser = \"u\"\ndbname = \"x\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
