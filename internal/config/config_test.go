package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		type Config struct {
			Alert     config.Alert
			Scheduler config.Scheduler
			HTTP      config.HTTP
		}

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.Alert.StockThreshold)
		assert.Equal(t, 10*time.Minute, cfg.Scheduler.SweepInterval)
		assert.Equal(t, "09:00", cfg.Scheduler.DailySweepAt.String())
		assert.Equal(t, "00:00", cfg.Scheduler.AlertReconcileAt.String())
		assert.Equal(t, uint32(8000), cfg.HTTP.Port)
	})

	t.Run("Should read overrides from the environment", func(t *testing.T) {
		t.Setenv("STOCK_ALERT_THRESHOLD", "25")
		t.Setenv("SCHEDULER_DAILY_SWEEP_AT", "18:30")

		type Config struct {
			Alert     config.Alert
			Scheduler config.Scheduler
		}

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, 25, cfg.Alert.StockThreshold)
		assert.Equal(t, config.ClockTime{Hour: 18, Minute: 30}, cfg.Scheduler.DailySweepAt)
	})

	t.Run("Should reject a malformed clock time", func(t *testing.T) {
		t.Setenv("SCHEDULER_DAILY_SWEEP_AT", "25:99")

		type Config struct {
			Scheduler config.Scheduler
		}

		_, err := config.New[Config]()
		assert.Error(t, err)
	})
}

func TestClockTimeNext(t *testing.T) {
	base := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

	t.Run("Should pick today when the time is still ahead", func(t *testing.T) {
		next := config.ClockTime{Hour: 9}.Next(base)
		assert.Equal(t, time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), next)
	})

	t.Run("Should roll over to tomorrow when the time has passed", func(t *testing.T) {
		next := config.ClockTime{Hour: 8}.Next(base)
		assert.Equal(t, time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC), next)
	})

	t.Run("Should never return now itself", func(t *testing.T) {
		next := config.ClockTime{Hour: 8, Minute: 30}.Next(base)
		assert.Equal(t, time.Date(2025, 6, 16, 8, 30, 0, 0, time.UTC), next)
	})
}

func TestMailEnabled(t *testing.T) {
	assert.False(t, config.Mail{}.Enabled())
	assert.True(t, config.Mail{Host: "smtp.example.com", From: "noreply@example.com", AdminEmail: "admin@example.com"}.Enabled())
}

func TestSheetsEnabled(t *testing.T) {
	assert.False(t, config.Sheets{}.Enabled())
	assert.True(t, config.Sheets{CredentialsFile: "/etc/creds.json", SpreadsheetID: "abc"}.Enabled())
}
