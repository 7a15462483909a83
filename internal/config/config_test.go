package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SCHEDULER_CONFIG", "")
	t.Setenv("SLOT_STEP_MINUTES", "")
	t.Setenv("MIN_LEAD_MINUTES", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultSlotStepMinutes, cfg.Scheduling.SlotStepMinutes)
	assert.Equal(t, DefaultMinLeadMinutes, cfg.Scheduling.MinLeadMinutes)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "notifications:intents", cfg.NotificationQueue)
}

func TestLoad_TOMLThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheduler.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scheduling]\nslot_step_minutes = 15\nmin_lead_minutes = 60\n"), 0o600))

	t.Setenv("SCHEDULER_CONFIG", path)
	t.Setenv("SLOT_STEP_MINUTES", "")
	t.Setenv("MIN_LEAD_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Scheduling.SlotStepMinutes)
	assert.Equal(t, 60, cfg.Scheduling.MinLeadMinutes)

	t.Setenv("MIN_LEAD_MINUTES", "0")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Scheduling.SlotStepMinutes)
	assert.Equal(t, 0, cfg.Scheduling.MinLeadMinutes)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv("SCHEDULER_CONFIG", "")
	t.Setenv("MIN_LEAD_MINUTES", "")

	t.Setenv("SLOT_STEP_MINUTES", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SLOT_STEP_MINUTES", "abc")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("SCHEDULER_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("SCHEDULER_CONFIG", "")
	t.Setenv("SLOT_STEP_MINUTES", "")
	t.Setenv("MIN_LEAD_MINUTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://navalha.example, ,https://admin.navalha.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://navalha.example", "https://admin.navalha.example"}, cfg.CORSOrigins)
}
