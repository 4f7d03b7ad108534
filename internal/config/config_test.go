package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KANDORO_DB_PATH", "")
	t.Setenv("KANDORO_WORK_MINUTES", "")
	t.Setenv("KANDORO_BREAK_MINUTES", "")

	cfg := Load()
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, 25*time.Minute, cfg.WorkSession)
	assert.Equal(t, 5*time.Minute, cfg.BreakSession)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("KANDORO_DB_PATH", "/tmp/kandoro-test.db")
	t.Setenv("KANDORO_WORK_MINUTES", "50")
	t.Setenv("KANDORO_BREAK_MINUTES", "10")

	cfg := Load()
	assert.Equal(t, "/tmp/kandoro-test.db", cfg.DBPath)
	assert.Equal(t, 50*time.Minute, cfg.WorkSession)
	assert.Equal(t, 10*time.Minute, cfg.BreakSession)
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	t.Setenv("KANDORO_WORK_MINUTES", "not-a-number")
	t.Setenv("KANDORO_BREAK_MINUTES", "-3")

	cfg := Load()
	assert.Equal(t, 25*time.Minute, cfg.WorkSession)
	assert.Equal(t, 5*time.Minute, cfg.BreakSession)
}
