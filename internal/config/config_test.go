package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3*time.Second, cfg.TickInterval)
	assert.Equal(t, 0.10, cfg.BaseEventChance)
	assert.Equal(t, 30, cfg.EventGuaranteeDays)
	assert.True(t, cfg.AutoPauseOnImportant)
	assert.True(t, cfg.QuietAutoSkip)
	assert.Equal(t, 0.3, cfg.DecisionBaseChance)
	assert.Equal(t, 0.1, cfg.DecisionChancePerMonth)
	assert.Equal(t, 0.8, cfg.DecisionChanceCap)
	assert.Equal(t, 0.75, cfg.BaseApprovalRate)
	assert.Equal(t, 0.5, cfg.RFEPenalty)
	assert.Equal(t, 0.02, cfg.DebtInstallmentRate)
	assert.Equal(t, 200, cfg.DebtInstallmentFlat)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, "pending.db", cfg.SavePath)
	assert.Empty(t, cfg.ListenAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PENDING_TICK_INTERVAL", "500ms")
	t.Setenv("PENDING_BASE_EVENT_CHANCE", "0.25")
	t.Setenv("PENDING_QUIET_AUTO_SKIP", "false")
	t.Setenv("PENDING_HISTORY_LIMIT", "10")
	t.Setenv("PENDING_LISTEN_ADDR", ":8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 0.25, cfg.BaseEventChance)
	assert.False(t, cfg.QuietAutoSkip)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, ":8080", cfg.ListenAddr)

	// Untouched knobs keep their defaults.
	assert.Equal(t, 0.75, cfg.BaseApprovalRate)
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("PENDING_TICK_INTERVAL", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
