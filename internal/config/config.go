// Package config holds the tunable knobs of the simulation. Values come
// from the environment with sensible defaults, so a headless run needs no
// flags at all.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config tunes time flow, event pacing, adjudication odds, and finances.
type Config struct {
	// Time flow.
	TickInterval time.Duration `env:"PENDING_TICK_INTERVAL" envDefault:"3s"`

	// Event pacing.
	BaseEventChance    float64 `env:"PENDING_BASE_EVENT_CHANCE" envDefault:"0.10"`
	EventGuaranteeDays int     `env:"PENDING_EVENT_GUARANTEE_DAYS" envDefault:"30"`

	// Interrupt handling.
	AutoPauseOnImportant bool `env:"PENDING_AUTO_PAUSE_IMPORTANT" envDefault:"true"`
	QuietAutoSkip        bool `env:"PENDING_QUIET_AUTO_SKIP" envDefault:"true"`

	// Application adjudication.
	DecisionBaseChance     float64 `env:"PENDING_DECISION_BASE_CHANCE" envDefault:"0.3"`
	DecisionChancePerMonth float64 `env:"PENDING_DECISION_CHANCE_PER_MONTH" envDefault:"0.1"`
	DecisionChanceCap      float64 `env:"PENDING_DECISION_CHANCE_CAP" envDefault:"0.8"`
	BaseApprovalRate       float64 `env:"PENDING_BASE_APPROVAL_RATE" envDefault:"0.75"`
	RFEPenalty             float64 `env:"PENDING_RFE_PENALTY" envDefault:"0.5"`

	// Finances.
	DebtInstallmentRate float64 `env:"PENDING_DEBT_INSTALLMENT_RATE" envDefault:"0.02"`
	DebtInstallmentFlat int     `env:"PENDING_DEBT_INSTALLMENT_FLAT" envDefault:"200"`

	// Save bookkeeping.
	HistoryLimit int    `env:"PENDING_HISTORY_LIMIT" envDefault:"100"`
	SavePath     string `env:"PENDING_SAVE_PATH" envDefault:"pending.db"`

	// API server.
	ListenAddr string `env:"PENDING_LISTEN_ADDR" envDefault:""`
}

// Default returns the built-in configuration without consulting the
// environment.
func Default() Config {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{}})
	if err != nil {
		// Defaults are static tags; parsing them cannot fail.
		panic(err)
	}
	return cfg
}

// Load reads the configuration from the environment on top of defaults.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
