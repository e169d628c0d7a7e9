package env

import (
	"fmt"
	"os"
	"time"

	"github.com/xtding233/plinko-backend/internal/config"
)

const (
	autoplayIntervalEnvName = "AUTOPLAY_INTERVAL"
	autoplayRowDelayEnvName = "AUTOPLAY_ROW_DELAY"

	defaultAutoplayInterval = 5 * time.Second
	defaultAutoplayRowDelay = 500 * time.Millisecond
)

type autoplayConfig struct {
	interval time.Duration
	rowDelay time.Duration
}

func NewAutoplayConfig() (config.AutoplayConfig, error) {
	interval, err := durationEnv(autoplayIntervalEnvName, defaultAutoplayInterval)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%s must be positive", autoplayIntervalEnvName)
	}

	rowDelay, err := durationEnv(autoplayRowDelayEnvName, defaultAutoplayRowDelay)
	if err != nil {
		return nil, err
	}
	if rowDelay < 0 {
		return nil, fmt.Errorf("%s must not be negative", autoplayRowDelayEnvName)
	}

	return &autoplayConfig{
		interval: interval,
		rowDelay: rowDelay,
	}, nil
}

func (cfg *autoplayConfig) Interval() time.Duration {
	return cfg.interval
}

func (cfg *autoplayConfig) RowDelay() time.Duration {
	return cfg.rowDelay
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
