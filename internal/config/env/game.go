package env

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/xtding233/plinko-backend/internal/config"
	"github.com/xtding233/plinko-backend/internal/plinko"
)

const (
	tiersFileEnvName       = "TIERS_FILE"
	defaultTierEnvName     = "DEFAULT_TIER"
	startingBalanceEnvName = "STARTING_BALANCE"
	defaultBetEnvName      = "DEFAULT_BET"
)

var (
	defaultStartingBalance = decimal.NewFromInt(1000)
	defaultBet             = decimal.NewFromInt(100)
)

type gameConfig struct {
	tiersFile       string
	defaultTier     string
	startingBalance decimal.Decimal
	defaultBet      decimal.Decimal
}

func NewGameConfig() (config.GameConfig, error) {
	balance, err := decimalEnv(startingBalanceEnvName, defaultStartingBalance)
	if err != nil {
		return nil, err
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%s must not be negative", startingBalanceEnvName)
	}
	if balance.Exponent() < -64 || !balance.Truncate(plinko.MaxBetScale).Equal(balance) {
		return nil, fmt.Errorf("%s has more than %d decimal places", startingBalanceEnvName, plinko.MaxBetScale)
	}

	bet := defaultBet
	if raw := os.Getenv(defaultBetEnvName); len(raw) != 0 {
		bet, err = plinko.ParseBet(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", defaultBetEnvName, err)
		}
	}

	return &gameConfig{
		tiersFile:       os.Getenv(tiersFileEnvName),
		defaultTier:     os.Getenv(defaultTierEnvName),
		startingBalance: balance,
		defaultBet:      bet,
	}, nil
}

func (cfg *gameConfig) TiersFile() string {
	return cfg.tiersFile
}

func (cfg *gameConfig) DefaultTier() string {
	return cfg.defaultTier
}

func (cfg *gameConfig) StartingBalance() decimal.Decimal {
	return cfg.startingBalance
}

func (cfg *gameConfig) DefaultBet() decimal.Decimal {
	return cfg.defaultBet
}

func decimalEnv(name string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
