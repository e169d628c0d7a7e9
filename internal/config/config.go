package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Load reads a .env file into the process environment. Variables already
// set in the environment win.
func Load(path string) error {
	return godotenv.Load(path)
}

type HTTPConfig interface {
	Address() string
}

type GameConfig interface {
	TiersFile() string
	DefaultTier() string
	StartingBalance() decimal.Decimal
	DefaultBet() decimal.Decimal
}

type AutoplayConfig interface {
	Interval() time.Duration
	RowDelay() time.Duration
}

type LogConfig interface {
	Level() string
	Format() string
	Environment() string
}
