package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/xtding233/plinko-backend/internal/config"
	"github.com/xtding233/plinko-backend/internal/logger"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logFormatEnvName = "LOG_FORMAT"
	appEnvEnvName    = "APP_ENV"
)

type logConfig struct {
	level       string
	format      string
	environment string
}

func NewLogConfig() (config.LogConfig, error) {
	environment := strings.ToLower(os.Getenv(appEnvEnvName))
	if len(environment) == 0 {
		environment = logger.EnvironmentDev
	}

	defaults := logger.DevelopmentConfig()
	if environment == logger.EnvironmentProduction {
		defaults = logger.ProductionConfig()
	}

	level := strings.ToLower(os.Getenv(logLevelEnvName))
	if len(level) == 0 {
		level = defaults.Level
	}
	switch level {
	case logger.LevelDebug, logger.LevelInfo, logger.LevelWarn, logger.LevelWarning, logger.LevelError:
	default:
		return nil, fmt.Errorf("invalid %s %q", logLevelEnvName, level)
	}

	format := strings.ToLower(os.Getenv(logFormatEnvName))
	if len(format) == 0 {
		format = defaults.Format
	}
	if format != logger.FormatJSON && format != logger.FormatConsole {
		return nil, fmt.Errorf("invalid %s %q", logFormatEnvName, format)
	}

	return &logConfig{
		level:       level,
		format:      format,
		environment: environment,
	}, nil
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Format() string {
	return cfg.format
}

func (cfg *logConfig) Environment() string {
	return cfg.environment
}
