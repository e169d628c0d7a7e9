package env

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/plinko-backend/internal/plinko"
)

func TestHTTPConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(httpHostEnvName, "")
		t.Setenv(httpPortEnvName, "")
		cfg, err := NewHTTPConfig()
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	})

	t.Run("explicit", func(t *testing.T) {
		t.Setenv(httpHostEnvName, "127.0.0.1")
		t.Setenv(httpPortEnvName, "9000")
		cfg, err := NewHTTPConfig()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9000", cfg.Address())
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv(httpPortEnvName, "http")
		_, err := NewHTTPConfig()
		assert.Error(t, err)
	})
}

func TestGameConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(startingBalanceEnvName, "")
		t.Setenv(defaultBetEnvName, "")
		t.Setenv(tiersFileEnvName, "")
		t.Setenv(defaultTierEnvName, "")
		cfg, err := NewGameConfig()
		require.NoError(t, err)
		assert.True(t, cfg.StartingBalance().Equal(decimal.NewFromInt(1000)))
		assert.True(t, cfg.DefaultBet().Equal(decimal.NewFromInt(100)))
		assert.Empty(t, cfg.TiersFile())
		assert.Empty(t, cfg.DefaultTier())
	})

	t.Run("explicit", func(t *testing.T) {
		t.Setenv(startingBalanceEnvName, "250.50")
		t.Setenv(defaultBetEnvName, "2.5")
		t.Setenv(tiersFileEnvName, "configs/tiers.yaml")
		t.Setenv(defaultTierEnvName, "Schwer")
		cfg, err := NewGameConfig()
		require.NoError(t, err)
		assert.Equal(t, "250.5", cfg.StartingBalance().String())
		assert.Equal(t, "2.5", cfg.DefaultBet().String())
		assert.Equal(t, "configs/tiers.yaml", cfg.TiersFile())
		assert.Equal(t, "Schwer", cfg.DefaultTier())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv(startingBalanceEnvName, "lots")
		_, err := NewGameConfig()
		assert.Error(t, err)

		t.Setenv(startingBalanceEnvName, "-1")
		_, err = NewGameConfig()
		assert.Error(t, err)

		t.Setenv(startingBalanceEnvName, "1e-30000000")
		_, err = NewGameConfig()
		assert.Error(t, err)
	})

	t.Run("invalid default bet", func(t *testing.T) {
		t.Setenv(startingBalanceEnvName, "")
		for _, raw := range []string{"-5", "0", "ten", "1e-30000000"} {
			t.Setenv(defaultBetEnvName, raw)
			_, err := NewGameConfig()
			assert.ErrorIs(t, err, plinko.ErrInvalidBet, raw)
		}
	})
}

func TestAutoplayConfig(t *testing.T) {
	t.Setenv(autoplayIntervalEnvName, "")
	t.Setenv(autoplayRowDelayEnvName, "")
	cfg, err := NewAutoplayConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Interval())
	assert.Equal(t, 500*time.Millisecond, cfg.RowDelay())

	t.Setenv(autoplayIntervalEnvName, "2s")
	t.Setenv(autoplayRowDelayEnvName, "0s")
	cfg, err = NewAutoplayConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Interval())
	assert.Zero(t, cfg.RowDelay())

	t.Setenv(autoplayIntervalEnvName, "0s")
	_, err = NewAutoplayConfig()
	assert.Error(t, err)

	t.Setenv(autoplayIntervalEnvName, "soon")
	_, err = NewAutoplayConfig()
	assert.Error(t, err)
}

func TestLogConfig(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantLevel  string
		wantFormat string
		wantErr    bool
	}{
		{
			name:       "development defaults",
			env:        map[string]string{appEnvEnvName: "", logLevelEnvName: "", logFormatEnvName: ""},
			wantLevel:  "debug",
			wantFormat: "console",
		},
		{
			name:       "production defaults",
			env:        map[string]string{appEnvEnvName: "prod", logLevelEnvName: "", logFormatEnvName: ""},
			wantLevel:  "info",
			wantFormat: "json",
		},
		{
			name:       "overrides",
			env:        map[string]string{appEnvEnvName: "prod", logLevelEnvName: "WARN", logFormatEnvName: "console"},
			wantLevel:  "warn",
			wantFormat: "console",
		},
		{
			name:    "bad level",
			env:     map[string]string{logLevelEnvName: "loud"},
			wantErr: true,
		},
		{
			name:    "bad format",
			env:     map[string]string{logLevelEnvName: "", logFormatEnvName: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := NewLogConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, cfg.Level())
			assert.Equal(t, tt.wantFormat, cfg.Format())
		})
	}
}
