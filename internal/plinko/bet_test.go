package plinko

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBet(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		invalid bool
	}{
		{raw: "100", want: "100"},
		{raw: " 12.5 ", want: "12.5"},
		{raw: "1e2", want: "100"},
		{raw: "0.01", want: "0.01"},
		{raw: "", invalid: true},
		{raw: "   ", invalid: true},
		{raw: "abc", invalid: true},
		{raw: "0", invalid: true},
		{raw: "-10", invalid: true},
		{raw: "NaN", invalid: true},
		{raw: "Inf", invalid: true},
		{raw: "10 coins", invalid: true},
		{raw: "0.12345678", want: "0.12345678"},
		{raw: "1.50000000000", want: "1.5"},
		{raw: "999999999999999", want: "999999999999999"},
		{raw: "0.123456789", invalid: true},
		{raw: "1e-30000000", invalid: true},
		{raw: "1e30000000", invalid: true},
		{raw: "1e15", invalid: true},
		{raw: "1000000000000000", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseBet(tt.raw)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidBet)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestBetFromFloat(t *testing.T) {
	got, err := BetFromFloat(2.5)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("2.5")))

	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1), 1e-300, 1e300} {
		_, err := BetFromFloat(f)
		assert.ErrorIs(t, err, ErrInvalidBet, "%v", f)
	}
}

func TestParseBet_HugeExponentIsCheap(t *testing.T) {
	start := time.Now()
	for range 100 {
		_, err := ParseBet("1e-2147483000")
		require.ErrorIs(t, err, ErrInvalidBet)
	}
	assert.Less(t, time.Since(start), time.Second)
}
