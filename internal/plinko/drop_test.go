package plinko

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/plinko-backend/internal/board"
)

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	f, err := board.Builtin()
	require.NoError(t, err)
	b, err := board.New(f.Tiers, f.Default)
	require.NoError(t, err)
	return b
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDropBall_MittelScenario(t *testing.T) {
	cfg := testBoard(t).Active()
	require.Equal(t, "Mittel", cfg.Tier)

	src := Moves(+1, +1, +1, +1, -1, -1, -1, -1)
	res, err := DropBall(dec("100"), dec("1000"), cfg, src)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 6, 7, 8, 7, 6, 5, 4}, res.Trajectory)
	assert.Equal(t, 4, res.FinalColumn)
	assert.Equal(t, 0.5, res.Multiplier)
	assert.True(t, res.Payout.Equal(dec("50")), "payout %s", res.Payout)
	assert.True(t, res.BalanceAfterDebit.Equal(dec("900")))
	assert.True(t, res.FinalBalance.Equal(dec("950")), "final %s", res.FinalBalance)
	assert.True(t, res.Delta.Equal(dec("-50")))
	assert.Equal(t, "Mittel", res.Tier)
	assert.NotEqual(t, [16]byte{}, [16]byte(res.ID))

	// the forced bounce at column 8 does not draw a decision
	assert.Equal(t, 7, src.Consumed())
}

func TestDropBall_AlwaysRightClampsAtWall(t *testing.T) {
	cfg := testBoard(t).Active()

	res, err := DropBall(dec("100"), dec("1000"), cfg, NewSequence(true))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 7, 8, 7, 8, 7, 8}, res.Trajectory)
	assert.Equal(t, 8, res.FinalColumn)
	assert.True(t, res.FinalBalance.Equal(dec("1000")))
}

func TestDropBall_AlwaysLeftClampsAtWall(t *testing.T) {
	cfg := testBoard(t).Active()

	res, err := DropBall(dec("10"), dec("10"), cfg, NewSequence(false))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1, 0, 1, 0, 1, 0}, res.Trajectory)
	assert.True(t, res.BalanceAfterDebit.IsZero())
	assert.True(t, res.FinalBalance.Equal(dec("10")))
}

func TestDropBall_Errors(t *testing.T) {
	cfg := testBoard(t).Active()

	tests := []struct {
		name    string
		bet     string
		balance string
		want    error
	}{
		{name: "zero bet", bet: "0", balance: "1000", want: ErrInvalidBet},
		{name: "negative bet", bet: "-5", balance: "1000", want: ErrInvalidBet},
		{name: "bet above balance", bet: "1000.01", balance: "1000", want: ErrInsufficientFunds},
		{name: "empty balance", bet: "1", balance: "0", want: ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSequence(true)
			res, err := DropBall(dec(tt.bet), dec(tt.balance), cfg, src)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, src.Consumed())
		})
	}
}

func TestDropBall_BetEqualToBalance(t *testing.T) {
	cfg := testBoard(t).Active()
	_, err := DropBall(dec("1000"), dec("1000"), cfg, NewSeededSource(7))
	assert.NoError(t, err)
}

func TestDropBall_InvalidConfig(t *testing.T) {
	cfg := testBoard(t).Active()
	cfg.Multipliers = cfg.Multipliers[:5]

	_, err := DropBall(dec("1"), dec("10"), cfg, NewSeededSource(1))
	var cerr *board.ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestDropBall_Properties(t *testing.T) {
	b := testBoard(t)
	src := NewSeededSource(42)
	bet, balance := dec("12.5"), dec("1000")

	for _, name := range b.ListTiers() {
		cfg, err := b.Tier(name)
		require.NoError(t, err)

		for i := 0; i < 2000; i++ {
			res, err := DropBall(bet, balance, cfg, src)
			require.NoError(t, err)

			require.Len(t, res.Trajectory, cfg.Rows)
			prev := board.StartColumn
			for _, col := range res.Trajectory {
				d := col - prev
				require.True(t, d == 1 || d == -1, "step %d -> %d", prev, col)
				require.GreaterOrEqual(t, col, 0)
				require.LessOrEqual(t, col, board.ColumnCount-1)
				if prev == 0 {
					require.Equal(t, 1, col)
				}
				if prev == board.ColumnCount-1 {
					require.Equal(t, board.ColumnCount-2, col)
				}
				prev = col
			}

			want := balance.Sub(bet).Add(bet.Mul(decimal.NewFromFloat(cfg.Multipliers[res.FinalColumn])))
			require.True(t, res.FinalBalance.Equal(want), "tier %s: %s != %s", name, res.FinalBalance, want)
		}
	}
}

func TestDropBall_Deterministic(t *testing.T) {
	cfg := testBoard(t).Active()

	a, err := DropBall(dec("5"), dec("50"), cfg, NewSeededSource(99))
	require.NoError(t, err)
	b, err := DropBall(dec("5"), dec("50"), cfg, NewSeededSource(99))
	require.NoError(t, err)

	assert.Equal(t, a.Trajectory, b.Trajectory)
	assert.True(t, a.FinalBalance.Equal(b.FinalBalance))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBetResult_RowsAndMessage(t *testing.T) {
	cfg := testBoard(t).Active()
	res, err := DropBall(dec("100"), dec("1000"), cfg, Moves(+1, +1, +1, +1, -1, -1, -1, -1))
	require.NoError(t, err)

	var rows, cols []int
	for r, c := range res.Rows() {
		rows = append(rows, r)
		cols = append(cols, c)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, rows)
	assert.Equal(t, res.Trajectory, cols)
	assert.Equal(t, "The ball landed in slot 4 with multiplier 0.5. You win 50.", res.Message())
}
