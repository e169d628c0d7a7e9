package plinko

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xtding233/plinko-backend/internal/board"
)

// BetResult is the outcome of one drop.
type BetResult struct {
	ID                uuid.UUID       `json:"id"`
	Tier              string          `json:"tier"`
	Bet               decimal.Decimal `json:"bet"`
	BalanceBefore     decimal.Decimal `json:"balance_before"`
	BalanceAfterDebit decimal.Decimal `json:"balance_after_debit"`
	Trajectory        []int           `json:"trajectory"`
	FinalColumn       int             `json:"final_column"`
	Multiplier        float64         `json:"multiplier"`
	Payout            decimal.Decimal `json:"payout"`
	Delta             decimal.Decimal `json:"delta"` // payout - bet
	FinalBalance      decimal.Decimal `json:"final_balance"`
}

// Rows replays the trajectory as (rowIndex, column) for paced rendering.
func (r *BetResult) Rows() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i, col := range r.Trajectory {
			if !yield(i, col) {
				return
			}
		}
	}
}

// Message is a one-line notification for the player.
func (r *BetResult) Message() string {
	return fmt.Sprintf("The ball landed in slot %d with multiplier %v. You win %s.",
		r.FinalColumn, r.Multiplier, r.Payout.String())
}

// DropBall stakes bet against balance, runs one drop on cfg and settles it.
// - bet <= 0 → ErrInvalidBet; bet > balance → ErrInsufficientFunds.
// - the stake is taken before the walk starts, win or lose.
// - the payout is bet * multiplier of the landing slot.
// Nothing is mutated; the caller applies FinalBalance.
func DropBall(bet, balance decimal.Decimal, cfg board.Config, src BitSource) (*BetResult, error) {
	if !bet.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBet, bet.String())
	}
	if bet.GreaterThan(balance) {
		return nil, fmt.Errorf("%w: bet %s exceeds balance %s", ErrInsufficientFunds, bet.String(), balance.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = DefaultSource()
	}

	afterDebit := balance.Sub(bet)
	path := Trajectory(cfg.Rows, src)
	final := path[len(path)-1]

	mult := cfg.Multiplier(final)
	payout := Settle(bet, mult)

	return &BetResult{
		ID:                uuid.New(),
		Tier:              cfg.Tier,
		Bet:               bet,
		BalanceBefore:     balance,
		BalanceAfterDebit: afterDebit,
		Trajectory:        path,
		FinalColumn:       final,
		Multiplier:        mult,
		Payout:            payout,
		Delta:             payout.Sub(bet),
		FinalBalance:      afterDebit.Add(payout),
	}, nil
}

// Settle returns the payout for bet landing on a slot with multiplier mult.
func Settle(bet decimal.Decimal, mult float64) decimal.Decimal {
	return bet.Mul(decimal.NewFromFloat(mult))
}
