package session

import (
	"context"
	"errors"
	"iter"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xtding233/plinko-backend/internal/board"
	"github.com/xtding233/plinko-backend/internal/logger"
	"github.com/xtding233/plinko-backend/internal/plinko"
)

var ErrDropInProgress = errors.New("a drop is already in progress")

// DefaultBet is the bet input a new session starts with.
const DefaultBet = "100"

// Recorder observes settled and rejected drops.
type Recorder interface {
	RecordDrop(res *plinko.BetResult)
	RecordRejected(err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordDrop(*plinko.BetResult) {}
func (nopRecorder) RecordRejected(error)         {}

// RevealFunc is called once per row while a drop is shown to the player.
// Returning an error stops the reveal; the drop is settled regardless.
type RevealFunc func(ctx context.Context, row, col int) error

// Session owns one player's balance and bet input and runs at most one
// drop at a time. It is the only writer of the balance.
type Session struct {
	mu      sync.Mutex
	board   *board.Board
	src     plinko.BitSource
	rec     Recorder
	log     *zap.Logger
	balance decimal.Decimal
	bet     string
	pending *Pending
	last    *plinko.BetResult
}

type Option func(*Session)

// WithSource sets the bit source used for every drop.
func WithSource(src plinko.BitSource) Option {
	return func(s *Session) { s.src = src }
}

func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.rec = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithBet sets the initial bet input. It is not validated until a drop.
func WithBet(raw string) Option {
	return func(s *Session) { s.bet = raw }
}

func New(b *board.Board, balance decimal.Decimal, opts ...Option) *Session {
	s := &Session{
		board:   b,
		src:     plinko.DefaultSource(),
		rec:     nopRecorder{},
		log:     zap.NewNop(),
		balance: balance,
		bet:     DefaultBet,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State is a point-in-time view of the session.
type State struct {
	Balance    decimal.Decimal   `json:"balance"`
	Bet        string            `json:"bet"`
	InProgress bool              `json:"in_progress"`
	Last       *plinko.BetResult `json:"last,omitempty"`
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Balance:    s.balance,
		Bet:        s.bet,
		InProgress: s.pending != nil,
		Last:       s.last,
	}
}

func (s *Session) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Bet returns the current bet input as entered.
func (s *Session) Bet() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bet
}

// SetBet replaces the bet input. Invalid input is rejected and the old
// value kept.
func (s *Session) SetBet(raw string) (decimal.Decimal, error) {
	d, err := plinko.ParseBet(raw)
	if err != nil {
		return decimal.Zero, err
	}
	s.mu.Lock()
	s.bet = d.String()
	s.mu.Unlock()
	return d, nil
}

// Last returns the most recently settled drop, or nil.
func (s *Session) Last() *plinko.BetResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Begin stakes a bet on the active tier. An empty rawBet uses the session's
// bet input. The balance is debited and the whole trajectory decided before
// Begin returns; the payout is credited by Pending.Settle.
func (s *Session) Begin(ctx context.Context, rawBet string) (*Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger(ctx)
	if s.pending != nil {
		s.rec.RecordRejected(ErrDropInProgress)
		return nil, ErrDropInProgress
	}

	if rawBet == "" {
		rawBet = s.bet
	}
	bet, err := plinko.ParseBet(rawBet)
	if err != nil {
		s.rec.RecordRejected(err)
		log.Debug("drop rejected", zap.String("bet", rawBet), zap.Error(err))
		return nil, err
	}

	cfg := s.board.Active()
	res, err := plinko.DropBall(bet, s.balance, cfg, s.src)
	if err != nil {
		s.rec.RecordRejected(err)
		log.Debug("drop rejected", zap.String("bet", bet.String()), zap.Error(err))
		return nil, err
	}

	s.balance = res.BalanceAfterDebit
	p := &Pending{s: s, res: res}
	s.pending = p

	log.Debug("drop started",
		zap.Stringer("drop_id", res.ID),
		zap.String("tier", res.Tier),
		zap.String("bet", res.Bet.String()),
		zap.String("balance", s.balance.String()),
	)
	return p, nil
}

// Drop runs Begin, reveals every row through reveal (may be nil) and
// settles. The result is non-nil whenever the drop settled; a reveal
// error is returned alongside it.
func (s *Session) Drop(ctx context.Context, rawBet string, reveal RevealFunc) (*plinko.BetResult, error) {
	p, err := s.Begin(ctx, rawBet)
	if err != nil {
		return nil, err
	}

	var revealErr error
	if reveal != nil {
		for row, col := range p.Rows() {
			if revealErr = reveal(ctx, row, col); revealErr != nil {
				s.logger(ctx).Debug("reveal stopped", zap.Int("row", row), zap.Error(revealErr))
				break
			}
		}
	}

	return p.Settle(ctx), revealErr
}

func (s *Session) logger(ctx context.Context) *zap.Logger {
	if id, ok := logger.RequestIDFromContext(ctx); ok {
		return s.log.With(zap.String(logger.AttrKeyRequestID, id))
	}
	return s.log
}

// Pending is a drop whose stake is taken and whose path is fixed but whose
// payout is not yet credited.
type Pending struct {
	s       *Session
	res     *plinko.BetResult
	settled bool
}

// Rows yields (rowIndex, column) for each row of the decided path.
func (p *Pending) Rows() iter.Seq2[int, int] {
	return p.res.Rows()
}

func (p *Pending) Bet() decimal.Decimal {
	return p.res.Bet
}

func (p *Pending) Tier() string {
	return p.res.Tier
}

// Settle credits the payout and frees the session for the next drop.
// Calling it again returns the same result without crediting twice.
func (p *Pending) Settle(ctx context.Context) *plinko.BetResult {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.settled {
		return p.res
	}
	p.settled = true

	s.balance = s.balance.Add(p.res.Payout)
	s.pending = nil
	s.last = p.res
	s.rec.RecordDrop(p.res)

	s.logger(ctx).Info("drop settled",
		zap.Stringer("drop_id", p.res.ID),
		zap.String("tier", p.res.Tier),
		zap.Int("slot", p.res.FinalColumn),
		zap.Float64("multiplier", p.res.Multiplier),
		zap.String("payout", p.res.Payout.String()),
		zap.String("balance", s.balance.String()),
	)
	return p.res
}
