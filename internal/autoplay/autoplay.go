package autoplay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/xtding233/plinko-backend/internal/plinko"
	"github.com/xtding233/plinko-backend/internal/session"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultRowDelay = 500 * time.Millisecond
)

var (
	ErrAlreadyRunning = errors.New("autoplay already running")
	ErrNotRunning     = errors.New("autoplay not running")
)

// Player runs one drop with the current bet input; *session.Session
// satisfies it.
type Player interface {
	Drop(ctx context.Context, rawBet string, reveal session.RevealFunc) (*plinko.BetResult, error)
}

// Controller drops a ball every interval until stopped.
type Controller struct {
	player   Player
	clock    clockwork.Clock
	interval time.Duration
	rowDelay time.Duration
	onResult func(*plinko.BetResult, error)
	onRow    func(row, col int)
	log      *zap.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	stopping bool
}

type Option func(*Controller)

func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithRowDelay sets the pause after each revealed row. Zero disables pacing.
func WithRowDelay(d time.Duration) Option {
	return func(c *Controller) { c.rowDelay = d }
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithResultHandler is called after every cycle with the settled drop or
// the error that rejected it.
func WithResultHandler(fn func(*plinko.BetResult, error)) Option {
	return func(c *Controller) { c.onResult = fn }
}

// WithRowHandler is called for every revealed row before the row delay.
func WithRowHandler(fn func(row, col int)) Option {
	return func(c *Controller) { c.onRow = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func New(p Player, opts ...Option) *Controller {
	c := &Controller{
		player:   p,
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		rowDelay: DefaultRowDelay,
		onResult: func(*plinko.BetResult, error) {},
		onRow:    func(int, int) {},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run loops until ctx is done: wait one interval, then drop with the
// session's current bet. Rejected drops are reported and the loop goes on.
// A drop that has started always settles; cancelling during its reveal
// only skips the remaining row delays.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Info("autoplay started", zap.Duration("interval", c.interval))
	defer c.log.Info("autoplay stopped")

	for {
		if err := c.sleep(ctx, c.interval); err != nil {
			return nil
		}

		res, err := c.player.Drop(ctx, "", c.reveal)
		if res != nil && ctx.Err() != nil {
			// reveal was cut short by the stop
			err = nil
		}
		if err != nil {
			c.log.Warn("autoplay drop rejected", zap.Error(err))
		}
		c.onResult(res, err)

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Controller) reveal(ctx context.Context, row, col int) error {
	c.onRow(row, col)
	return c.sleep(ctx, c.rowDelay)
}

func (c *Controller) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := c.clock.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Chan():
		return nil
	}
}

// Start runs the loop in the background under ctx. A loop that is still
// stopping is waited for first, so two loops never overlap.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	for c.stopping {
		done := c.done
		c.mu.Unlock()
		<-done
		c.mu.Lock()
	}
	defer c.mu.Unlock()
	if c.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		_ = c.Run(ctx)
		cancel()

		c.mu.Lock()
		if c.done == done {
			c.cancel = nil
			c.done = nil
			c.stopping = false
		}
		c.mu.Unlock()
	}()
	return nil
}

// Stop cancels a started loop and waits for it to return, including a
// drop it is settling.
func (c *Controller) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	if cancel == nil {
		c.mu.Unlock()
		return ErrNotRunning
	}
	c.stopping = true
	c.mu.Unlock()

	cancel()
	<-done
	return nil
}

func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil && !c.stopping
}
