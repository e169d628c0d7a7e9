package board

import (
	"fmt"
	"slices"
	"sync"
)

// Board holds the registered tiers and the active one.
//
// The active tier is swapped as a whole under the lock, so readers never
// see the rows of one tier paired with the multipliers of another.
type Board struct {
	// change serialises tier changes together with their notifications,
	// so listeners see changes in the order they were applied.
	change sync.Mutex

	mu        sync.RWMutex
	tiers     map[string]Tier
	order     []string
	active    Tier
	listeners []func(Config)
}

// New registers tiers and activates defaultTier. An empty defaultTier
// selects the first tier.
func New(tiers []Tier, defaultTier string) (*Board, error) {
	b := &Board{}
	if _, _, err := b.install(tiers, defaultTier, false); err != nil {
		return nil, err
	}
	return b, nil
}

// ListTiers returns tier names in registration order.
func (b *Board) ListTiers() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.order...)
}

// Active returns a snapshot of the active tier.
func (b *Board) Active() Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active.config()
}

// Tier returns the snapshot of a registered tier without activating it.
func (b *Board) Tier(name string) (Config, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.tiers[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
	return t.config(), nil
}

// SelectTier activates the named tier and notifies listeners.
// On ErrUnknownTier the active tier is left as it was.
func (b *Board) SelectTier(name string) (Config, error) {
	b.change.Lock()
	defer b.change.Unlock()

	b.mu.Lock()
	t, ok := b.tiers[name]
	if !ok {
		b.mu.Unlock()
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
	b.active = t
	cfg := t.config()
	listeners := slices.Clone(b.listeners)
	b.mu.Unlock()

	notify(listeners, cfg)
	return cfg, nil
}

// Replace swaps the whole tier set, e.g. after the tier file changed.
// The active tier is kept by name when it still exists, otherwise
// defaultTier is activated. An invalid set leaves the board untouched.
func (b *Board) Replace(tiers []Tier, defaultTier string) (Config, error) {
	b.change.Lock()
	defer b.change.Unlock()

	cfg, listeners, err := b.install(tiers, defaultTier, true)
	if err != nil {
		return Config{}, err
	}

	notify(listeners, cfg)
	return cfg, nil
}

// OnChange registers fn to be called with the new config whenever the
// active tier changes. fn runs outside the board lock but must not call
// SelectTier or Replace itself.
func (b *Board) OnChange(fn func(Config)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// install swaps in the tier set and returns the new active config with the
// listeners registered at that moment.
func (b *Board) install(tiers []Tier, defaultTier string, keepActive bool) (Config, []func(Config), error) {
	if len(tiers) == 0 {
		return Config{}, nil, &ConfigError{Problems: []string{"no tiers configured"}}
	}
	if err := validateSet(tiers); err != nil {
		return Config{}, nil, err
	}

	byName := make(map[string]Tier, len(tiers))
	order := make([]string, 0, len(tiers))
	for _, t := range tiers {
		byName[t.Name] = t.clone()
		order = append(order, t.Name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var next Tier
	current, kept := byName[b.active.Name]
	switch {
	case keepActive && kept:
		next = current
	case defaultTier == "":
		next = byName[order[0]]
	default:
		t, ok := byName[defaultTier]
		if !ok {
			return Config{}, nil, fmt.Errorf("default %w: %q", ErrUnknownTier, defaultTier)
		}
		next = t
	}

	b.tiers = byName
	b.order = order
	b.active = next
	return next.config(), slices.Clone(b.listeners), nil
}

func notify(listeners []func(Config), cfg Config) {
	for _, fn := range listeners {
		fn(cfg)
	}
}
