package board

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the tier file into a Board when it changes on disk.
type Watcher struct {
	loader *Loader
	board  *Board
	log    *zap.Logger

	// reloaded is called after every reload attempt; used by tests
	reloaded func(Config, error)
}

// NewWatcher creates a watcher for loader's override file.
func NewWatcher(loader *Loader, b *Board, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{loader: loader, board: b, log: log}
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that replace the file atomically are picked up too.
func (w *Watcher) Run(ctx context.Context) error {
	path := w.loader.Path()
	if path == "" {
		<-ctx.Done()
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.log.Info("watching tier file", zap.String("path", abs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.Reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("tier watcher error", zap.Error(err))
		}
	}
}

// Reload re-reads the tier file and swaps it into the board. On failure
// the current tiers stay active.
func (w *Watcher) Reload() {
	w.loader.Invalidate()
	f, err := w.loader.Load()

	var cerr *ConfigError
	if err != nil && !errors.As(err, &cerr) {
		w.log.Error("reload tiers failed", zap.Error(err))
		w.done(Config{}, err)
		return
	}
	if err != nil {
		// partially valid: bad tiers were dropped
		w.log.Warn("skipping invalid tiers", zap.Error(err))
	}

	cfg, rerr := w.board.Replace(f.Tiers, f.Default)
	if rerr != nil {
		w.log.Error("apply reloaded tiers failed", zap.Error(rerr))
		w.done(Config{}, rerr)
		return
	}
	w.log.Info("tiers reloaded",
		zap.Strings("tiers", w.board.ListTiers()),
		zap.String("active", cfg.Tier),
	)
	w.done(cfg, nil)
}

func (w *Watcher) done(cfg Config, err error) {
	if w.reloaded != nil {
		w.reloaded(cfg, err)
	}
}
