package api

import (
	"sync"

	"github.com/xtding233/plinko-backend/internal/board"
	"github.com/xtding233/plinko-backend/internal/plinko"
)

// Live follows the drop autoplay is revealing so clients polling
// /api/v1/autoplay can animate it. Row and Done plug into
// autoplay.WithRowHandler and autoplay.WithResultHandler.
type Live struct {
	mu     sync.Mutex
	active bool
	path   []int
}

func NewLive() *Live {
	return &Live{}
}

// Row records that row has been revealed at column col.
func (l *Live) Row(row, col int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if row == 0 {
		l.path = l.path[:0]
	}
	l.active = true
	l.path = append(l.path, col)
}

// Done ends the current reveal.
func (l *Live) Done(*plinko.BetResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = false
	l.path = l.path[:0]
}

type revealResp struct {
	Row    int           `json:"row"`
	Column int           `json:"column"`
	Path   []board.Point `json:"path"`
}

// reveal returns the rows shown so far laid out on cfg, or nil when nothing
// is being revealed. Rows beyond the board (the tier changed mid-drop)
// are left out.
func (l *Live) reveal(cfg board.Config) *revealResp {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.active || len(l.path) == 0 {
		return nil
	}

	g := board.Layout(cfg)
	path := make([]board.Point, 0, len(l.path))
	for row, col := range l.path {
		if row >= cfg.Rows {
			break
		}
		path = append(path, g.BallAt(row, col))
	}
	last := len(l.path) - 1
	return &revealResp{Row: last, Column: l.path[last], Path: path}
}
