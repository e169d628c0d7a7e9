package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xtding233/plinko-backend/internal/autoplay"
	"github.com/xtding233/plinko-backend/internal/board"
	"github.com/xtding233/plinko-backend/internal/logger"
	"github.com/xtding233/plinko-backend/internal/odds"
	"github.com/xtding233/plinko-backend/internal/plinko"
	"github.com/xtding233/plinko-backend/internal/session"
)

type tiersResp struct {
	Tiers  []string `json:"tiers"`
	Active string   `json:"active"`
}

type selectTierReq struct {
	Name string `json:"name" validate:"required"`
}

type geometryResp struct {
	Tier      string            `json:"tier"`
	Geometry  board.Geometry    `json:"geometry"`
	Pegs      []board.Point     `json:"pegs"`
	BallStart board.Point       `json:"ball_start"`
	Slots     []board.SlotLabel `json:"slots"`
}

type sessionResp struct {
	session.State
	Autoplay bool `json:"autoplay"`
}

type betReq struct {
	Bet betInput `json:"bet"`
}

type betResp struct {
	Bet decimal.Decimal `json:"bet"`
}

type dropResp struct {
	Result  *plinko.BetResult `json:"result"`
	Message string            `json:"message"`
	Balance decimal.Decimal   `json:"balance"`
	// Path is the ball position after each row, for animation.
	Path    []board.Point     `json:"path"`
}

type autoplayResp struct {
	Running bool        `json:"running"`
	Reveal  *revealResp `json:"reveal,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTiers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, tiersResp{
		Tiers:  s.board.ListTiers(),
		Active: s.board.Active().Tier,
	})
}

func (s *Server) handleActiveTier(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.board.Active())
}

func (s *Server) handleSelectTier(w http.ResponseWriter, r *http.Request) {
	var req selectTierReq
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request: name is required")
		return
	}
	cfg, err := s.board.SelectTier(req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("tier selected", zap.String("tier", cfg.Tier))
	respondJSON(w, r, http.StatusOK, cfg)
}

func (s *Server) handleTierOdds(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.board.Tier(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rep, err := odds.Analyze(cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rep)
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	cfg := s.board.Active()
	g := board.Layout(cfg)
	respondJSON(w, r, http.StatusOK, geometryResp{
		Tier:      cfg.Tier,
		Geometry:  g,
		Pegs:      g.Pegs(),
		BallStart: g.BallStart(),
		Slots:     g.SlotLabels(),
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, sessionResp{
		State:    s.sess.Snapshot(),
		Autoplay: s.auto != nil && s.auto.Running(),
	})
}

func (s *Server) handleSetBet(w http.ResponseWriter, r *http.Request) {
	var req betReq
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	raw, err := req.Bet.raw()
	if err == nil && raw == "" {
		err = plinko.ErrInvalidBet
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bet, err := s.sess.SetBet(raw)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, betResp{Bet: bet})
}

// handleDrop settles a whole drop at once; the client animates Path.
// Without a bet in the body the session's bet input is used.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req betReq
	if err := decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	raw, err := req.Bet.raw()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.sess.Drop(r.Context(), raw, nil)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cfg, err := s.board.Tier(res.Tier)
	if err != nil {
		cfg = s.board.Active()
	}
	g := board.Layout(cfg)
	path := make([]board.Point, 0, len(res.Trajectory))
	for row, col := range res.Rows() {
		path = append(path, g.BallAt(row, col))
	}

	respondJSON(w, r, http.StatusOK, dropResp{
		Result:  res,
		Message: res.Message(),
		Balance: res.FinalBalance,
		Path:    path,
	})
}

func (s *Server) handleAutoplayStatus(w http.ResponseWriter, r *http.Request) {
	resp := autoplayResp{Running: s.auto != nil && s.auto.Running()}
	if s.live != nil {
		resp.Reveal = s.live.reveal(s.board.Active())
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleAutoplayStart(w http.ResponseWriter, r *http.Request) {
	if s.auto == nil {
		respondError(w, r, http.StatusNotImplemented, "autoplay disabled")
		return
	}
	if err := s.auto.Start(s.ctx); err != nil && !errors.Is(err, autoplay.ErrAlreadyRunning) {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, autoplayResp{Running: true})
}

func (s *Server) handleAutoplayStop(w http.ResponseWriter, r *http.Request) {
	if s.auto == nil {
		respondError(w, r, http.StatusNotImplemented, "autoplay disabled")
		return
	}
	if err := s.auto.Stop(); err != nil && !errors.Is(err, autoplay.ErrNotRunning) {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, autoplayResp{Running: false})
}

// fail maps domain errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var cfgErr *board.ConfigError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, plinko.ErrInvalidBet):
		status = http.StatusBadRequest
	case errors.Is(err, plinko.ErrInsufficientFunds), errors.Is(err, session.ErrDropInProgress):
		status = http.StatusConflict
	case errors.Is(err, board.ErrUnknownTier):
		status = http.StatusNotFound
	case errors.As(err, &cfgErr):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
	}
	respondError(w, r, status, err.Error())
}
