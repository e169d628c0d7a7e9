package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xtding233/plinko-backend/internal/autoplay"
	"github.com/xtding233/plinko-backend/internal/board"
	"github.com/xtding233/plinko-backend/internal/logger"
	"github.com/xtding233/plinko-backend/internal/metrics"
	"github.com/xtding233/plinko-backend/internal/session"
)

const headerRequestID = "X-Request-ID"

// Deps are the collaborators the HTTP surface drives.
type Deps struct {
	Board    *board.Board
	Session  *session.Session
	Autoplay *autoplay.Controller
	Live     *Live
	Metrics  *metrics.Collectors
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger

	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
}

type Server struct {
	ctx   context.Context
	deps  Deps
	log   *zap.Logger
	board *board.Board
	sess  *session.Session
	auto  *autoplay.Controller
	live  *Live
}

// New builds the server. ctx bounds background work started through the
// API (autoplay) and should live as long as the process.
func New(ctx context.Context, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		ctx:   ctx,
		deps:  deps,
		log:   deps.Logger,
		board: deps.Board,
		sess:  deps.Session,
		auto:  deps.Autoplay,
		live:  deps.Live,
	}
}

// Routes returns the root handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	origins := s.deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID},
		MaxAge:         300,
	}))
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	if s.deps.Metrics != nil {
		r.Use(s.deps.Metrics.Middleware)
	}
	r.Use(s.accessLog)

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tiers", func(r chi.Router) {
			r.Get("/", s.handleListTiers)
			r.Get("/active", s.handleActiveTier)
			r.Put("/active", s.handleSelectTier)
			r.Get("/{name}/odds", s.handleTierOdds)
		})
		r.Get("/board/geometry", s.handleGeometry)

		r.Get("/session", s.handleSession)
		r.Put("/session/bet", s.handleSetBet)
		r.Post("/drop", s.handleDrop)

		r.Route("/autoplay", func(r chi.Router) {
			r.Get("/", s.handleAutoplayStatus)
			r.Post("/start", s.handleAutoplayStart)
			r.Post("/stop", s.handleAutoplayStop)
		})
	})

	return r
}

// requestID tags the request context with an ID and a logger carrying it.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), id)
		ctx = logger.WithLogger(ctx, s.log)
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.FromContext(r.Context()).Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
