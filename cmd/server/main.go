package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xtding233/plinko-backend/internal/api"
	"github.com/xtding233/plinko-backend/internal/autoplay"
	"github.com/xtding233/plinko-backend/internal/board"
	"github.com/xtding233/plinko-backend/internal/config"
	"github.com/xtding233/plinko-backend/internal/config/env"
	"github.com/xtding233/plinko-backend/internal/logger"
	"github.com/xtding233/plinko-backend/internal/metrics"
	"github.com/xtding233/plinko-backend/internal/plinko"
	"github.com/xtding233/plinko-backend/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envPath := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	if err := config.Load(*envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load %s: %v", *envPath, err)
	}

	zl, err := newLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if err := run(zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	lc, err := env.NewLogConfig()
	if err != nil {
		return nil, err
	}
	cfg := logger.DevelopmentConfig()
	if lc.Environment() == logger.EnvironmentProduction {
		cfg = logger.ProductionConfig()
	}
	cfg.Level = lc.Level()
	cfg.Format = lc.Format()
	cfg.Environment = lc.Environment()
	return logger.New(cfg), nil
}

func run(zl *zap.Logger) error {
	httpCfg, err := env.NewHTTPConfig()
	if err != nil {
		return err
	}
	gameCfg, err := env.NewGameConfig()
	if err != nil {
		return err
	}
	autoCfg, err := env.NewAutoplayConfig()
	if err != nil {
		return err
	}

	loader := board.NewLoader(gameCfg.TiersFile())
	file, err := loader.Load()
	var cfgErr *board.ConfigError
	if err != nil && !errors.As(err, &cfgErr) {
		return err
	}
	if err != nil {
		zl.Warn("skipped invalid tiers", zap.Error(err))
	}

	def := file.Default
	if gameCfg.DefaultTier() != "" {
		def = gameCfg.DefaultTier()
	}
	b, err := board.New(file.Tiers, def)
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	b.OnChange(m.ObserveTier)
	b.OnChange(func(cfg board.Config) {
		zl.Info("active tier changed", zap.String("tier", cfg.Tier), zap.Int("rows", cfg.Rows))
	})

	sess := session.New(b, gameCfg.StartingBalance(),
		session.WithSource(plinko.DefaultSource()),
		session.WithRecorder(m),
		session.WithLogger(zl.Named("session")),
		session.WithBet(gameCfg.DefaultBet().String()),
	)

	live := api.NewLive()
	auto := autoplay.New(sess,
		autoplay.WithInterval(autoCfg.Interval()),
		autoplay.WithRowDelay(autoCfg.RowDelay()),
		autoplay.WithLogger(zl.Named("autoplay")),
		autoplay.WithRowHandler(live.Row),
		autoplay.WithResultHandler(func(res *plinko.BetResult, err error) {
			live.Done(res, err)
			if res != nil {
				zl.Debug(res.Message())
			}
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr: httpCfg.Address(),
		Handler: api.New(ctx, api.Deps{
			Board:    b,
			Session:  sess,
			Autoplay: auto,
			Live:     live,
			Metrics:  m,
			Logger:   zl.Named("http"),
		}).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	if loader.Path() != "" {
		w := board.NewWatcher(loader, b, zl.Named("tiers"))
		g.Go(func() error { return w.Run(ctx) })
	}

	g.Go(func() error {
		zl.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("tier", b.Active().Tier),
			zap.String("balance", sess.Balance().String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		_ = auto.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
