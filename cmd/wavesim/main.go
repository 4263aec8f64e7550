package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wavefall/internal/ai"
	"github.com/udisondev/wavefall/internal/config"
	"github.com/udisondev/wavefall/internal/data"
	"github.com/udisondev/wavefall/internal/db"
	"github.com/udisondev/wavefall/internal/game/run"
)

const ConfigPath = "config/wavesim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := runSim(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func runSim(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("WAVEFALL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(cfg.DebugAI || logLevel == slog.LevelDebug)

	slog.Info("wavesim starting", "config", cfgPath, "log_level", cfg.LogLevel)

	catalog, err := data.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	for _, verr := range catalog.Validate() {
		slog.Warn("catalog reference missing", "err", verr)
	}
	slog.Info("catalog loaded", "path", cfg.CatalogPath, "tables", catalog.Counts())

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	slog.Info("rng seeded", "seed", seed)

	session, err := run.NewSession(sessionConfig(cfg), catalog, rng)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer closeStore()

	var sink run.ResultSink
	if store != nil {
		sink = db.NewRecordSink(store)
	}
	driver := run.NewDriver(session, driverConfig(cfg.Tick), sink)

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		res, err := driver.Run(context.WithoutCancel(gctx))
		if err != nil {
			return fmt.Errorf("run driver: %w", err)
		}
		logResult(res, session.EndReason())
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			driver.Stop()
		case <-done:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if store != nil {
		best, ok, err := store.BestScore(context.WithoutCancel(ctx), cfg.Character)
		if err != nil {
			return fmt.Errorf("reading best score: %w", err)
		}
		if ok {
			slog.Info("best score", "character", cfg.Character, "score", best)
		}
	}
	return nil
}

// openStore opens the configured run store. The returned close func is never nil.
func openStore(ctx context.Context, cfg config.StoreConfig) (db.RecordStore, func(), error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		store, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, func() {}, err
		}
		slog.Info("sqlite run store opened", "path", cfg.SQLitePath)
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("closing sqlite store", "err", err)
			}
		}, nil

	case config.StorePostgres:
		pg, err := db.OpenPostgres(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, func() {}, err
		}
		return pg.Runs(), pg.Close, nil

	default:
		return nil, func() {}, nil
	}
}

func logResult(res run.Result, reason string) {
	slog.Info("run result",
		"runID", res.RunID,
		"victory", res.Victory,
		"reason", reason,
		"stageID", res.StageID,
		"waveID", res.WaveID,
		"wave", res.WaveNumber,
		"level", res.Level,
		"exp", fmt.Sprintf("%d/%d", res.Exp, res.ExpMax),
		"expGain", res.ExpGain,
		"score", res.Score,
		"kills", res.Kills,
		"wavesCleared", res.WavesCleared,
		"damage", res.DamageDealt,
		"duration", res.Duration)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
