package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ecs-stress:", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ecs-stress:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("stress test failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

func startProfile(cfg Config) interface{ Stop() } {
	opts := []func(*profile.Profile){
		profile.ProfilePath(cfg.ProfilePath),
		profile.NoShutdownHook,
		profile.Quiet,
	}
	switch cfg.Profile {
	case "cpu":
		opts = append(opts, profile.CPUProfile)
	case "mem":
		opts = append(opts, profile.MemProfile, profile.MemProfileAllocs)
	default:
		return nopStopper{}
	}
	return profile.Start(opts...)
}

type nopStopper struct{}

func (nopStopper) Stop() {}

func run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("starting ECS stress test",
		zap.Int("workers", cfg.Workers),
		zap.Int("entities", cfg.Entities),
		zap.Int("systems", cfg.Systems),
		zap.Duration("duration", cfg.Duration))

	// 1. Build one independent world per worker
	sims := make([]*Simulation, cfg.Workers)
	for i := range sims {
		seed := cfg.Seed + uint64(i)
		sims[i] = NewSimulation(cfg, seed, logger.With(zap.Int("worker", i)))
	}
	logger.Info("population complete")

	report := &Report{
		RunID:          runID,
		Config:         cfg,
		Components:     componentCount,
		Workers:        make([]WorkerResult, cfg.Workers),
		GCPauseMetrics: cfg.GCPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	prof := startProfile(cfg)

	// 2. Run the simulations until the deadline
	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	startTime := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i, sim := range sims {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d: %v", i, r)
				}
			}()
			result := sim.Run(ctx)
			result.Worker = i
			result.Seed = cfg.Seed + uint64(i)
			report.Workers[i] = result
			return nil
		})
	}
	err := g.Wait()

	prof.Stop()
	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)
	if err != nil {
		return fmt.Errorf("run simulations: %w", err)
	}

	for _, w := range report.Workers {
		report.TotalUpdates += w.TotalUpdates
	}
	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	return nil
}
