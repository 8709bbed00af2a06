// Command bpgconv batch-converts PNG/JPEG trees into BPG by fanning bpgenc
// invocations across a worker pool and summarizing the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bpgbatch/config"
	"bpgbatch/discovery"
	"bpgbatch/encoder"
	"bpgbatch/pool"
	"bpgbatch/report"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 for a completed run (individual
// task failures included) or an informational empty run, 1 for setup
// failures before any task was dispatched.
func run() int {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "bpgconv: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "bpgconv: %v\n", err)
		return 1
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.New().String()))

	renderer := report.NewRenderer(cfg.NoColor)
	renderer.Banner(os.Stdout, string(cfg.Codec), cfg.BitDepth)

	if err := discovery.CheckInputRoot(cfg.InputRoot); err != nil {
		logger.Error("input directory missing", zap.String("input", cfg.InputRoot), zap.Error(err))
		return 1
	}

	encoderPath, err := encoder.Locate(cfg.EncoderOverride)
	if err != nil {
		logger.Error("encoder not found", zap.Error(err))
		return 1
	}
	logger.Info("using encoder", zap.String("path", encoderPath))

	tasks, err := discovery.Discover(encoderPath, cfg)
	if err != nil {
		logger.Error("discovery failed", zap.Error(err))
		return 1
	}
	if len(tasks) == 0 {
		logger.Info("no PNG/JPG files found", zap.String("input", cfg.InputRoot))
		return 0
	}

	p, err := pool.New(cfg.Workers, logger)
	if err != nil {
		logger.Error("invalid worker count", zap.Int("workers", cfg.Workers), zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting conversion",
		zap.Int("files", len(tasks)),
		zap.Int("workers", cfg.Workers),
		zap.String("codec", string(cfg.Codec)),
		zap.Int("bit_depth", cfg.BitDepth),
	)

	converter := encoder.NewConverter(logger)
	start := time.Now()
	results := p.Run(ctx, tasks, converter.Convert)

	summary := report.Summarize(results, time.Since(start))
	renderer.Render(os.Stdout, summary, cfg.OutputRoot)
	return 0
}
