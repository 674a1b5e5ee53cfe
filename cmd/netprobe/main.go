package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/config"
	"github.com/hamed0406/netprobe/internal/logging"
	"github.com/hamed0406/netprobe/internal/probe"
	"github.com/hamed0406/netprobe/internal/report"
	"github.com/hamed0406/netprobe/internal/sink"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "netprobe:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	p, err := probe.New(probe.Kind(cfg.ProbeKind), cfg.Targets, cfg.ProbeTimeout, logger)
	if err != nil {
		return err
	}

	s, err := sink.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("sink_init_failed", zap.String("backend", cfg.Backend), zap.Error(err))
		return err
	}
	defer s.Close()

	logger.Info("netprobe_start",
		zap.String("project", cfg.ProjectID),
		zap.String("metric_type", cfg.MetricType),
		zap.String("probe_kind", cfg.ProbeKind),
		zap.Strings("targets", cfg.Targets),
		zap.Duration("timeout", cfg.ProbeTimeout),
		zap.String("backend", cfg.Backend),
	)

	reporter := report.NewMetricReporter(report.Config{
		MetricType:   cfg.MetricType,
		AttachLabels: cfg.AttachLabels,
	}, p, s, logger, os.Stdout)

	_, err = reporter.ReportMetric(ctx)
	return err
}
