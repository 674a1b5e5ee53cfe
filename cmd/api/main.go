package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/config"
	"github.com/hamed0406/netprobe/internal/httpapi"
	apimw "github.com/hamed0406/netprobe/internal/httpapi/middleware"
	"github.com/hamed0406/netprobe/internal/logging"
	"github.com/hamed0406/netprobe/internal/probe"
	"github.com/hamed0406/netprobe/internal/report"
	"github.com/hamed0406/netprobe/internal/sink"
)

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	p, err := probe.New(probe.Kind(cfg.ProbeKind), cfg.Targets, cfg.ProbeTimeout, logger)
	if err != nil {
		log.Fatal(err)
	}
	s, err := sink.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	reporter := report.NewMetricReporter(report.Config{
		MetricType:   cfg.MetricType,
		AttachLabels: cfg.AttachLabels,
	}, p, s, logger, os.Stdout)

	api := httpapi.NewServer(logger, p, reporter)
	keys := apimw.Keys{Public: cfg.PublicAPIKeys, Admin: cfg.AdminAPIKeys}

	logger.Info("api_listen", zap.String("addr", cfg.Addr), zap.String("backend", cfg.Backend))
	if err := http.ListenAndServe(cfg.Addr, api.Router(keys, cfg.RateRPM, cfg.RateBurst)); err != nil {
		log.Fatal(err)
	}
}
