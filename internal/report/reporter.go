package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/domain"
	"github.com/hamed0406/netprobe/internal/probe"
)

// Sink submits metric points to a monitoring backend.
type Sink interface {
	Write(ctx context.Context, p domain.MetricPoint) error
	Close() error
}

type Config struct {
	MetricType   string
	AttachLabels bool
}

// MetricReporter turns one probe verdict into one metric point.
type MetricReporter struct {
	Logger *zap.Logger
	Probe  probe.Probe
	Sink   Sink
	Out    io.Writer
	Config Config

	now func() time.Time
}

func NewMetricReporter(cfg Config, p probe.Probe, sink Sink, log *zap.Logger, out io.Writer) *MetricReporter {
	if log == nil {
		log = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &MetricReporter{
		Logger: log,
		Probe:  p,
		Sink:   sink,
		Out:    out,
		Config: cfg,
		now:    time.Now,
	}
}

// ReportMetric runs the probe once and submits exactly one point. Backend
// failures are returned as-is (wrapped); nothing is retried.
func (r *MetricReporter) ReportMetric(ctx context.Context) (probe.Result, error) {
	res, err := r.Probe.Probe(ctx)
	if err != nil {
		return probe.Result{}, fmt.Errorf("probe: %w", err)
	}

	point := domain.MetricPoint{
		MetricType:   r.Config.MetricType,
		ResourceType: domain.ResourceGlobal,
		Value:        res.Up,
		EndTime:      r.now().Truncate(time.Second),
	}
	// Labels stay log-only unless explicitly enabled.
	if r.Config.AttachLabels {
		point.Labels = res.Labels
	}

	if err := r.Sink.Write(ctx, point); err != nil {
		r.Logger.Error("metric_write_failed",
			zap.String("metric_type", point.MetricType),
			zap.Bool("value", point.Value),
			zap.Error(err),
		)
		return res, fmt.Errorf("write metric: %w", err)
	}

	fmt.Fprintf(r.Out, "Metric reported: %t with labels %v\n", res.Up, res.Labels)
	r.Logger.Info("metric_reported",
		zap.String("metric_type", point.MetricType),
		zap.Bool("value", point.Value),
		zap.Time("end_time", point.EndTime),
		zap.Any("labels", res.Labels),
		zap.Bool("labels_attached", r.Config.AttachLabels),
	)
	return res, nil
}
