// Package pushgateway writes metric points to a Prometheus Pushgateway.
package pushgateway

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/domain"
)

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_:]`)

type Sink struct {
	url    string
	job    string
	client *http.Client
	log    *zap.Logger
}

func New(url, job string, log *zap.Logger) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{
		url:    url,
		job:    job,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// MetricName maps a metric type such as custom.googleapis.com/binary_status
// to a Prometheus name (binary_status).
func MetricName(metricType string) string {
	name := invalidNameChars.ReplaceAllString(path.Base(metricType), "_")
	if name == "" || name == "_" || (name[0] >= '0' && name[0] <= '9') {
		name = "netprobe_" + name
	}
	return name
}

func (s *Sink) Write(ctx context.Context, p domain.MetricPoint) error {
	name := MetricName(p.MetricType)
	labels := prometheus.Labels{"resource_type": p.ResourceType}
	for k, v := range p.Labels {
		labels[invalidNameChars.ReplaceAllString(k, "_")] = v
	}

	up := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        name,
		Help:        "Reachability verdict: 1 = up, 0 = down",
		ConstLabels: labels,
	})
	up.Set(boolToFloat(p.Value))

	ts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        name + "_timestamp_seconds",
		Help:        "End time of the last reported observation",
		ConstLabels: labels,
	})
	ts.Set(float64(p.EndTime.Unix()))

	err := push.New(s.url, s.job).
		Client(s.client).
		Collector(up).
		Collector(ts).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push %s to %s: %w", name, s.url, err)
	}
	s.log.Debug("pushgateway_pushed", zap.String("metric", name), zap.String("job", s.job))
	return nil
}

func (s *Sink) Close() error { return nil }

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
