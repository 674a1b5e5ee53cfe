package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/hamed0406/netprobe/internal/domain"
)

// Backends.
const (
	BackendCloudMonitoring = "cloudmonitoring"
	BackendPushgateway     = "pushgateway"
)

type Config struct {
	ProjectID    string        // Cloud Monitoring project, e.g. "seventh-torch-825"
	MetricType   string        // fully qualified, e.g. custom.googleapis.com/binary_status
	ProbeKind    string        // tcp | http | dns
	Targets      []string      // host:port for tcp, URLs for http, names for dns
	ProbeTimeout time.Duration // per-target timeout
	AttachLabels bool          // send probe labels with the point (off: labels are log-only)

	Backend        string // cloudmonitoring | pushgateway
	PushgatewayURL string
	PushgatewayJob string

	LogDir   string
	LogLevel string

	// cmd/api only
	Addr          string
	PublicAPIKeys []string
	AdminAPIKeys  []string
	RateRPM       int
	RateBurst     int
}

func FromEnv() Config {
	project := os.Getenv("GCP_PROJECT_ID")
	if project == "" {
		project = "seventh-torch-825"
	}

	metricType := os.Getenv("METRIC_TYPE")
	if metricType == "" {
		metricType = "custom.googleapis.com/binary_status"
	}

	kind := strings.ToLower(strings.TrimSpace(os.Getenv("PROBE_KIND")))
	if kind == "" {
		kind = "tcp"
	}

	targets := csv(os.Getenv("PROBE_TARGETS"))
	if len(targets) == 0 && kind == "tcp" {
		targets = []string{"8.8.8.8:53", "4.4.4.4:53"}
	}

	timeout := 2 * time.Second
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	attach, _ := strconv.ParseBool(os.Getenv("ATTACH_LABELS"))

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("METRIC_BACKEND")))
	if backend == "" {
		backend = BackendCloudMonitoring
	}

	job := os.Getenv("PUSHGATEWAY_JOB")
	if job == "" {
		job = "netprobe"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	return Config{
		ProjectID:      project,
		MetricType:     metricType,
		ProbeKind:      kind,
		Targets:        targets,
		ProbeTimeout:   timeout,
		AttachLabels:   attach,
		Backend:        backend,
		PushgatewayURL: strings.TrimSpace(os.Getenv("PUSHGATEWAY_URL")),
		PushgatewayJob: job,
		LogDir:         logDir,
		LogLevel:       strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		Addr:           addr,
		PublicAPIKeys:  csv(os.Getenv("PUBLIC_API_KEYS")),
		AdminAPIKeys:   csv(os.Getenv("ADMIN_API_KEYS")),
		RateRPM:        intEnv("RATE_RPM", 120),
		RateBurst:      intEnv("RATE_BURST", 60),
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.MetricType == "" {
		err = multierr.Append(err, errors.New("metric type is empty"))
	}
	if len(c.Targets) == 0 {
		err = multierr.Append(err, errors.New("no probe targets"))
	}
	switch c.ProbeKind {
	case "tcp":
		for _, raw := range c.Targets {
			if _, perr := domain.ParseTarget(raw); perr != nil {
				err = multierr.Append(err, perr)
			}
		}
	case "http", "dns":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown probe kind %q", c.ProbeKind))
	}
	switch c.Backend {
	case BackendCloudMonitoring:
		if c.ProjectID == "" {
			err = multierr.Append(err, errors.New("project id is empty"))
		}
	case BackendPushgateway:
		if c.PushgatewayURL == "" {
			err = multierr.Append(err, errors.New("PUSHGATEWAY_URL is required for the pushgateway backend"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown metric backend %q", c.Backend))
	}
	return err
}

func csv(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
