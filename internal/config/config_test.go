package config

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"GCP_PROJECT_ID", "METRIC_TYPE", "PROBE_KIND", "PROBE_TARGETS",
		"PROBE_TIMEOUT_MS", "ATTACH_LABELS", "METRIC_BACKEND", "LOG_DIR"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	if cfg.ProjectID != "seventh-torch-825" || cfg.MetricType != "custom.googleapis.com/binary_status" {
		t.Fatalf("project/metric wrong: %+v", cfg)
	}
	if len(cfg.Targets) != 2 || cfg.Targets[0] != "8.8.8.8:53" || cfg.Targets[1] != "4.4.4.4:53" {
		t.Fatalf("targets wrong: %v", cfg.Targets)
	}
	if cfg.ProbeKind != "tcp" || cfg.ProbeTimeout != 2*time.Second {
		t.Fatalf("probe settings wrong: %+v", cfg)
	}
	if cfg.AttachLabels {
		t.Fatalf("labels must be log-only by default")
	}
	if cfg.Backend != BackendCloudMonitoring || cfg.LogDir != "logs" {
		t.Fatalf("backend/logdir wrong: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnv_Parses(t *testing.T) {
	t.Setenv("GCP_PROJECT_ID", "p1")
	t.Setenv("METRIC_TYPE", "custom.googleapis.com/x")
	t.Setenv("PROBE_KIND", "HTTP")
	t.Setenv("PROBE_TARGETS", "https://a.example, https://b.example")
	t.Setenv("PROBE_TIMEOUT_MS", "1234")
	t.Setenv("ATTACH_LABELS", "true")
	t.Setenv("METRIC_BACKEND", "pushgateway")
	t.Setenv("PUSHGATEWAY_URL", "http://pg:9091")
	t.Setenv("ADMIN_API_KEYS", "adm_x")
	t.Setenv("RATE_RPM", "30")

	cfg := FromEnv()

	if cfg.ProbeKind != "http" || len(cfg.Targets) != 2 || cfg.Targets[1] != "https://b.example" {
		t.Fatalf("probe config wrong: %+v", cfg)
	}
	if cfg.ProbeTimeout != 1234*time.Millisecond || !cfg.AttachLabels {
		t.Fatalf("timeout/labels wrong: %+v", cfg)
	}
	if cfg.Backend != BackendPushgateway || cfg.PushgatewayURL != "http://pg:9091" || cfg.PushgatewayJob != "netprobe" {
		t.Fatalf("backend wrong: %+v", cfg)
	}
	if len(cfg.AdminAPIKeys) != 1 || cfg.RateRPM != 30 || cfg.RateBurst != 60 {
		t.Fatalf("api settings wrong: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Config{
		ProbeKind: "tcp",
		Targets:   []string{"8.8.8.8", "host:99999"},
		Backend:   BackendPushgateway,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected errors")
	}
	// metric type, two bad targets, missing pushgateway url
	if n := len(multierr.Errors(err)); n != 4 {
		t.Fatalf("want 4 errors, got %d: %v", n, err)
	}
	if !strings.Contains(err.Error(), "PUSHGATEWAY_URL") {
		t.Fatalf("missing pushgateway error: %v", err)
	}
}
