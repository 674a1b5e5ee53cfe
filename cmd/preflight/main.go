// cmd/preflight checks the environment before netprobe runs.
package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"

	"github.com/hamed0406/netprobe/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	if err := cfg.Validate(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, "✖", e)
		}
		fail("configuration invalid")
	}

	ok("PROBE_KIND=" + cfg.ProbeKind)
	ok("PROBE_TARGETS=" + strings.Join(cfg.Targets, ","))
	ok("PROBE_TIMEOUT=" + cfg.ProbeTimeout.String())
	ok("METRIC_TYPE=" + cfg.MetricType)

	switch cfg.Backend {
	case config.BackendCloudMonitoring:
		ok("GCP_PROJECT_ID=" + cfg.ProjectID)
		if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			warn("GOOGLE_APPLICATION_CREDENTIALS empty — relying on gcloud/metadata default credentials.")
		}
		if !strings.HasPrefix(cfg.MetricType, "custom.googleapis.com/") && !strings.HasPrefix(cfg.MetricType, "external.googleapis.com/") {
			warn("METRIC_TYPE is not a custom.googleapis.com/ type; Cloud Monitoring may reject writes.")
		}
	case config.BackendPushgateway:
		ok("PUSHGATEWAY_URL=" + cfg.PushgatewayURL + " job=" + cfg.PushgatewayJob)
	}

	if cfg.AttachLabels {
		warn("ATTACH_LABELS=true — probe labels will be sent with the metric.")
	} else {
		ok("labels are log-only")
	}

	ok("preflight passed")
}
