// Package sink picks the monitoring backend named in the configuration.
package sink

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/config"
	"github.com/hamed0406/netprobe/internal/report"
	"github.com/hamed0406/netprobe/internal/sink/cloudmonitoring"
	"github.com/hamed0406/netprobe/internal/sink/pushgateway"
)

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (report.Sink, error) {
	switch cfg.Backend {
	case config.BackendCloudMonitoring:
		return cloudmonitoring.New(ctx, cfg.ProjectID, log)
	case config.BackendPushgateway:
		return pushgateway.New(cfg.PushgatewayURL, cfg.PushgatewayJob, log), nil
	default:
		return nil, fmt.Errorf("unknown metric backend %q", cfg.Backend)
	}
}
