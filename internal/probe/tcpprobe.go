package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/domain"
)

const (
	LabelReachableHost = "reachable_host"
	LabelReachablePort = "reachable_port"
)

// TCPReachabilityProbe reports whether at least one target accepts a TCP
// connection. Targets are tried in order and the first one to connect wins.
type TCPReachabilityProbe struct {
	Targets []domain.Target
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewTCPReachabilityProbe(targets []domain.Target, timeout time.Duration) *TCPReachabilityProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCPReachabilityProbe{Targets: targets, Timeout: timeout}
}

func (p *TCPReachabilityProbe) Probe(ctx context.Context) (Result, error) {
	log := nopIfNil(p.Logger)
	d := net.Dialer{Timeout: p.Timeout}

	for _, t := range p.Targets {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		conn, err := d.DialContext(ctx, "tcp", t.Address())
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			log.Debug("probe_target_unreachable",
				zap.String("host", t.Host),
				zap.Int("port", t.Port),
				zap.Error(err),
			)
			continue
		}
		_ = conn.Close()
		return Result{
			Up: true,
			Labels: map[string]string{
				LabelReachableHost: t.Host,
				LabelReachablePort: strconv.Itoa(t.Port),
			},
		}, nil
	}

	return Result{
		Up: false,
		Labels: map[string]string{
			LabelReachableHost: None,
			LabelReachablePort: None,
		},
	}, nil
}
