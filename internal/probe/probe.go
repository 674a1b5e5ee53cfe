package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/domain"
)

// None is the label value reported when no target succeeded.
const None = "none"

// DefaultTimeout bounds a single connection attempt.
const DefaultTimeout = 2 * time.Second

// Result is the verdict of one Probe call plus diagnostic labels.
type Result struct {
	Up     bool              `json:"up"`
	Labels map[string]string `json:"labels"`
}

// Probe performs a check and returns a boolean verdict with metadata.
//
// Ordinary target failures (timeouts, refused connections, unresolvable
// names) are part of the verdict and never come back as an error. The error
// is reserved for failures of the probe itself, e.g. a cancelled context.
type Probe interface {
	Probe(ctx context.Context) (Result, error)
}

// Kind names a probe implementation.
type Kind string

const (
	KindTCP  Kind = "tcp"
	KindHTTP Kind = "http"
	KindDNS  Kind = "dns"
)

// New builds the probe for kind over the given raw targets. TCP targets are
// "host:port", HTTP targets are URLs and DNS targets are bare names.
func New(kind Kind, targets []string, timeout time.Duration, log *zap.Logger) (Probe, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case KindTCP, "":
		ts := make([]domain.Target, 0, len(targets))
		for _, raw := range targets {
			t, err := domain.ParseTarget(raw)
			if err != nil {
				return nil, err
			}
			ts = append(ts, t)
		}
		p := NewTCPReachabilityProbe(ts, timeout)
		p.Logger = log
		return p, nil
	case KindHTTP:
		p := NewHTTPReachabilityProbe(targets, timeout)
		p.Logger = log
		return p, nil
	case KindDNS:
		p := NewDNSResolutionProbe(targets, timeout)
		p.Logger = log
		return p, nil
	default:
		return nil, fmt.Errorf("unknown probe kind %q", kind)
	}
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
