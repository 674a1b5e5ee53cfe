package probe

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
)

const (
	LabelResolvedName = "resolved_name"
	LabelDNSClass     = "dns_class"
)

// DNSResolutionProbe reports whether at least one name resolves to an A or
// AAAA record.
type DNSResolutionProbe struct {
	Names    []string
	Timeout  time.Duration
	Resolver *net.Resolver
	Logger   *zap.Logger
}

func NewDNSResolutionProbe(names []string, timeout time.Duration) *DNSResolutionProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &DNSResolutionProbe{Names: names, Timeout: timeout}
}

func (d *DNSResolutionProbe) Probe(ctx context.Context) (Result, error) {
	log := nopIfNil(d.Logger)
	for _, name := range d.Names {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		st := CheckDNS(ctx, d.Resolver, name, d.Timeout)
		if st.Class == ClassResolves {
			return Result{
				Up: true,
				Labels: map[string]string{
					LabelResolvedName: st.Domain,
					LabelDNSClass:     st.Class,
				},
			}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		log.Debug("probe_name_unresolved",
			zap.String("domain", st.Domain),
			zap.String("class", st.Class),
			zap.String("cname", st.CNAME),
			zap.Strings("nameservers", st.Nameservers),
			zap.String("resolver_error", st.ResolverError),
		)
	}
	return Result{
		Up: false,
		Labels: map[string]string{
			LabelResolvedName: None,
			LabelDNSClass:     None,
		},
	}, nil
}
