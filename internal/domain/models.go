package domain

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// ResourceGlobal marks a metric that is not tied to any addressable cloud resource.
const ResourceGlobal = "global"

// Target is a TCP endpoint checked for reachability.
type Target struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (t Target) String() string { return t.Address() }

// ParseTarget reads "host:port" (IPv6 hosts in brackets). The host itself is
// not validated; a bad host just fails to connect later.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	host, portStr, err := net.SplitHostPort(raw)
	if err != nil {
		return Target{}, fmt.Errorf("parse target %q: %w", raw, err)
	}
	if host == "" {
		return Target{}, fmt.Errorf("parse target %q: empty host", raw)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return Target{}, fmt.Errorf("parse target %q: invalid port %q", raw, portStr)
	}
	return Target{Host: host, Port: port}, nil
}

// MetricPoint is one timestamped boolean observation. It is built once per
// report and dropped after submission.
type MetricPoint struct {
	MetricType   string            `json:"metric_type"`
	ResourceType string            `json:"resource_type"`
	Value        bool              `json:"value"`
	EndTime      time.Time         `json:"end_time"`
	Labels       map[string]string `json:"labels,omitempty"`
}
