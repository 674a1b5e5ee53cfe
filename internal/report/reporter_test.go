package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netprobe/internal/domain"
	"github.com/hamed0406/netprobe/internal/probe"
)

// --- fakes ---

type fakeProbe struct {
	res   probe.Result
	err   error
	calls int
}

func (f *fakeProbe) Probe(ctx context.Context) (probe.Result, error) {
	f.calls++
	return f.res, f.err
}

type fakeSink struct {
	points []domain.MetricPoint
	err    error
}

func (f *fakeSink) Write(ctx context.Context, p domain.MetricPoint) error {
	if f.err != nil {
		return f.err
	}
	f.points = append(f.points, p)
	return nil
}

func (f *fakeSink) Close() error { return nil }

func newReporter(p probe.Probe, s Sink, attach bool, out *bytes.Buffer) *MetricReporter {
	r := NewMetricReporter(Config{
		MetricType:   "custom.googleapis.com/test_metric",
		AttachLabels: attach,
	}, p, s, zap.NewNop(), out)
	r.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 5, 999_000_000, time.UTC) }
	return r
}

// --- tests ---

func TestReportMetric_SubmitsOnePoint(t *testing.T) {
	p := &fakeProbe{res: probe.Result{Up: true, Labels: map[string]string{"test_label": "value"}}}
	s := &fakeSink{}
	var out bytes.Buffer

	if _, err := newReporter(p, s, false, &out).ReportMetric(context.Background()); err != nil {
		t.Fatalf("ReportMetric: %v", err)
	}

	if p.calls != 1 {
		t.Fatalf("probe called %d times, want 1", p.calls)
	}
	if len(s.points) != 1 {
		t.Fatalf("want 1 point, got %d", len(s.points))
	}
	pt := s.points[0]
	if !pt.Value || pt.MetricType != "custom.googleapis.com/test_metric" || pt.ResourceType != "global" {
		t.Fatalf("unexpected point %+v", pt)
	}
	if pt.EndTime.Nanosecond() != 0 || pt.EndTime.Unix() != 1740830405 {
		t.Fatalf("end time must be whole seconds, got %s", pt.EndTime)
	}
	if pt.Labels != nil {
		t.Fatalf("labels must stay log-only by default, got %v", pt.Labels)
	}
	if got := out.String(); got != "Metric reported: true with labels map[test_label:value]\n" {
		t.Fatalf("unexpected console line %q", got)
	}
}

func TestReportMetric_FalseVerdictIsReported(t *testing.T) {
	p := &fakeProbe{res: probe.Result{Up: false, Labels: map[string]string{
		probe.LabelReachableHost: probe.None, probe.LabelReachablePort: probe.None,
	}}}
	s := &fakeSink{}
	var out bytes.Buffer

	if _, err := newReporter(p, s, false, &out).ReportMetric(context.Background()); err != nil {
		t.Fatalf("ReportMetric: %v", err)
	}
	if len(s.points) != 1 || s.points[0].Value {
		t.Fatalf("want one false point, got %+v", s.points)
	}
	if !strings.HasPrefix(out.String(), "Metric reported: false with labels") {
		t.Fatalf("unexpected console line %q", out.String())
	}
}

func TestReportMetric_AttachLabels(t *testing.T) {
	p := &fakeProbe{res: probe.Result{Up: true, Labels: map[string]string{"k": "v"}}}
	s := &fakeSink{}

	if _, err := newReporter(p, s, true, &bytes.Buffer{}).ReportMetric(context.Background()); err != nil {
		t.Fatalf("ReportMetric: %v", err)
	}
	if s.points[0].Labels["k"] != "v" {
		t.Fatalf("labels not attached: %+v", s.points[0])
	}
}

func TestReportMetric_SinkErrorPropagates(t *testing.T) {
	boom := errors.New("permission denied")
	p := &fakeProbe{res: probe.Result{Up: true}}
	var out bytes.Buffer

	_, err := newReporter(p, &fakeSink{err: boom}, false, &out).ReportMetric(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped sink error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed on failure, got %q", out.String())
	}
}

func TestReportMetric_ProbeErrorSkipsWrite(t *testing.T) {
	p := &fakeProbe{err: context.Canceled}
	s := &fakeSink{}

	_, err := newReporter(p, s, false, &bytes.Buffer{}).ReportMetric(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want probe error, got %v", err)
	}
	if len(s.points) != 0 {
		t.Fatalf("no point should be written, got %d", len(s.points))
	}
}
