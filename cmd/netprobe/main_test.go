package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestRun_ReportsOnceToPushgateway(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	var pushes int32
	pg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			atomic.AddInt32(&pushes, 1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer pg.Close()

	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("PROBE_KIND", "tcp")
	t.Setenv("PROBE_TARGETS", ln.Addr().String())
	t.Setenv("METRIC_BACKEND", "pushgateway")
	t.Setenv("PUSHGATEWAY_URL", pg.URL)

	if err := run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := atomic.LoadInt32(&pushes); n != 1 {
		t.Fatalf("want exactly 1 push, got %d", n)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("PROBE_KIND", "tcp")
	t.Setenv("PROBE_TARGETS", "missing-port")
	t.Setenv("METRIC_BACKEND", "pushgateway")
	t.Setenv("PUSHGATEWAY_URL", "")

	if err := run(context.Background()); err == nil {
		t.Fatalf("expected config error")
	}
}
