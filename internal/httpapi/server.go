package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	apimw "github.com/hamed0406/netprobe/internal/httpapi/middleware"
	"github.com/hamed0406/netprobe/internal/probe"
)

// Reporter is the part of report.MetricReporter the API needs.
type Reporter interface {
	ReportMetric(ctx context.Context) (probe.Result, error)
}

type Server struct {
	Logger   *zap.Logger
	Probe    probe.Probe
	Reporter Reporter
}

func NewServer(l *zap.Logger, p probe.Probe, r Reporter) *Server {
	return &Server{Logger: l, Probe: p, Reporter: r}
}

func (s *Server) Router(keys apimw.Keys, rpm, burst int) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(apimw.RateLimit(rpm, burst))
		r.With(apimw.RequireAny(keys)).Get("/probe", s.handleProbe)
		r.With(apimw.RequireAdmin(keys)).Post("/report", s.handleReport)
	})

	return r
}

type probeResponse struct {
	Up        bool              `json:"up"`
	Labels    map[string]string `json:"labels"`
	CheckedAt time.Time         `json:"checked_at"`
	Reported  bool              `json:"reported,omitempty"`
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	res, err := s.Probe.Probe(r.Context())
	if err != nil {
		s.Logger.Warn("api_probe_error", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	s.Logger.Info("api_probe", zap.Bool("up", res.Up), zap.Any("labels", res.Labels))
	writeJSON(w, http.StatusOK, probeResponse{Up: res.Up, Labels: res.Labels, CheckedAt: time.Now().UTC()})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, err := s.Reporter.ReportMetric(r.Context())
	if err != nil {
		s.Logger.Warn("api_report_error", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, probeResponse{Up: res.Up, Labels: res.Labels, CheckedAt: time.Now().UTC(), Reported: true})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
