package probe

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	LabelReachableURL = "reachable_url"
	LabelStatusCode   = "status_code"
)

// HTTPReachabilityProbe reports whether at least one URL answers with a
// 2xx or 3xx status.
type HTTPReachabilityProbe struct {
	URLs   []string
	Client *http.Client
	Logger *zap.Logger
}

func NewHTTPReachabilityProbe(urls []string, timeout time.Duration) *HTTPReachabilityProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPReachabilityProbe{
		URLs:   urls,
		Client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPReachabilityProbe) Probe(ctx context.Context) (Result, error) {
	log := nopIfNil(h.Logger)
	for _, u := range h.URLs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		code, err := h.check(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			log.Debug("probe_url_unreachable", zap.String("url", u), zap.Error(err))
			continue
		}
		if code >= 200 && code < 400 {
			return Result{
				Up: true,
				Labels: map[string]string{
					LabelReachableURL: u,
					LabelStatusCode:   strconv.Itoa(code),
				},
			}, nil
		}
		log.Debug("probe_url_bad_status", zap.String("url", u), zap.Int("status", code))
	}
	return Result{
		Up: false,
		Labels: map[string]string{
			LabelReachableURL: None,
			LabelStatusCode:   None,
		},
	}, nil
}

func (h *HTTPReachabilityProbe) check(ctx context.Context, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
