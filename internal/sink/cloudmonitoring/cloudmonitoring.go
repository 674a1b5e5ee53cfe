// Package cloudmonitoring writes metric points to Google Cloud Monitoring.
package cloudmonitoring

import (
	"context"
	"fmt"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	metricpb "google.golang.org/genproto/googleapis/api/metric"
	monitoredrespb "google.golang.org/genproto/googleapis/api/monitoredres"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/hamed0406/netprobe/internal/domain"
)

// metricWriter is the part of *monitoring.MetricClient the sink needs.
type metricWriter interface {
	CreateTimeSeries(ctx context.Context, req *monitoringpb.CreateTimeSeriesRequest, opts ...gax.CallOption) error
	Close() error
}

type Sink struct {
	client      metricWriter
	projectName string
	log         *zap.Logger
}

// New dials the Cloud Monitoring API. Credentials come from Application
// Default Credentials unless opts say otherwise; a failure here is returned
// to the caller untouched.
func New(ctx context.Context, projectID string, log *zap.Logger, opts ...option.ClientOption) (*Sink, error) {
	c, err := monitoring.NewMetricClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("monitoring.NewMetricClient: %w", err)
	}
	return newSink(c, projectID, log), nil
}

func newSink(c metricWriter, projectID string, log *zap.Logger) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{client: c, projectName: "projects/" + projectID, log: log}
}

func (s *Sink) Write(ctx context.Context, p domain.MetricPoint) error {
	req := Request(s.projectName, p)
	if err := s.client.CreateTimeSeries(ctx, req); err != nil {
		return fmt.Errorf("create time series %s: %w", p.MetricType, err)
	}
	s.log.Debug("time_series_created",
		zap.String("project", s.projectName),
		zap.String("metric_type", p.MetricType),
	)
	return nil
}

func (s *Sink) Close() error { return s.client.Close() }

// Request builds the one-series, one-point write. The interval carries an
// end time in whole seconds and no start time.
func Request(projectName string, p domain.MetricPoint) *monitoringpb.CreateTimeSeriesRequest {
	return &monitoringpb.CreateTimeSeriesRequest{
		Name: projectName,
		TimeSeries: []*monitoringpb.TimeSeries{{
			Metric: &metricpb.Metric{
				Type:   p.MetricType,
				Labels: p.Labels,
			},
			Resource: &monitoredrespb.MonitoredResource{
				Type: p.ResourceType,
			},
			Points: []*monitoringpb.Point{{
				Interval: &monitoringpb.TimeInterval{
					EndTime: &timestamppb.Timestamp{Seconds: p.EndTime.Unix()},
				},
				Value: &monitoringpb.TypedValue{
					Value: &monitoringpb.TypedValue_BoolValue{BoolValue: p.Value},
				},
			}},
		}},
	}
}
