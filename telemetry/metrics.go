package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/notargets/gowindtunnel/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// FrameMetrics instruments the tunnel frame loop. It uses the global meter provider,
// which is a no-op unless one is installed.
type FrameMetrics struct {
	frames        metric.Int64Counter
	recycled      metric.Int64Counter
	rebuilds      metric.Int64Counter
	frameDuration metric.Float64Histogram
	sessions      metric.Int64UpDownCounter
}

func NewFrameMetrics() (*FrameMetrics, error) {
	var (
		m   = meter()
		fm  = &FrameMetrics{}
		err error
	)
	if fm.frames, err = m.Int64Counter(
		"tunnel.frames",
		metric.WithDescription("Frames stepped"),
	); err != nil {
		return nil, fmt.Errorf("creating frame counter: %w", err)
	}
	if fm.recycled, err = m.Int64Counter(
		"tunnel.particles.recycled",
		metric.WithDescription("Particles returned to the inlet"),
	); err != nil {
		return nil, fmt.Errorf("creating recycled counter: %w", err)
	}
	if fm.rebuilds, err = m.Int64Counter(
		"tunnel.streamlines.rebuilds",
		metric.WithDescription("Streamline geometry rebuilds"),
	); err != nil {
		return nil, fmt.Errorf("creating rebuild counter: %w", err)
	}
	if fm.frameDuration, err = m.Float64Histogram(
		"tunnel.frame.duration",
		metric.WithDescription("Wall time spent stepping one frame"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("creating frame duration histogram: %w", err)
	}
	if fm.sessions, err = m.Int64UpDownCounter(
		"tunnel.sessions.active",
		metric.WithDescription("Connected tunnel sessions"),
	); err != nil {
		return nil, fmt.Errorf("creating session counter: %w", err)
	}
	return fm, nil
}

// RecordFrame records one stepped frame for the given car type
func (fm *FrameMetrics) RecordFrame(ctx context.Context, carType string, elapsed time.Duration,
	recycled, rebuilds int) {
	if fm == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("car_type", carType))
	fm.frames.Add(ctx, 1, attrs)
	if recycled > 0 {
		fm.recycled.Add(ctx, int64(recycled), attrs)
	}
	if rebuilds > 0 {
		fm.rebuilds.Add(ctx, int64(rebuilds), attrs)
	}
	fm.frameDuration.Record(ctx, float64(elapsed.Microseconds())/1000., attrs)
}

func (fm *FrameMetrics) SessionOpened(ctx context.Context) {
	if fm == nil {
		return
	}
	fm.sessions.Add(ctx, 1)
}

func (fm *FrameMetrics) SessionClosed(ctx context.Context) {
	if fm == nil {
		return
	}
	fm.sessions.Add(ctx, -1)
}
