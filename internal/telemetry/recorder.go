package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/greenhouse/greenhouse/internal/simulation"
)

const instrumentationName = "github.com/greenhouse/greenhouse/internal/telemetry"

// Recorder turns simulation changes into metrics and span events.
type Recorder struct {
	tracer       trace.Tracer
	days         metric.Int64Counter
	seeded       metric.Int64Counter
	transplanted metric.Int64Counter
	resets       metric.Int64Counter
}

// NewRecorder creates a recorder on the global providers.
func NewRecorder() (*Recorder, error) {
	return NewRecorderWith(otel.GetMeterProvider(), otel.GetTracerProvider())
}

// NewRecorderWith creates a recorder on the given providers.
func NewRecorderWith(mp metric.MeterProvider, tp trace.TracerProvider) (*Recorder, error) {
	meter := mp.Meter(instrumentationName)
	r := &Recorder{tracer: tp.Tracer(instrumentationName)}

	var err error
	if r.days, err = meter.Int64Counter("greenhouse.days.advanced",
		metric.WithUnit("{day}"),
		metric.WithDescription("Days advanced by the periodic trigger"),
	); err != nil {
		return nil, fmt.Errorf("creating days counter: %w", err)
	}

	if r.seeded, err = meter.Int64Counter("greenhouse.trays.seeded",
		metric.WithUnit("{tray}"),
		metric.WithDescription("Germination trays seeded"),
	); err != nil {
		return nil, fmt.Errorf("creating seeded counter: %w", err)
	}

	if r.transplanted, err = meter.Int64Counter("greenhouse.plants.transplanted",
		metric.WithUnit("{plant}"),
		metric.WithDescription("Seedlings moved from trays into rafts"),
	); err != nil {
		return nil, fmt.Errorf("creating transplanted counter: %w", err)
	}

	if r.resets, err = meter.Int64Counter("greenhouse.resets",
		metric.WithDescription("Simulation resets"),
	); err != nil {
		return nil, fmt.Errorf("creating resets counter: %w", err)
	}

	return r, nil
}

// StartRun starts a span covering a whole simulation run.
func (r *Recorder) StartRun(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, name)
}

// Observer returns a simulation observer that records every change. Changes
// are also added as events to the span carried by ctx, if any.
func (r *Recorder) Observer(ctx context.Context) simulation.Observer {
	ctx = context.WithoutCancel(ctx)
	span := trace.SpanFromContext(ctx)

	return func(c simulation.Change) {
		attrs := []attribute.KeyValue{attribute.Int("day", c.Day)}

		switch c.Kind {
		case simulation.ChangeDayAdvanced:
			r.days.Add(ctx, 1)
		case simulation.ChangeSeeded:
			variety := attribute.String("variety", c.Variety)
			r.seeded.Add(ctx, 1, metric.WithAttributes(variety))
			attrs = append(attrs, variety, attribute.String("tray.id", c.TrayID))
		case simulation.ChangeTransplanted:
			pond := attribute.Int("pond", c.Pond+1)
			r.transplanted.Add(ctx, int64(c.Moved), metric.WithAttributes(pond))
			attrs = append(attrs, pond, attribute.Int("moved", c.Moved), attribute.String("tray.id", c.TrayID))
		case simulation.ChangeReset:
			r.resets.Add(ctx, 1)
		}

		span.AddEvent(c.Kind.String(), trace.WithAttributes(attrs...))
	}
}
