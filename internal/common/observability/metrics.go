package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Outcome values recorded for view actions.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// Observability records view actions through an OpenTelemetry meter exported
// to Prometheus. The zero value is a valid no-op recorder.
type Observability struct {
	meterProvider  *metric.MeterProvider
	actionCounter  otelmetric.Int64Counter
	actionDuration otelmetric.Float64Histogram
}

// New wires a meter provider whose readings are exported through reg. A nil
// reg uses the default Prometheus registerer.
func New(serviceName string, reg prometheus.Registerer) (*Observability, error) {
	opts := []otelprom.Option{}
	if reg != nil {
		opts = append(opts, otelprom.WithRegisterer(reg))
	}
	exporter, err := otelprom.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	actionCounter, err := meter.Int64Counter(
		"view.actions",
		otelmetric.WithDescription("Number of view actions handled"),
	)
	if err != nil {
		return nil, fmt.Errorf("create action counter: %w", err)
	}

	actionDuration, err := meter.Float64Histogram(
		"view.action.duration",
		otelmetric.WithDescription("View action duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create action histogram: %w", err)
	}

	return &Observability{
		meterProvider:  provider,
		actionCounter:  actionCounter,
		actionDuration: actionDuration,
	}, nil
}

// Noop returns a recorder that drops everything.
func Noop() *Observability {
	return &Observability{}
}

// RecordAction counts one view action and its duration.
func (o *Observability) RecordAction(ctx context.Context, view, action, outcome string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("view", view),
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	)
	if o.actionCounter != nil {
		o.actionCounter.Add(ctx, 1, attrs)
	}
	if o.actionDuration != nil {
		o.actionDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

// Track starts timing an action; call the returned func with the action's error.
func (o *Observability) Track(ctx context.Context, view, action string) func(err error, rejected bool) {
	start := time.Now()
	return func(err error, rejected bool) {
		outcome := OutcomeSuccess
		switch {
		case rejected:
			outcome = OutcomeRejected
		case err != nil:
			outcome = OutcomeError
		}
		o.RecordAction(ctx, view, action, outcome, time.Since(start))
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
