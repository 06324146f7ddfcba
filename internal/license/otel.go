package license

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName identifies this package's OpenTelemetry meter.
const MeterName = "shareware-license"

// Metrics holds the license package's OpenTelemetry instruments. A nil
// *Metrics is valid and records nothing, so instrumentation stays optional.
type Metrics struct {
	ValidationAttempts metric.Int64Counter
	ValidationsByState metric.Int64Counter
	ValidationDuration metric.Float64Histogram
	CacheHits          metric.Int64Counter
	CacheMisses        metric.Int64Counter
	RateLimitHits      metric.Int64Counter
}

// InitializeMetrics creates all license-specific instruments on meter.
func InitializeMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.ValidationAttempts, err = meter.Int64Counter(
		"license_validation_attempts_total",
		metric.WithDescription("Total number of key validation attempts"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create validation attempts counter: %w", err)
	}

	m.ValidationsByState, err = meter.Int64Counter(
		"license_validations_by_state_total",
		metric.WithDescription("Validation outcomes partitioned by resulting state"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create validations by state counter: %w", err)
	}

	m.ValidationDuration, err = meter.Float64Histogram(
		"license_validation_duration_ms",
		metric.WithDescription("Key validation duration in milliseconds"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create validation duration histogram: %w", err)
	}

	m.CacheHits, err = meter.Int64Counter(
		"license_validation_cache_hits_total",
		metric.WithDescription("Validation result cache hits"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache hits counter: %w", err)
	}

	m.CacheMisses, err = meter.Int64Counter(
		"license_validation_cache_misses_total",
		metric.WithDescription("Validation result cache misses"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache misses counter: %w", err)
	}

	m.RateLimitHits, err = meter.Int64Counter(
		"license_validation_rate_limit_hits_total",
		metric.WithDescription("Validation attempts refused by the attempt guard"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit hits counter: %w", err)
	}

	return m, nil
}

func (m *Metrics) recordValidation(ctx context.Context, state State, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ValidationAttempts.Add(ctx, 1)
	m.ValidationsByState.Add(ctx, 1, metric.WithAttributes(
		attribute.String("state", state.String()),
	))
	m.ValidationDuration.Record(ctx, float64(elapsed.Microseconds())/1000.0)
}

func (m *Metrics) recordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheHits.Add(ctx, 1)
}

func (m *Metrics) recordCacheMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheMisses.Add(ctx, 1)
}

func (m *Metrics) recordRateLimitHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.RateLimitHits.Add(ctx, 1)
}
