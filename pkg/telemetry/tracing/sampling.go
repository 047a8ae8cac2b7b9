package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Sampler names accepted by telemetry.tracing.sampler.
const (
	SamplerAlways = "always"
	SamplerNever  = "never"
	SamplerRatio  = "ratio"
)

// createSampler decides which scan passes are recorded. The decision is
// taken on the sweeper.cycle root span and sweeper.pattern spans inherit
// it, so a pass is exported whole or not at all.
func createSampler(strategy string, ratio float64) (sdktrace.Sampler, error) {
	cycle, err := cycleSampler(strategy, ratio)
	if err != nil {
		return nil, err
	}
	return sdktrace.ParentBased(cycle), nil
}

func cycleSampler(strategy string, ratio float64) (sdktrace.Sampler, error) {
	switch strategy {
	case SamplerAlways:
		return sdktrace.AlwaysSample(), nil
	case SamplerNever:
		return sdktrace.NeverSample(), nil
	case SamplerRatio:
		if ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("tracing sample_ratio %g out of range [0, 1]", ratio)
		}
		// Trace ids are random per pass, so this keeps about ratio of all passes.
		return sdktrace.TraceIDRatioBased(ratio), nil
	}
	return nil, fmt.Errorf("unknown tracing sampler %q (want always, never or ratio)", strategy)
}
