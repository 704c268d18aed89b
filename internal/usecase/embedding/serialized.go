// Package embedding provides encoder decorators used at the integration boundary.
package embedding

import (
	"context"
	"fmt"

	"github.com/triply-cloud/poidex/internal/domain"
)

// SerializedEncoder bounds concurrent access to an encoder whose
// implementation is not safe (or not desirable) for unbounded concurrent use.
// The bound is explicit at the integration boundary; callers block on a
// semaphore slot or on context cancellation, whichever comes first.
type SerializedEncoder struct {
	inner domain.Encoder
	slots chan struct{}
}

// NewSerializedEncoder wraps inner with a bound of maxConcurrent in-flight
// Encode calls. maxConcurrent must be positive.
func NewSerializedEncoder(inner domain.Encoder, maxConcurrent int) *SerializedEncoder {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &SerializedEncoder{
		inner: inner,
		slots: make(chan struct{}, maxConcurrent),
	}
}

// Encode acquires a slot and delegates to the inner encoder.
func (e *SerializedEncoder) Encode(ctx context.Context, text string) (domain.EncodeResult, error) {
	select {
	case e.slots <- struct{}{}:
		defer func() { <-e.slots }()
	case <-ctx.Done():
		return domain.EncodeResult{}, fmt.Errorf("waiting for encoder slot: %w", ctx.Err())
	}

	res, err := e.inner.Encode(ctx, text)
	if err != nil {
		return domain.EncodeResult{}, fmt.Errorf("serialized encode: %w", err)
	}
	return res, nil
}

// HealthCheck delegates to the inner encoder when it supports health checks.
func (e *SerializedEncoder) HealthCheck(ctx context.Context) error {
	if hc, ok := e.inner.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("encoder health check: %w", err)
		}
	}
	return nil
}
