package domain

import "context"

// Encoder is the shared text vectorization contract between layers.
// The engine calls Encode at most once per query, never per candidate.
type Encoder interface {
	Encode(ctx context.Context, text string) (EncodeResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EncodeResult carries the query vector and token usage through the decorator chain.
type EncodeResult struct {
	Vector       []float32
	PromptTokens int
	TotalTokens  int
}
