package health

import "context"

// DBPinger checks geo index store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EncoderChecker checks embedding provider availability.
type EncoderChecker interface {
	HealthCheck(ctx context.Context) error
}
