package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultBackendBaseURL = "http://localhost:9000"
	DefaultBackendTimeout = 10 * time.Second

	DefaultBookingHorizonDays = 30
	DefaultDurationCapMinutes = 180
	DefaultDefaultTimeZone    = "UTC"
	DefaultWizardSessionTTL   = 30 * time.Minute
	DefaultActivityFeedSize   = 100
	DefaultBookingEventsTopic = "booking-events"
	DefaultBookingEventsDLQ   = "booking-events-dlq"
	DefaultOperatorGroupID    = "operator-console"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)

// NormalizePaginationLimit clamps a caller-provided page size into a sane
// range.
func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > DefaultPaginationLimit {
		return DefaultPaginationLimit
	}
	return limit
}
