package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvBackendBaseURL = "BACKEND_BASE_URL"
	EnvBackendTimeout = "BACKEND_TIMEOUT"

	EnvBookingHorizonDays  = "BOOKING_HORIZON_DAYS"
	EnvDurationCapMinutes  = "DURATION_CAP_MINUTES"
	EnvDefaultTimeZone     = "DEFAULT_TIME_ZONE"
	EnvWizardSessionTTL    = "WIZARD_SESSION_TTL"
	EnvActivityFeedSize    = "ACTIVITY_FEED_SIZE"
	EnvBookingEventsTopic  = "BOOKING_EVENTS_TOPIC"
	EnvBookingEventsDLQ    = "BOOKING_EVENTS_DLQ_TOPIC"
	EnvOperatorGroupID     = "OPERATOR_CONSUMER_GROUP_ID"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
