package constant

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-HRBA-Request-ID"

	IdempotencyHeader       = "X-HRBA-Idempotency"
	IdempotencyKeyHeader    = "X-HRBA-Idempotency-Key"
	IdempotencyKeyLocalsKey = "idempotencyKey"

	IdempotencyKeyLengthLimit = 128
)
