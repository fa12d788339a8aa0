// Package context carries request-scoped values between middleware, handlers and usecases.
package context

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	KeySession   ContextKey = "session"

	// HeaderXRequestID is the HTTP header carrying the request ID in both directions.
	HeaderXRequestID = "X-Request-Id"
)
