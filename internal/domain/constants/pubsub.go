package constants

// Pub/Sub providers accepted under pubsub.provider.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Pub/Sub message attribute keys.
const (
	PubSubAttrEventType = "event_type"
	PubSubAttrUserID    = "user_id"
	PubSubAttrRequestID = "request_id"
)
