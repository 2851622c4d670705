package model

import "time"

// Envelope wraps every snapshot value before it is serialized and
// handed to the store client. Payload holds exactly the point
// collection / grid / vector field shape the feed publishes; Envelope
// itself is additive bookkeeping so a reader can tell a stale value
// from one that never existed without a second round-trip to the meta
// keys.
type Envelope struct {
	CollectedAt time.Time `json:"collected_at"`
	Source      string    `json:"source"`
	Payload     any       `json:"payload"`
}

// NewEnvelope wraps payload with the current time and the collector
// name that produced it.
func NewEnvelope(source string, payload any, now time.Time) Envelope {
	return Envelope{CollectedAt: now, Source: source, Payload: payload}
}
