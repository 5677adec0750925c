package domain

import "time"

const (
	// EventChannel is the redis pub/sub channel for catalog events.
	EventChannel = "daast:events"

	EventDocumentImported  = "document.imported"
	EventRevisionPublished = "revision.published"
)

// Event is a catalog lifecycle notification fanned out to realtime
// subscribers.
type Event struct {
	Type        string    `json:"type"`
	DocumentKey string    `json:"documentKey"`
	Revision    *int      `json:"revision,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
