package secondary

import "context"

// EventSink defines the interface for recording structured gesture events.
// Implementations pick up the gesture correlation id from context.
type EventSink interface {
	// Record writes one event. phase names the pipeline step, e.g. "gesture.noop".
	Record(ctx context.Context, phase string, data map[string]any)
}

// GestureEventRecord represents a persisted gesture event.
type GestureEventRecord struct {
	ID        int
	GestureID string
	Phase     string
	Data      string // JSON
	CreatedAt string
}

// GestureEventRepository defines the secondary port for the gesture audit log.
type GestureEventRepository interface {
	// Create persists a new event.
	Create(ctx context.Context, record *GestureEventRecord) error

	// List retrieves the most recent events, newest first. gestureID filters when not empty.
	List(ctx context.Context, gestureID string, limit int) ([]*GestureEventRecord, error)
}
