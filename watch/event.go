// Package watch translates a stream of low-level inotify records into a
// FIFO queue of semantic filesystem events: create, delete, move and
// overflow. Rename pairs are correlated through the kernel's move
// cookie; a MOVED_FROM whose MOVED_TO half never arrives inside the TTL
// window is flushed as a delete, because the target landed outside the
// watched tree.
package watch

import "github.com/google/uuid"

// EventType classifies a semantic filesystem event.
type EventType int

const (
	// EventCreate reports a new entry, including moves into the tree
	// from outside.
	EventCreate EventType = iota
	// EventDelete reports a removed entry, including moves out of the
	// tree whose destination was never observed.
	EventDelete
	// EventMove reports a rename whose both halves happened inside the
	// watched tree.
	EventMove
	// EventOverflow reports that the kernel queue overflowed or a record
	// could not be attributed to a watched directory; the consumer must
	// resynchronize from disk.
	EventOverflow
)

func (t EventType) String() string {
	switch t {
	case EventCreate:
		return "create"
	case EventDelete:
		return "delete"
	case EventMove:
		return "move"
	case EventOverflow:
		return "overflow"
	}
	return "unknown"
}

// Event is one semantic filesystem event. Path and NewPath are owned by
// the event.
type Event struct {
	Type  EventType
	Path  string
	IsDir bool

	// NewPath is the rename destination; only set for EventMove.
	NewPath string

	// CorrelationID is a stable join key stamped on EventMove, usable by
	// consumers that split the move back into its two halves. The
	// kernel's uint32 cookie is recycled too aggressively to serve that
	// purpose outside one read batch.
	CorrelationID uuid.UUID
}
