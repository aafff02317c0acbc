package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action names what happened to a liveness subject.
type Action string

const (
	ActionSequenceGenerated Action = "liveness_generated"
	ActionSequenceSpoofed   Action = "liveness_spoofed"
	ActionClassified        Action = "liveness_classified"
)

// Event is emitted from the liveness service to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	// SubjectID is the sequence ID for generation events and the result ID
	// for classification events.
	SubjectID string `json:"subject_id"`
	Decision  string `json:"decision,omitempty"`
	Score     int    `json:"score,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Sink receives events. Sinks are write-only destinations such as a topic.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Store is a Sink that can also be queried.
type Store interface {
	Sink
	ListBySubject(ctx context.Context, subjectID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
