package liveness

import (
	"time"

	"github.com/google/uuid"

	"cardcheck/internal/motion"
)

// StoredSequence is a generated or spoofed sequence held for later retrieval
// and classification.
type StoredSequence struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// BaselineID is set for spoofed sequences derived from a stored baseline.
	BaselineID *uuid.UUID      `json:"baseline_id,omitempty"`
	SpoofType  string          `json:"spoof_type,omitempty"`
	Sequence   motion.Sequence `json:"sequence"`
}

// Expired reports whether the sequence has outlived its TTL at now.
func (s *StoredSequence) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// ClassificationRecord is a persisted classification.
type ClassificationRecord struct {
	ID uuid.UUID `json:"id"`

	// SequenceID is set when a stored sequence was classified.
	SequenceID *uuid.UUID `json:"sequence_id,omitempty"`
	FrameCount int        `json:"frame_count"`
	Result     Result     `json:"result"`
	RequestID  string     `json:"request_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
