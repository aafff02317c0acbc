package handler

import (
	"time"

	"github.com/google/uuid"

	"cardcheck/internal/liveness"
	"cardcheck/internal/motion"
	audit "cardcheck/pkg/platform/audit"
)

// SequenceResponse is the HTTP response for a stored sequence.
type SequenceResponse struct {
	ID         uuid.UUID      `json:"id"`
	BaselineID *uuid.UUID     `json:"baseline_id,omitempty"`
	SpoofType  string         `json:"spoof_type,omitempty"`
	Config     motion.Config  `json:"config"`
	FrameCount int            `json:"frame_count"`
	Frames     []motion.Frame `json:"frames"`
	CreatedAt  time.Time      `json:"created_at"`
	ExpiresAt  time.Time      `json:"expires_at"`
}

// FromSequence converts a stored sequence to an HTTP response.
func FromSequence(seq *liveness.StoredSequence) *SequenceResponse {
	return &SequenceResponse{
		ID:         seq.ID,
		BaselineID: seq.BaselineID,
		SpoofType:  seq.SpoofType,
		Config:     seq.Sequence.Config,
		FrameCount: seq.Sequence.Len(),
		Frames:     seq.Sequence.Frames,
		CreatedAt:  seq.CreatedAt,
		ExpiresAt:  seq.ExpiresAt,
	}
}

// ClassificationResponse is the HTTP response for one classification. The
// insufficient-frames shape carries only is_live, confidence and reason
// alongside the record identifiers.
type ClassificationResponse struct {
	ResultID       uuid.UUID          `json:"result_id"`
	SequenceID     *uuid.UUID         `json:"sequence_id,omitempty"`
	FrameCount     int                `json:"frame_count"`
	IsLive         bool               `json:"is_live"`
	Confidence     float64            `json:"confidence"`
	Score          *int               `json:"score,omitempty"`
	MaxScore       *int               `json:"max_score,omitempty"`
	Analysis       *liveness.Analysis `json:"analysis,omitempty"`
	Breakdown      map[string]int     `json:"breakdown,omitempty"`
	Recommendation string             `json:"recommendation,omitempty"`
	Reason         string             `json:"reason,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// FromRecord converts a classification record to an HTTP response.
func FromRecord(record *liveness.ClassificationRecord) *ClassificationResponse {
	result := record.Result
	resp := &ClassificationResponse{
		ResultID:   record.ID,
		SequenceID: record.SequenceID,
		FrameCount: record.FrameCount,
		IsLive:     result.IsLive,
		Confidence: result.Confidence,
		Reason:     result.Reason,
		CreatedAt:  record.CreatedAt,
	}
	if result.Insufficient() {
		return resp
	}

	score, maxScore := result.Score, result.MaxScore
	resp.Score = &score
	resp.MaxScore = &maxScore
	resp.Analysis = result.Analysis
	resp.Breakdown = liveness.Breakdown(*result.Analysis)
	resp.Recommendation = string(result.Recommendation)
	return resp
}

// ClassificationListResponse wraps several classifications.
type ClassificationListResponse struct {
	Results []*ClassificationResponse `json:"results"`
	Count   int                       `json:"count"`
}

// FromRecords converts records to a list response, preserving order.
func FromRecords(records []*liveness.ClassificationRecord) *ClassificationListResponse {
	out := &ClassificationListResponse{
		Results: make([]*ClassificationResponse, len(records)),
		Count:   len(records),
	}
	for i, r := range records {
		out.Results[i] = FromRecord(r)
	}
	return out
}

// AuditEventListResponse wraps audit events in the order the service
// returned them.
type AuditEventListResponse struct {
	Events []audit.Event `json:"events"`
	Count  int           `json:"count"`
}

// FromAuditEvents converts events to a list response.
func FromAuditEvents(events []audit.Event) *AuditEventListResponse {
	if events == nil {
		events = []audit.Event{}
	}
	return &AuditEventListResponse{Events: events, Count: len(events)}
}
