package handler

import (
	"fmt"
	"strings"

	"cardcheck/internal/motion"
	"cardcheck/internal/spoof"
	dErrors "cardcheck/pkg/domain-errors"
)

// maxBatchSequences mirrors the service bound so oversized batches fail before
// any frame is validated.
const maxBatchSequences = 100

// GenerateRequest is the HTTP request body for POST /liveness/sequences.
// Omitted fields take their default values.
type GenerateRequest struct {
	DurationSeconds *float64 `json:"duration_seconds"`
	FramesPerSecond *float64 `json:"frames_per_second"`
	IncludeHologram *bool    `json:"include_hologram"`
	IncludeNoise    *bool    `json:"include_noise"`
	MotionPattern   *string  `json:"motion_pattern"`

	// Parsed values (populated by Validate)
	parsedConfig motion.Config
}

// Validate merges the request onto the default config and validates it.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	cfg := motion.DefaultConfig()
	if r.DurationSeconds != nil {
		cfg.DurationSeconds = *r.DurationSeconds
	}
	if r.FramesPerSecond != nil {
		cfg.FramesPerSecond = *r.FramesPerSecond
	}
	if r.IncludeHologram != nil {
		cfg.IncludeHologram = *r.IncludeHologram
	}
	if r.IncludeNoise != nil {
		cfg.IncludeNoise = *r.IncludeNoise
	}
	if r.MotionPattern != nil {
		pattern, err := motion.ParsePattern(strings.TrimSpace(*r.MotionPattern))
		if err != nil {
			return err
		}
		cfg.MotionPattern = pattern
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	r.parsedConfig = cfg
	return nil
}

// ParsedConfig returns the validated generation config.
func (r *GenerateRequest) ParsedConfig() motion.Config {
	return r.parsedConfig
}

// SpoofRequest is the HTTP request body for the spoof endpoints.
type SpoofRequest struct {
	SpoofType string `json:"spoof_type"`

	parsedType spoof.Type
}

// Validate validates and parses the request.
func (r *SpoofRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	t, err := spoof.ParseType(strings.ToLower(strings.TrimSpace(r.SpoofType)))
	if err != nil {
		return err
	}
	r.parsedType = t
	return nil
}

// ParsedType returns the validated spoof type.
func (r *SpoofRequest) ParsedType() spoof.Type {
	return r.parsedType
}

// ClassifyRequest is the HTTP request body for POST /liveness/classify.
// An empty frames array is accepted and yields the insufficient-frames verdict.
type ClassifyRequest struct {
	Frames []motion.Frame `json:"frames"`
}

// Validate validates the request. Frame values are checked by the classifier.
func (r *ClassifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Frames == nil {
		return dErrors.New(dErrors.CodeValidation, "frames is required")
	}
	if len(r.Frames) > motion.MaxFrames {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("frames must contain at most %d entries", motion.MaxFrames))
	}
	return nil
}

// BatchClassifyRequest is the HTTP request body for POST /liveness/classify/batch.
type BatchClassifyRequest struct {
	Sequences []ClassifyRequest `json:"sequences"`
}

// Validate validates the request and every member sequence.
func (r *BatchClassifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Sequences) == 0 {
		return dErrors.New(dErrors.CodeValidation, "sequences must not be empty")
	}
	if len(r.Sequences) > maxBatchSequences {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("sequences must contain at most %d entries", maxBatchSequences))
	}
	for i := range r.Sequences {
		if err := r.Sequences[i].Validate(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeOf(err), fmt.Sprintf("sequences[%d]", i))
		}
	}
	return nil
}

// FrameSets returns the frames of every sequence in request order.
func (r *BatchClassifyRequest) FrameSets() [][]motion.Frame {
	out := make([][]motion.Frame, len(r.Sequences))
	for i, seq := range r.Sequences {
		out[i] = seq.Frames
	}
	return out
}
