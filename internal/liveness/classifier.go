// Package liveness scores a frame sequence for evidence that a physical card,
// rather than a flat reproduction, was moved in front of the camera.
package liveness

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"cardcheck/internal/motion"
	dErrors "cardcheck/pkg/domain-errors"
)

// Angle steps at or above this many degrees between consecutive frames are
// treated as jumps, not hand motion.
const maxAngleStep = 10.0

// Classify scores frames. Sequences shorter than MinFrames get the
// insufficient-frames result without error. Non-finite values are rejected.
func Classify(frames []motion.Frame) (*Result, error) {
	if len(frames) < MinFrames {
		return insufficientResult(), nil
	}
	if err := validateFrames(frames); err != nil {
		return nil, err
	}
	return BuildResult(Analyze(frames)), nil
}

// Analyze extracts the scoring metrics. frames must be non-empty.
func Analyze(frames []motion.Frame) Analysis {
	n := len(frames)
	depth := make([]float64, n)
	intensity := make([]float64, n)
	lighting := make([]float64, n)
	steady := 0
	for i, f := range frames {
		depth[i] = f.Depth.DepthConfidence
		intensity[i] = f.Reflectivity.Intensity
		lighting[i] = f.Lighting
		if i > 0 {
			step := math.Abs(f.AngleY - frames[i-1].AngleY)
			if step > 0 && step < maxAngleStep {
				steady++
			}
		}
	}

	return Analysis{
		DepthVariation:    floats.Max(depth) - floats.Min(depth),
		HologramPresence:  stat.Mean(intensity, nil),
		MotionConsistency: float64(steady) / float64(n),
		LightingVariation: floats.Max(lighting) - floats.Min(lighting),
	}
}

func validateFrames(frames []motion.Frame) error {
	for i, f := range frames {
		fields := []struct {
			name string
			v    float64
		}{
			{"angle_y", f.AngleY},
			{"lighting", f.Lighting},
			{"reflectivity.intensity", f.Reflectivity.Intensity},
			{"depth.depth_confidence", f.Depth.DepthConfidence},
		}
		for _, field := range fields {
			if math.IsNaN(field.v) || math.IsInf(field.v, 0) {
				return dErrors.New(dErrors.CodeValidation,
					fmt.Sprintf("frame %d: %s must be a finite number", i, field.name))
			}
		}
	}
	return nil
}
