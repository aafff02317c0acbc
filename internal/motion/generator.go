// Package motion synthesizes the frame-by-frame signal of an ID card being
// tilted, rotated and moved in front of a camera.
//
// Generation is a pure function of the Config and the frame index, except for
// the tremor amplitude which is drawn from the caller's RandomSource. Pass a
// seeded source to make whole sequences reproducible.
package motion

import (
	"fmt"
	"math"

	dErrors "cardcheck/pkg/domain-errors"
)

// Generate produces the genuine-motion frame sequence described by cfg.
// A nil src draws tremor amplitude from EntropySource.
func Generate(cfg Config, src RandomSource) (Sequence, error) {
	if err := cfg.Validate(); err != nil {
		return Sequence{}, err
	}
	if src == nil {
		src = EntropySource
	}

	total := cfg.TotalFrames()
	frameInterval := 1000 / cfg.FramesPerSecond
	keyFrames := keyFrameIndexes(total)

	frames := make([]Frame, 0, total)
	for i := 0; i < total; i++ {
		progress := float64(i) / float64(total)

		phase, win, err := selectPhase(cfg.MotionPattern, progress)
		if err != nil {
			return Sequence{}, dErrors.Wrap(err, dErrors.CodeValidation, "select motion phase")
		}
		ps, err := phase.kinematics(progress, win.local(progress))
		if err != nil {
			return Sequence{}, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("frame %d", i))
		}

		frame := Frame{
			Timestamp:  float64(i) * frameInterval,
			FrameIndex: i,
			AngleX:     ps.angleX,
			AngleY:     ps.angleY,
			RotationZ:  ps.rotationZ,
			Distance:   ps.distance,
			Lighting:   ps.lighting,
			Depth:      depthCues(ps),
			Metadata: Metadata{
				MotionPhase: phase.String(),
				IsKeyFrame:  keyFrames[i],
				Progress:    int(math.Round(progress * 100)),
			},
		}
		if cfg.IncludeHologram {
			frame.Reflectivity = hologram(ps)
		}
		if cfg.IncludeNoise {
			frame.Noise = tremor(i, src)
		}

		frames = append(frames, roundFrame(frame))
	}

	return Sequence{Config: cfg, Frames: frames}, nil
}

// keyFrameIndexes marks the sequence endpoints and the quarter boundaries.
func keyFrameIndexes(total int) map[int]bool {
	marks := map[int]bool{
		0:         true,
		total - 1: true,
	}
	for _, q := range []float64{0.25, 0.5, 0.75} {
		marks[int(math.Floor(float64(total)*q))] = true
	}
	return marks
}

// IsKeyFrame reports whether index is a key frame in a sequence of total frames.
func IsKeyFrame(index, total int) bool {
	return keyFrameIndexes(total)[index]
}

// roundFrame fixes the serialized precision. Derived models were computed
// from full-precision kinematics before this point.
func roundFrame(f Frame) Frame {
	f.Timestamp = round(f.Timestamp, 3)
	f.AngleX = round(f.AngleX, 2)
	f.AngleY = round(f.AngleY, 2)
	f.RotationZ = round(f.RotationZ, 2)
	f.Distance = round(f.Distance, 3)
	f.Lighting = round(f.Lighting, 3)

	f.Reflectivity.Intensity = round(f.Reflectivity.Intensity, 3)
	f.Reflectivity.SpecularAngle = round(f.Reflectivity.SpecularAngle, 2)
	if v := f.Reflectivity.ColorShift; v != nil {
		*v = round(*v, 2)
	}
	if v := f.Reflectivity.Iridescence; v != nil {
		*v = round(*v, 3)
	}

	f.Noise.TranslationX = round(f.Noise.TranslationX, 3)
	f.Noise.TranslationY = round(f.Noise.TranslationY, 3)
	f.Noise.MicroRotation = round(f.Noise.MicroRotation, 3)
	// Truncate so the draw stays inside its half-open range.
	f.Noise.Amplitude = math.Floor(f.Noise.Amplitude*1000) / 1000

	f.Depth.CardThickness = round(f.Depth.CardThickness, 3)
	f.Depth.EdgeShadow = round(f.Depth.EdgeShadow, 3)
	f.Depth.ParallaxFactor = round(f.Depth.ParallaxFactor, 3)
	f.Depth.PerspectiveDistortion = round(f.Depth.PerspectiveDistortion, 3)
	f.Depth.DepthConfidence = round(f.Depth.DepthConfidence, 3)
	return f
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
