package motion

import "math"

const (
	// tremorReferenceHz is the nominal capture rate the tremor model is tuned
	// for. It does not follow the configured frame rate.
	tremorReferenceHz = 15.0
	shakeFrequency    = 10.0

	minAmplitude  = 2.0
	amplitudeSpan = 0.5

	cardThicknessMM = 0.76
)

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// hologram approximates foil brightness and hue shift for a pose.
func hologram(ps pose) Reflectivity {
	angleIntensity := math.Abs(math.Sin(toRadians(ps.angleX + ps.angleY)))
	base := 0.3 + 0.7*angleIntensity
	colorShift := 60 * angleIntensity
	iridescence := 0.5 + 0.5*angleIntensity
	return Reflectivity{
		Intensity:     math.Min(base*ps.lighting, 1.0),
		SpecularAngle: toDegrees(math.Atan2(ps.angleY, ps.angleX)),
		ColorShift:    &colorShift,
		Iridescence:   &iridescence,
	}
}

// tremor models hand shake at a frame index. amplitude is drawn from src.
func tremor(frameIndex int, src RandomSource) Noise {
	tSec := float64(frameIndex) / tremorReferenceHz
	return Noise{
		TranslationX:  2.5*math.Sin(shakeFrequency*tSec) + 0.5*math.Cos(3*shakeFrequency*tSec),
		TranslationY:  2.0*math.Cos(shakeFrequency*tSec) + 0.7*math.Sin(2.5*shakeFrequency*tSec),
		MicroRotation: 0.5 * math.Sin(1.5*shakeFrequency*tSec),
		Amplitude:     minAmplitude + amplitudeSpan*src.Float64(),
	}
}

// depthCues derives the parallax heuristics from tilt and distance.
func depthCues(ps pose) Depth {
	tilt := math.Hypot(ps.angleX, ps.angleY)
	return Depth{
		CardThickness:         cardThicknessMM * (tilt / 30),
		EdgeShadow:            math.Min(tilt/20, 1.0),
		ParallaxFactor:        (1.2 - ps.distance) * 10,
		PerspectiveDistortion: tilt / 90,
		DepthConfidence:       tilt / 30,
	}
}
