// Package spoof rewrites a genuine motion sequence into what a flat
// reproduction of the card would show the camera.
//
// The rewrite is a field override applied identically to every frame; it is
// not a new physical simulation. The baseline is never mutated.
package spoof

import (
	"fmt"

	"cardcheck/internal/motion"
	dErrors "cardcheck/pkg/domain-errors"
)

// Type names the reproduction medium.
type Type string

const (
	TypePaper  Type = "paper"
	TypeScreen Type = "screen"
	TypePhoto  Type = "photo"
)

const (
	screenRefreshRateHz = 60
	screenGlare         = 0.1
	photoCardThickness  = 0.2
	photoEdgeShadow     = 0.05
	photoSurfaceTexture = "matte"
)

// IsValid checks if the type is one of the supported enum values.
func (t Type) IsValid() bool {
	switch t {
	case TypePaper, TypeScreen, TypePhoto:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// ParseType validates a spoof type name.
func ParseType(s string) (Type, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "spoof_type is required")
	}
	t := Type(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("invalid spoof_type %q: must be 'paper', 'screen' or 'photo'", s))
	}
	return t, nil
}

// BaselineConfig is the fixed capture DegradeDefault degrades: the default
// routine with hologram simulation off and tremor on.
func BaselineConfig() motion.Config {
	cfg := motion.DefaultConfig()
	cfg.IncludeHologram = false
	cfg.IncludeNoise = true
	return cfg
}

// Degrade returns a copy of baseline with the overrides for t applied.
func Degrade(baseline motion.Sequence, t Type) (motion.Sequence, error) {
	if !t.IsValid() {
		return motion.Sequence{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid spoof_type %q", t))
	}
	if baseline.Len() == 0 {
		return motion.Sequence{}, dErrors.New(dErrors.CodeValidation, "baseline sequence has no frames")
	}

	out := baseline.Clone()
	for i := range out.Frames {
		f := &out.Frames[i]
		switch t {
		case TypePaper:
			applyPaper(f)
		case TypeScreen:
			applyScreen(f)
		case TypePhoto:
			applyPhoto(f)
		}
		f.Metadata.SpoofType = t.String()
		f.Metadata.IsSpoofed = true
	}
	return out, nil
}

// DegradeDefault generates the historical fixed baseline and degrades it.
func DegradeDefault(t Type, src motion.RandomSource) (motion.Sequence, error) {
	baseline, err := motion.Generate(BaselineConfig(), src)
	if err != nil {
		return motion.Sequence{}, err
	}
	return Degrade(baseline, t)
}

// A printout is flat and has no foil.
func applyPaper(f *motion.Frame) {
	f.Depth = motion.Depth{}
	f.Reflectivity.Intensity = 0
	zero := 0.0
	f.Reflectivity.Iridescence = &zero
}

// A screen replay is backlit uniformly and has no physical edge.
func applyScreen(f *motion.Frame) {
	f.Depth.CardThickness = 0
	f.Depth.EdgeShadow = 0
	f.Lighting = 1.0
	f.Reflectivity.Intensity = screenGlare
	f.Metadata.ScreenRefreshRate = screenRefreshRateHz
	f.Metadata.PixelGridVisible = true
}

// A photographic print keeps a little paper thickness and a matte finish.
func applyPhoto(f *motion.Frame) {
	f.Depth.CardThickness = photoCardThickness
	f.Depth.EdgeShadow = photoEdgeShadow
	f.Reflectivity.Intensity = 0
	f.Metadata.SurfaceTexture = photoSurfaceTexture
}
