package motion

import (
	"fmt"
	"math"

	dErrors "cardcheck/pkg/domain-errors"
)

// MaxFrames bounds a single generation call. Callers that need longer
// captures must split them.
const MaxFrames = 10000

// MinFrameIntervalMs is the resolution timestamps are stored at. Shorter
// intervals would round neighbouring frames onto the same timestamp.
const MinFrameIntervalMs = 0.001

// Pattern selects which kinematic phases a sequence walks through.
type Pattern string

const (
	PatternComplete     Pattern = "complete"
	PatternTiltOnly     Pattern = "tilt-only"
	PatternRotateOnly   Pattern = "rotate-only"
	PatternDistanceOnly Pattern = "distance-only"
)

// IsValid checks if the pattern is one of the supported enum values.
func (p Pattern) IsValid() bool {
	switch p {
	case PatternComplete, PatternTiltOnly, PatternRotateOnly, PatternDistanceOnly:
		return true
	}
	return false
}

func (p Pattern) String() string {
	return string(p)
}

// ParsePattern validates a motion pattern name.
func ParsePattern(s string) (Pattern, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "motion pattern cannot be empty")
	}
	p := Pattern(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("unknown motion pattern %q: must be one of complete, tilt-only, rotate-only, distance-only", s))
	}
	return p, nil
}

// Config is the sole input to Generate. It is never mutated by the generator.
type Config struct {
	DurationSeconds float64 `json:"duration_seconds"`
	FramesPerSecond float64 `json:"frames_per_second"`
	IncludeHologram bool    `json:"include_hologram"`
	IncludeNoise    bool    `json:"include_noise"`
	MotionPattern   Pattern `json:"motion_pattern"`
}

// DefaultConfig returns a three second, 15 fps capture of the complete motion
// routine with hologram and tremor simulation enabled.
func DefaultConfig() Config {
	return Config{
		DurationSeconds: 3,
		FramesPerSecond: 15,
		IncludeHologram: true,
		IncludeNoise:    true,
		MotionPattern:   PatternComplete,
	}
}

// TotalFrames is floor(duration * fps).
func (c Config) TotalFrames() int {
	return int(math.Floor(c.DurationSeconds * c.FramesPerSecond))
}

// Validate rejects configurations that would produce no frames, an unbounded
// number of frames, or frames without a defined motion phase.
func (c Config) Validate() error {
	if math.IsNaN(c.DurationSeconds) || c.DurationSeconds <= 0 || math.IsInf(c.DurationSeconds, 0) {
		return dErrors.New(dErrors.CodeValidation, "duration_seconds must be a positive number")
	}
	if math.IsNaN(c.FramesPerSecond) || c.FramesPerSecond <= 0 || math.IsInf(c.FramesPerSecond, 0) {
		return dErrors.New(dErrors.CodeValidation, "frames_per_second must be a positive number")
	}
	if _, err := ParsePattern(string(c.MotionPattern)); err != nil {
		return err
	}
	if 1000/c.FramesPerSecond < MinFrameIntervalMs {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("frames_per_second must be at most %g", 1000/MinFrameIntervalMs))
	}
	total := c.DurationSeconds * c.FramesPerSecond
	if total < 1 {
		return dErrors.New(dErrors.CodeValidation, "duration_seconds * frames_per_second must yield at least one frame")
	}
	if math.Floor(total) > MaxFrames {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("configuration exceeds %d frames", MaxFrames))
	}
	return nil
}

// Frame is one simulated instant of the document in front of the camera.
type Frame struct {
	Timestamp    float64      `json:"timestamp"`
	FrameIndex   int          `json:"frame_index"`
	AngleX       float64      `json:"angle_x"`
	AngleY       float64      `json:"angle_y"`
	RotationZ    float64      `json:"rotation_z"`
	Distance     float64      `json:"distance"`
	Lighting     float64      `json:"lighting"`
	Reflectivity Reflectivity `json:"reflectivity"`
	Noise        Noise        `json:"noise"`
	Depth        Depth        `json:"depth"`
	Metadata     Metadata     `json:"metadata"`
}

// Reflectivity approximates the response of a foil or hologram security
// feature. ColorShift and Iridescence are nil when hologram simulation is off.
type Reflectivity struct {
	Intensity     float64  `json:"intensity"`
	SpecularAngle float64  `json:"specular_angle"`
	ColorShift    *float64 `json:"color_shift,omitempty"`
	Iridescence   *float64 `json:"iridescence,omitempty"`
}

// Noise models natural hand tremor.
type Noise struct {
	TranslationX  float64 `json:"translation_x"`
	TranslationY  float64 `json:"translation_y"`
	MicroRotation float64 `json:"micro_rotation"`
	Amplitude     float64 `json:"amplitude"`
}

// Depth holds the 3-D cues only a physical card produces.
type Depth struct {
	CardThickness         float64 `json:"card_thickness"`
	EdgeShadow            float64 `json:"edge_shadow"`
	ParallaxFactor        float64 `json:"parallax_factor"`
	PerspectiveDistortion float64 `json:"perspective_distortion"`
	DepthConfidence       float64 `json:"depth_confidence"`
}

// Metadata describes where a frame sits in the motion routine. The spoof
// fields are only set on degraded sequences.
type Metadata struct {
	MotionPhase string `json:"motion_phase"`
	IsKeyFrame  bool   `json:"is_key_frame"`
	Progress    int    `json:"progress"`

	SpoofType         string `json:"spoof_type,omitempty"`
	IsSpoofed         bool   `json:"is_spoofed,omitempty"`
	ScreenRefreshRate int    `json:"screen_refresh_rate,omitempty"`
	PixelGridVisible  bool   `json:"pixel_grid_visible,omitempty"`
	SurfaceTexture    string `json:"surface_texture,omitempty"`
}

// Sequence is an ordered run of frames sharing one generation config.
type Sequence struct {
	Config Config  `json:"config"`
	Frames []Frame `json:"frames"`
}

// Len returns the number of frames.
func (s Sequence) Len() int {
	return len(s.Frames)
}

// Clone returns a deep copy, including the optional reflectivity fields, so
// a transform never aliases its input.
func (s Sequence) Clone() Sequence {
	out := Sequence{Config: s.Config, Frames: make([]Frame, len(s.Frames))}
	for i, f := range s.Frames {
		f.Reflectivity.ColorShift = clonePtr(f.Reflectivity.ColorShift)
		f.Reflectivity.Iridescence = clonePtr(f.Reflectivity.Iridescence)
		out.Frames[i] = f
	}
	return out
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
