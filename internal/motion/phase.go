package motion

import (
	"fmt"
	"math"
)

// Phase is one segment of the motion routine. The set is closed: every
// switch over Phase must cover all four values and fail on anything else.
type Phase int

const (
	PhaseTiltLeftRight Phase = iota
	PhaseRotateClockwise
	PhaseMoveCloserFarther
	PhaseCombinedMotion
)

var phaseLabels = [...]string{
	PhaseTiltLeftRight:     "tilt-left-right",
	PhaseRotateClockwise:   "rotate-clockwise",
	PhaseMoveCloserFarther: "move-closer-farther",
	PhaseCombinedMotion:    "combined-motion",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseLabels) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseLabels[p]
}

// window is the progress interval a phase occupies.
type window struct {
	start float64
	span  float64
}

func (w window) local(t float64) float64 {
	return (t - w.start) / w.span
}

var fullWindow = window{start: 0, span: 1}

// selectPhase maps global progress onto a phase and the window used to
// re-base progress inside it. Single-phase patterns own the whole sequence.
func selectPhase(pattern Pattern, t float64) (Phase, window, error) {
	switch pattern {
	case PatternTiltOnly:
		return PhaseTiltLeftRight, fullWindow, nil
	case PatternRotateOnly:
		return PhaseRotateClockwise, fullWindow, nil
	case PatternDistanceOnly:
		return PhaseMoveCloserFarther, fullWindow, nil
	case PatternComplete:
		switch {
		case t < 0.25:
			return PhaseTiltLeftRight, window{0, 0.25}, nil
		case t < 0.5:
			return PhaseRotateClockwise, window{0.25, 0.25}, nil
		case t < 0.75:
			return PhaseMoveCloserFarther, window{0.5, 0.25}, nil
		default:
			return PhaseCombinedMotion, window{0.75, 0.25}, nil
		}
	}
	return 0, window{}, fmt.Errorf("unknown motion pattern %q", pattern)
}

// pose is the unrounded kinematic state of the card.
type pose struct {
	angleX    float64
	angleY    float64
	rotationZ float64
	distance  float64
	lighting  float64
}

// kinematics evaluates the phase formulas. t is global progress, p is
// progress re-based to the phase window. The tilt phase runs on t directly.
func (ph Phase) kinematics(t, p float64) (pose, error) {
	switch ph {
	case PhaseTiltLeftRight:
		return pose{
			angleY:    25 * math.Sin(4*math.Pi*t),
			angleX:    10 * math.Sin(2*math.Pi*t),
			rotationZ: 0,
			distance:  1.0,
			lighting:  1.0 + 0.15*math.Sin(4*math.Pi*t),
		}, nil
	case PhaseRotateClockwise:
		return pose{
			rotationZ: -15 + 30*p,
			angleX:    5 * math.Sin(math.Pi*p),
			angleY:    0,
			distance:  1.0,
			lighting:  1.0 + 0.1*math.Cos(math.Pi*p),
		}, nil
	case PhaseMoveCloserFarther:
		distance := 1.0 + 0.2*math.Sin(2*math.Pi*p)
		return pose{
			distance:  distance,
			lighting:  0.9 + 0.2*distance,
			angleY:    10 * math.Sin(math.Pi*p),
			angleX:    0,
			rotationZ: 0,
		}, nil
	case PhaseCombinedMotion:
		return pose{
			angleX:    15 * math.Sin(3*math.Pi*p),
			angleY:    20 * math.Cos(2*math.Pi*p),
			rotationZ: 10 * math.Sin(math.Pi*p),
			distance:  1.0 + 0.15*math.Sin(2*math.Pi*p),
			lighting:  1.0 + 0.2*math.Cos(3*math.Pi*p),
		}, nil
	}
	return pose{}, fmt.Errorf("no kinematics for %s", ph)
}
