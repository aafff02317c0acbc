package liveness

// Recommendation is the human-readable verdict label.
type Recommendation string

const (
	RecommendationAuthentic Recommendation = "Likely authentic ID card"
	RecommendationSpoof     Recommendation = "Possible spoofing attempt detected"
)

// ReasonInsufficientFrames is the only reason a classification can carry.
const ReasonInsufficientFrames = "Insufficient frames"

const (
	// MinFrames is the shortest sequence that gets a full analysis.
	MinFrames = 10
	// MaxScore is the sum of the top band of every rule.
	MaxScore = 100
	// LiveThreshold is exclusive: a confidence of exactly 0.65 is not live.
	LiveThreshold = 0.65
)

// Analysis holds the four intermediate metrics the score is built from.
type Analysis struct {
	DepthVariation    float64 `json:"depth_variation"`
	HologramPresence  float64 `json:"hologram_presence"`
	MotionConsistency float64 `json:"motion_consistency"`
	LightingVariation float64 `json:"lighting_variation"`
}

// Result is a classification verdict. A short-circuited result has a Reason
// and no Analysis; callers branch on Analysis == nil.
type Result struct {
	IsLive         bool           `json:"is_live"`
	Confidence     float64        `json:"confidence"`
	Score          int            `json:"score"`
	MaxScore       int            `json:"max_score"`
	Analysis       *Analysis      `json:"analysis,omitempty"`
	Recommendation Recommendation `json:"recommendation,omitempty"`
	Reason         string         `json:"reason,omitempty"`
}

// Insufficient reports whether the result is the short-circuit shape.
func (r *Result) Insufficient() bool {
	return r.Analysis == nil
}

// Verdict is a stable label for metrics and audit records.
func (r *Result) Verdict() string {
	switch {
	case r.Insufficient():
		return "insufficient"
	case r.IsLive:
		return "live"
	default:
		return "not_live"
	}
}
