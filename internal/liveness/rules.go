package liveness

// band awards points when a metric is strictly greater than threshold.
type band struct {
	threshold float64
	points    int
}

// rule lists a metric's bands from the highest threshold down. The first
// band the metric clears wins; clearing none scores zero.
type rule struct {
	name   string
	metric func(Analysis) float64
	bands  []band
}

var scoringRules = []rule{
	{
		name:   "depth_variation",
		metric: func(a Analysis) float64 { return a.DepthVariation },
		bands:  []band{{0.5, 30}, {0.3, 20}, {0.1, 10}},
	},
	{
		name:   "hologram_presence",
		metric: func(a Analysis) float64 { return a.HologramPresence },
		bands:  []band{{0.4, 25}, {0.2, 15}},
	},
	{
		name:   "motion_consistency",
		metric: func(a Analysis) float64 { return a.MotionConsistency },
		bands:  []band{{0.7, 25}, {0.5, 15}},
	},
	{
		name:   "lighting_variation",
		metric: func(a Analysis) float64 { return a.LightingVariation },
		bands:  []band{{0.15, 20}, {0.08, 10}},
	},
}

func (r rule) score(a Analysis) int {
	v := r.metric(a)
	for _, b := range r.bands {
		if v > b.threshold {
			return b.points
		}
	}
	return 0
}

// Score sums the points of every rule.
// This is pure domain logic - no I/O, no side effects.
func Score(a Analysis) int {
	total := 0
	for _, r := range scoringRules {
		total += r.score(a)
	}
	return total
}

// Breakdown returns the points each rule contributed, keyed by metric name.
func Breakdown(a Analysis) map[string]int {
	out := make(map[string]int, len(scoringRules))
	for _, r := range scoringRules {
		out[r.name] = r.score(a)
	}
	return out
}

// BuildResult turns the metrics into a verdict.
func BuildResult(a Analysis) *Result {
	score := Score(a)
	confidence := float64(score) / float64(MaxScore)
	result := &Result{
		IsLive:     confidence > LiveThreshold,
		Confidence: confidence,
		Score:      score,
		MaxScore:   MaxScore,
		Analysis:   &a,
	}
	if result.IsLive {
		result.Recommendation = RecommendationAuthentic
	} else {
		result.Recommendation = RecommendationSpoof
	}
	return result
}

func insufficientResult() *Result {
	return &Result{
		IsLive:     false,
		Confidence: 0,
		Reason:     ReasonInsufficientFrames,
	}
}
