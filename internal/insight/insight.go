// Package insight turns pattern statistics into short practice advice.
// Generation is a pure table lookup: the same inputs always yield the
// same advice, and there is no model or randomness behind it.
package insight

import (
	"target-scorer/internal/history"
	"target-scorer/internal/pattern"
)

// Advice is one generated recommendation.
type Advice struct {
	Observation   string   `json:"observation"`
	PracticeFocus string   `json:"practiceFocus"`
	Drills        []string `json:"drills,omitempty"`
}

// flyerRate is the outlier rate above which a dedicated flyer drill is
// added regardless of group shape.
const flyerRate = 0.2

// Generate produces advice for a group's tightness, bias, and trend.
// The outlier rate is outliers divided by total shots; pass zero when
// unknown.
func Generate(tightness pattern.Tightness, bias pattern.Bias, trend history.Trend, outlierRate float64) []Advice {
	var out []Advice

	if a, ok := tightnessAdvice[tightness]; ok {
		out = append(out, a)
	}
	out = append(out, biasAdvice(bias)...)
	if a, ok := trendAdvice[trend]; ok {
		out = append(out, a)
	}
	if outlierRate >= flyerRate {
		out = append(out, Advice{
			Observation:   "A noticeable share of shots land far outside the main group.",
			PracticeFocus: "Flyer control",
			Drills:        []string{"Call each shot before scoping it", "Dry-fire between live strings to reset fundamentals"},
		})
	}
	return out
}

var tightnessAdvice = map[pattern.Tightness]Advice{
	pattern.TightnessTight: {
		Observation:   "Your group is tight and consistent.",
		PracticeFocus: "Maintain current fundamentals",
		Drills:        []string{"Increase distance or reduce target size to keep progressing"},
	},
	pattern.TightnessModerate: {
		Observation:   "Your group shows moderate spread.",
		PracticeFocus: "Trigger control and follow-through",
		Drills:        []string{"Slow-fire strings with deliberate trigger press", "Ball-and-dummy drill"},
	},
	pattern.TightnessWide: {
		Observation:   "Your group is wide, pointing at inconsistent fundamentals.",
		PracticeFocus: "Sight alignment and stable position",
		Drills:        []string{"Dry-fire practice focusing on sight picture", "Supported-position strings to isolate the hold"},
	},
}

func biasAdvice(bias pattern.Bias) []Advice {
	if bias.Centered() {
		return nil
	}
	var out []Advice
	switch bias.Vertical {
	case "high":
		out = append(out, Advice{
			Observation:   "Your group centers high of the bull.",
			PracticeFocus: "Sight picture consistency",
			Drills:        []string{"Check elevation zero", "Confirm cheek weld and head position each shot"},
		})
	case "low":
		out = append(out, Advice{
			Observation:   "Your group centers low of the bull.",
			PracticeFocus: "Anticipation and flinch control",
			Drills:        []string{"Ball-and-dummy drill to expose flinch", "Surprise-break trigger practice"},
		})
	}
	switch bias.Horizontal {
	case "left":
		out = append(out, Advice{
			Observation:   "Your group centers left of the bull.",
			PracticeFocus: "Trigger finger placement",
			Drills:        []string{"Check for too much finger on the trigger", "One-hand dry-fire to feel lateral pressure"},
		})
	case "right":
		out = append(out, Advice{
			Observation:   "Your group centers right of the bull.",
			PracticeFocus: "Grip pressure and trigger press",
			Drills:        []string{"Check for too little finger on the trigger", "Strengthen support-hand grip"},
		})
	}
	return out
}

var trendAdvice = map[history.Trend]Advice{
	history.TrendImproving: {
		Observation:   "Your groups are tightening across recent sessions.",
		PracticeFocus: "Keep the current routine",
	},
	history.TrendDeclining: {
		Observation:   "Your groups have widened across recent sessions.",
		PracticeFocus: "Return to fundamentals",
		Drills:        []string{"Shorten strings and slow the cadence", "Review position and natural point of aim"},
	},
}
