// Package guidance turns combined and per-modality scores into
// recommendations, interventions and next steps. Every table is evaluated
// in order against an immutable Inputs value.
package guidance

import "github.com/abhisek/lddscreen/internal/assessment"

// Inputs is what every guidance rule is evaluated against.
type Inputs struct {
	// Combined is nil when either modality is missing.
	Combined    *float64
	Handwriting *assessment.ModalityResult
	Speech      *assessment.ModalityResult
}

// NewInputs computes the combined score and bundles it with both results.
func NewInputs(handwriting, speech *assessment.ModalityResult) Inputs {
	in := Inputs{Handwriting: handwriting, Speech: speech}
	if score, ok := assessment.Combine(handwriting, speech); ok {
		in.Combined = &score
	}
	return in
}

// Condition is a predicate over Inputs.
type Condition func(Inputs) bool

// CombinedBelow holds when the combined score is present and below limit.
func CombinedBelow(limit float64) Condition {
	return func(in Inputs) bool {
		return in.Combined != nil && *in.Combined < limit
	}
}

// CombinedAtLeast holds when the combined score is present and >= limit.
func CombinedAtLeast(limit float64) Condition {
	return func(in Inputs) bool {
		return in.Combined != nil && *in.Combined >= limit
	}
}

// HandwritingScoreBelow holds when handwriting was run and scored below limit.
func HandwritingScoreBelow(limit float64) Condition {
	return func(in Inputs) bool {
		return in.Handwriting != nil && in.Handwriting.OverallScore < limit
	}
}

// SpeechScoreBelow holds when speech was run and scored below limit.
func SpeechScoreBelow(limit float64) Condition {
	return func(in Inputs) bool {
		return in.Speech != nil && in.Speech.OverallScore < limit
	}
}

// HandwritingFeatureBelow holds when the handwriting feature is present and
// below limit.
func HandwritingFeatureBelow(name string, limit float64) Condition {
	return func(in Inputs) bool {
		v, ok := in.Handwriting.Feature(name)
		return ok && v < limit
	}
}

// SpeechFeatureBelow holds when the speech feature is present and below limit.
func SpeechFeatureBelow(name string, limit float64) Condition {
	return func(in Inputs) bool {
		v, ok := in.Speech.Feature(name)
		return ok && v < limit
	}
}

// Entry pairs a condition with the messages it contributes.
type Entry struct {
	When     Condition
	Messages []string
}

// All appends the messages of every entry that holds, in order.
func All(entries []Entry, in Inputs) []string {
	out := []string{}
	for _, e := range entries {
		if e.When(in) {
			out = append(out, e.Messages...)
		}
	}
	return out
}

// First returns the messages of the first entry that holds.
func First(entries []Entry, in Inputs) []string {
	for _, e := range entries {
		if e.When(in) {
			return append([]string{}, e.Messages...)
		}
	}
	return []string{}
}
