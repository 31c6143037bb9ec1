package assessment

import "math"

// Predicate tests a feature vector. Predicates over a missing or
// non-numeric feature are false.
type Predicate func(Features) bool

// Rule emits Message when Holds is true.
type Rule struct {
	Message string
	Holds   Predicate
}

// Above holds when the feature is strictly greater than threshold.
func Above(name string, threshold float64) Predicate {
	return func(f Features) bool {
		v, ok := f.Number(name)
		return ok && v > threshold
	}
}

// Below holds when the feature is strictly less than threshold.
func Below(name string, threshold float64) Predicate {
	return func(f Features) bool {
		v, ok := f.Number(name)
		return ok && v < threshold
	}
}

// Between holds when lo < feature < hi.
func Between(name string, lo, hi float64) Predicate {
	return func(f Features) bool {
		v, ok := f.Number(name)
		return ok && v > lo && v < hi
	}
}

// MagnitudeBelow holds when |feature| < threshold.
func MagnitudeBelow(name string, threshold float64) Predicate {
	return func(f Features) bool {
		v, ok := f.Number(name)
		return ok && math.Abs(v) < threshold
	}
}

// MagnitudeAbove holds when |feature| > threshold.
func MagnitudeAbove(name string, threshold float64) Predicate {
	return func(f Features) bool {
		v, ok := f.Number(name)
		return ok && math.Abs(v) > threshold
	}
}

var handwritingStrengths = []Rule{
	{"Good line control and straightness", Above(FeatureLineStraightness, 70)},
	{"Well-formed letters", Above(FeatureLetterFormation, 70)},
	{"Consistent letter sizing and spacing", Above(FeatureConsistency, 70)},
	{"Appropriate writing pressure", Between(FeatureWritingPressure, 20, 80)},
	{"Good slant control", MagnitudeBelow(FeatureSlantAngle, 10)},
}

var handwritingConcerns = []Rule{
	{"Difficulty maintaining straight lines", Below(FeatureLineStraightness, 40)},
	{"Poor letter formation quality", Below(FeatureLetterFormation, 40)},
	{"Inconsistent letter sizes and spacing", Below(FeatureConsistency, 40)},
	{"Very light writing pressure", Below(FeatureWritingPressure, 20)},
	{"Excessive writing pressure", Above(FeatureWritingPressure, 90)},
	{"Inconsistent letter slant", MagnitudeAbove(FeatureSlantAngle, 20)},
}

var speechStrengths = []Rule{
	{"Good speech fluency", Above(FeatureFluency, 70)},
	{"Clear pronunciation", Above(FeaturePronunciation, 70)},
	{"Good speech clarity", Above(FeatureSpeechClarity, 70)},
	{"Appropriate reading speed", Between(FeatureReadingSpeed, 80, 200)},
	{"Consistent volume control", Above(FeatureVolumeConsistency, 70)},
}

var speechConcerns = []Rule{
	{"Speech fluency difficulties", Below(FeatureFluency, 40)},
	{"Pronunciation challenges", Below(FeaturePronunciation, 40)},
	{"Poor speech clarity", Below(FeatureSpeechClarity, 40)},
	{"Slow reading speed", Below(FeatureReadingSpeed, 60)},
	{"Frequent pauses during reading", Above(FeaturePauseFrequency, 10)},
}

// Evaluate runs every rule against f and returns the messages of those that
// hold, in table order. Rules are independent: none short-circuits another.
func Evaluate(rules []Rule, f Features) []string {
	out := []string{}
	for _, r := range rules {
		if r.Holds(f) {
			out = append(out, r.Message)
		}
	}
	return out
}

// Ruleset groups the strength and concern tables for both modalities.
type Ruleset struct {
	HandwritingStrengths []Rule
	HandwritingConcerns  []Rule
	SpeechStrengths      []Rule
	SpeechConcerns       []Rule
}

// DefaultRuleset returns the built-in tables.
func DefaultRuleset() Ruleset {
	return Ruleset{
		HandwritingStrengths: handwritingStrengths,
		HandwritingConcerns:  handwritingConcerns,
		SpeechStrengths:      speechStrengths,
		SpeechConcerns:       speechConcerns,
	}
}

// With returns a new Ruleset with extra's rules appended after rs's rules.
// Neither input is modified.
func (rs Ruleset) With(extra Ruleset) Ruleset {
	return Ruleset{
		HandwritingStrengths: concatRules(rs.HandwritingStrengths, extra.HandwritingStrengths),
		HandwritingConcerns:  concatRules(rs.HandwritingConcerns, extra.HandwritingConcerns),
		SpeechStrengths:      concatRules(rs.SpeechStrengths, extra.SpeechStrengths),
		SpeechConcerns:       concatRules(rs.SpeechConcerns, extra.SpeechConcerns),
	}
}

func concatRules(a, b []Rule) []Rule {
	out := make([]Rule, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Strengths returns the strengths found in f for the given modality.
func (rs Ruleset) Strengths(m Modality, f Features) []string {
	if m == ModalityHandwriting {
		return Evaluate(rs.HandwritingStrengths, f)
	}
	return Evaluate(rs.SpeechStrengths, f)
}

// Concerns returns the concerns found in f for the given modality.
func (rs Ruleset) Concerns(m Modality, f Features) []string {
	if m == ModalityHandwriting {
		return Evaluate(rs.HandwritingConcerns, f)
	}
	return Evaluate(rs.SpeechConcerns, f)
}
