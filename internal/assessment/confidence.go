package assessment

import "math"

// Confidence heuristic parameters.
const (
	BaseConfidence = 85
	MinConfidence  = 60
	MaxConfidence  = 95

	// LowContourCount is the contour count below which the handwriting
	// sample is considered too sparse.
	LowContourCount        = 5
	LowContourPenalty      = 15
	LowWordCount           = 10
	LowWordCountPenalty    = 10
	DisagreementGap        = 40.0
	DisagreementGapPenalty = 10
)

// Confidence estimates how far the combined score can be trusted, given
// signal sufficiency in each modality and agreement between them. The
// result is always within [MinConfidence, MaxConfidence]. Deductions whose
// inputs are absent do not apply.
func Confidence(handwriting, speech *ModalityResult) int {
	confidence := BaseConfidence

	if contours, ok := handwriting.Feature(FeatureContourCount); ok && contours < LowContourCount {
		confidence -= LowContourPenalty
	}
	if words, ok := speech.Feature(FeatureWordCount); ok && words < LowWordCount {
		confidence -= LowWordCountPenalty
	}
	if handwriting != nil && speech != nil &&
		math.Abs(handwriting.OverallScore-speech.OverallScore) > DisagreementGap {
		confidence -= DisagreementGapPenalty
	}

	return max(MinConfidence, min(MaxConfidence, confidence))
}
