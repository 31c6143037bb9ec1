package assessment

// Modality weights for the combined score. Handwriting carries more
// diagnostic weight than speech; the split is fixed for compatibility with
// previously issued reports.
const (
	HandwritingWeight = 0.6
	SpeechWeight      = 0.4
)

// Risk tier thresholds on the combined score. Each tier includes its lower
// bound.
const (
	LowRiskThreshold      = 75.0
	ModerateRiskThreshold = 50.0
)

// RiskTier is the three-level classification of a combined score.
type RiskTier string

const (
	RiskLow      RiskTier = "Low Risk"
	RiskModerate RiskTier = "Moderate Risk"
	RiskHigh     RiskTier = "High Risk"
)

// RiskLevel is a tier together with its human-readable description.
type RiskLevel struct {
	Level       RiskTier `json:"level"`
	Description string   `json:"description"`
}

// Combine returns the weighted combination of both modality scores.
// It reports ok == false when either modality is absent; there is no
// partial combination.
func Combine(handwriting, speech *ModalityResult) (score float64, ok bool) {
	if handwriting == nil || speech == nil {
		return 0, false
	}
	return HandwritingWeight*handwriting.OverallScore + SpeechWeight*speech.OverallScore, true
}

// ClassifyRisk maps a combined score to its risk tier.
func ClassifyRisk(score float64) RiskLevel {
	switch {
	case score >= LowRiskThreshold:
		return RiskLevel{Level: RiskLow, Description: "No significant learning difficulty indicators"}
	case score >= ModerateRiskThreshold:
		return RiskLevel{Level: RiskModerate, Description: "Some areas of concern requiring monitoring"}
	default:
		return RiskLevel{Level: RiskHigh, Description: "Multiple indicators suggest need for comprehensive assessment"}
	}
}

// ScoreLabel returns the qualitative label shown next to a single score.
func ScoreLabel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}
