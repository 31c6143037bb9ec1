package guidance

import "github.com/abhisek/lddscreen/internal/assessment"

// Intervention thresholds.
const (
	LineStraightnessBelow = 40.0
	FluencyBelow          = 40.0
	OverallSupportBelow   = 60.0
)

// Intervention is a suggested remedial activity.
type Intervention struct {
	Area         string `json:"area"`
	Intervention string `json:"intervention"`
	Duration     string `json:"duration"`
	Frequency    string `json:"frequency"`
}

type interventionRule struct {
	when         Condition
	intervention Intervention
}

var interventionRules = []interventionRule{
	{
		when: HandwritingFeatureBelow(assessment.FeatureLineStraightness, LineStraightnessBelow),
		intervention: Intervention{
			Area:         "Handwriting - Line Control",
			Intervention: "Use lined paper with highlighted baselines",
			Duration:     "4-6 weeks",
			Frequency:    "Daily practice 10-15 minutes",
		},
	},
	{
		when: SpeechFeatureBelow(assessment.FeatureFluency, FluencyBelow),
		intervention: Intervention{
			Area:         "Speech - Fluency",
			Intervention: "Repeated reading exercises with familiar texts",
			Duration:     "6-8 weeks",
			Frequency:    "3-4 times per week, 15-20 minutes",
		},
	},
	{
		when: CombinedBelow(OverallSupportBelow),
		intervention: Intervention{
			Area:         "Overall Support",
			Intervention: "Individualized Education Plan (IEP) consideration",
			Duration:     "Ongoing",
			Frequency:    "Regular team meetings",
		},
	},
}

// Interventions returns each intervention whose condition holds, in table
// order. Zero to three may apply.
func Interventions(in Inputs) []Intervention {
	out := []Intervention{}
	for _, r := range interventionRules {
		if r.when(in) {
			out = append(out, r.intervention)
		}
	}
	return out
}
