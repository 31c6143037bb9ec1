package guidance

// Score thresholds used by the recommendation and next-step tables.
const (
	HighRiskBelow        = 50.0
	MonitoringBelow      = 70.0
	ModalitySupportBelow = 60.0
)

// recommendationBands are exclusive: only the first match contributes.
var recommendationBands = []Entry{
	{
		When: CombinedBelow(HighRiskBelow),
		Messages: []string{
			"Comprehensive learning disability assessment recommended",
			"Consider multi-disciplinary evaluation",
		},
	},
	{
		When: CombinedBelow(MonitoringBelow),
		Messages: []string{
			"Regular monitoring and targeted interventions",
			"Consider educational support services",
		},
	},
}

// modalityRecommendations apply independently of the band and of each other.
var modalityRecommendations = []Entry{
	{
		When: HandwritingScoreBelow(ModalitySupportBelow),
		Messages: []string{
			"Handwriting practice exercises with focus on letter formation",
			"Occupational therapy evaluation for fine motor skills",
		},
	},
	{
		When: SpeechScoreBelow(ModalitySupportBelow),
		Messages: []string{
			"Speech-language therapy consultation",
			"Daily reading practice with fluency focus",
		},
	},
}

// Recommendations returns the band recommendation (if any) followed by the
// modality-specific ones.
func Recommendations(in Inputs) []string {
	out := First(recommendationBands, in)
	return append(out, All(modalityRecommendations, in)...)
}

var nextStepBands = []Entry{
	{
		When: CombinedBelow(HighRiskBelow),
		Messages: []string{
			"Schedule comprehensive psychoeducational assessment",
			"Consult with school special education team",
			"Consider medical evaluation to rule out underlying conditions",
		},
	},
	{
		When: CombinedBelow(MonitoringBelow),
		Messages: []string{
			"Implement targeted interventions for 6-8 weeks",
			"Schedule follow-up assessment",
			"Monitor progress with regular check-ins",
		},
	},
	{
		When: CombinedAtLeast(MonitoringBelow),
		Messages: []string{
			"Continue current educational approach",
			"Schedule routine follow-up in 6 months",
		},
	},
}

// NextSteps returns the steps for the band the combined score falls in.
// Bands partition the scores, so one applies whenever a combined score
// exists. A report missing a modality has no combined score and gets no
// next steps instead of falling into the lowest band.
func NextSteps(in Inputs) []string {
	return First(nextStepBands, in)
}
