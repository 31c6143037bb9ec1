package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lddscreen/internal/assessment"
)

func modality(score float64, features assessment.Features) *assessment.ModalityResult {
	return &assessment.ModalityResult{OverallScore: score, Features: features}
}

func withCombined(score float64) Inputs {
	return Inputs{Combined: &score}
}

func TestNewInputs(t *testing.T) {
	in := NewInputs(modality(85, nil), modality(40, nil))
	require.NotNil(t, in.Combined)
	assert.InDelta(t, 67.0, *in.Combined, 1e-9)

	in = NewInputs(nil, modality(90, nil))
	assert.Nil(t, in.Combined)
}

func TestRecommendations_Bands(t *testing.T) {
	tests := []struct {
		name     string
		combined float64
		want     []string
	}{
		{"high risk", 49.9, []string{
			"Comprehensive learning disability assessment recommended",
			"Consider multi-disciplinary evaluation",
		}},
		{"monitoring lower edge", 50, []string{
			"Regular monitoring and targeted interventions",
			"Consider educational support services",
		}},
		{"monitoring upper edge", 69.99, []string{
			"Regular monitoring and targeted interventions",
			"Consider educational support services",
		}},
		{"no band", 70, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommendations(withCombined(tt.combined)))
		})
	}
}

func TestRecommendations_ModalitySpecific(t *testing.T) {
	in := NewInputs(modality(85, nil), modality(40, nil))
	got := Recommendations(in)
	assert.Equal(t, []string{
		"Regular monitoring and targeted interventions",
		"Consider educational support services",
		"Speech-language therapy consultation",
		"Daily reading practice with fluency focus",
	}, got)
	assert.NotContains(t, got, "Handwriting practice exercises with focus on letter formation")
}

func TestRecommendations_BothModalitiesLow(t *testing.T) {
	got := Recommendations(NewInputs(modality(30, nil), modality(20, nil)))
	assert.Equal(t, []string{
		"Comprehensive learning disability assessment recommended",
		"Consider multi-disciplinary evaluation",
		"Handwriting practice exercises with focus on letter formation",
		"Occupational therapy evaluation for fine motor skills",
		"Speech-language therapy consultation",
		"Daily reading practice with fluency focus",
	}, got)
}

func TestRecommendations_MissingModality(t *testing.T) {
	got := Recommendations(NewInputs(nil, modality(30, nil)))
	assert.Equal(t, []string{
		"Speech-language therapy consultation",
		"Daily reading practice with fluency focus",
	}, got)
}

func TestInterventions(t *testing.T) {
	hw := modality(30, assessment.Features{assessment.FeatureLineStraightness: 35.0})
	sp := modality(40, assessment.Features{assessment.FeatureFluency: 20.0})

	got := Interventions(NewInputs(hw, sp))
	require.Len(t, got, 3)
	assert.Equal(t, "Handwriting - Line Control", got[0].Area)
	assert.Equal(t, "4-6 weeks", got[0].Duration)
	assert.Equal(t, "Speech - Fluency", got[1].Area)
	assert.Equal(t, "3-4 times per week, 15-20 minutes", got[1].Frequency)
	assert.Equal(t, "Overall Support", got[2].Area)
	assert.Equal(t, "Ongoing", got[2].Duration)
}

func TestInterventions_None(t *testing.T) {
	hw := modality(90, assessment.Features{assessment.FeatureLineStraightness: 80.0})
	sp := modality(90, assessment.Features{assessment.FeatureFluency: 80.0})
	assert.Empty(t, Interventions(NewInputs(hw, sp)))
	assert.Empty(t, Interventions(Inputs{}))
}

func TestInterventions_MissingFeature(t *testing.T) {
	hw := modality(90, assessment.Features{})
	got := Interventions(NewInputs(hw, nil))
	assert.Empty(t, got)
}

func TestNextSteps_ExactlyOneBand(t *testing.T) {
	assert.Len(t, NextSteps(withCombined(10)), 3)
	assert.Equal(t, "Schedule comprehensive psychoeducational assessment", NextSteps(withCombined(49.9))[0])
	assert.Equal(t, "Implement targeted interventions for 6-8 weeks", NextSteps(withCombined(50))[0])
	assert.Equal(t, "Monitor progress with regular check-ins", NextSteps(withCombined(69.9))[2])
	assert.Equal(t, []string{
		"Continue current educational approach",
		"Schedule routine follow-up in 6 months",
	}, NextSteps(withCombined(70)))
	assert.Empty(t, NextSteps(Inputs{}))
}

func TestNextSteps_IncompleteReportHasNoBand(t *testing.T) {
	onlyHandwriting := NewInputs(modality(10, assessment.Features{}), nil)
	require.Nil(t, onlyHandwriting.Combined)
	assert.Empty(t, NextSteps(onlyHandwriting), "missing combined score must not fall into the lowest band")
	assert.NotContains(t, Recommendations(onlyHandwriting), "Comprehensive learning disability assessment recommended")
}
