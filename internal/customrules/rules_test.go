package customrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lddscreen/internal/assessment"
)

func TestPredicate(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	tests := []struct {
		name     string
		expr     string
		features assessment.Features
		want     bool
	}{
		{"double threshold", "features.word_spacing > 60.0", assessment.Features{"word_spacing": 70.0}, true},
		{"int literal against double", "features.word_spacing > 60", assessment.Features{"word_spacing": 70.0}, true},
		{"below threshold", "features.word_spacing > 60.0", assessment.Features{"word_spacing": 50.0}, false},
		{"missing key", "features.word_spacing > 60.0", assessment.Features{}, false},
		{"nil features", "features.word_spacing > 60.0", nil, false},
		{"string feature", "features.transcript.size() > 10", assessment.Features{"transcript": "a long transcript"}, true},
		{"type mismatch", "features.transcript > 10.0", assessment.Features{"transcript": "abc"}, false},
		{"presence test", "has(features.slant_angle)", assessment.Features{"slant_angle": 3.0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := c.Predicate(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pred(tt.features))
		})
	}
}

func TestPredicate_CompileErrors(t *testing.T) {
	c, err := NewCompiler()
	require.NoError(t, err)

	_, err = c.Predicate("features.x >")
	assert.Error(t, err)

	_, err = c.Predicate(`"not a bool"`)
	assert.Error(t, err)

	_, err = c.Predicate("unknown_var > 1")
	assert.Error(t, err)
}

func TestRuleset_AppendsInOrder(t *testing.T) {
	rs, err := Ruleset([]Definition{
		{Modality: assessment.ModalityHandwriting, Kind: KindStrength, When: "features.word_spacing > 60.0", Message: "Even word spacing"},
		{Modality: assessment.ModalitySpeech, Kind: KindConcern, When: "features.word_count < 20.0", Message: "Short reading sample"},
		{Modality: assessment.ModalityHandwriting, Kind: KindStrength, When: "features.letter_spacing > 60.0", Message: "Even letter spacing"},
	})
	require.NoError(t, err)

	hw := assessment.Features{"line_straightness": 90.0, "word_spacing": 70.0, "letter_spacing": 80.0}
	assert.Equal(t,
		[]string{"Good line control and straightness", "Even word spacing", "Even letter spacing"},
		rs.Strengths(assessment.ModalityHandwriting, hw))

	sp := assessment.Features{"word_count": 12.0}
	assert.Equal(t, []string{"Short reading sample"}, rs.Concerns(assessment.ModalitySpeech, sp))
}

func TestRuleset_Empty(t *testing.T) {
	rs, err := Ruleset(nil)
	require.NoError(t, err)
	assert.Len(t, rs.SpeechConcerns, len(assessment.DefaultRuleset().SpeechConcerns))
}

func TestRuleset_InvalidDefinitions(t *testing.T) {
	_, err := Ruleset([]Definition{{Modality: "gait", Kind: KindStrength, When: "true", Message: "m"}})
	assert.Error(t, err)

	_, err = Ruleset([]Definition{{Modality: assessment.ModalitySpeech, Kind: KindConcern, When: "true"}})
	assert.Error(t, err)

	_, err = Ruleset([]Definition{{Modality: assessment.ModalitySpeech, Kind: KindConcern, When: "((", Message: "m"}})
	assert.Error(t, err)
}
