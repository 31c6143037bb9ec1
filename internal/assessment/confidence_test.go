package assessment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name        string
		handwriting *ModalityResult
		speech      *ModalityResult
		want        int
	}{
		{
			name:        "no deductions",
			handwriting: result(80, Features{FeatureContourCount: 40.0}),
			speech:      result(70, Features{FeatureWordCount: 50.0}),
			want:        85,
		},
		{
			name:        "sparse handwriting",
			handwriting: result(80, Features{FeatureContourCount: 4.0}),
			speech:      result(70, Features{FeatureWordCount: 50.0}),
			want:        70,
		},
		{
			name:        "too few words",
			handwriting: result(80, Features{FeatureContourCount: 40.0}),
			speech:      result(70, Features{FeatureWordCount: 9.0}),
			want:        75,
		},
		{
			name:        "modalities disagree",
			handwriting: result(90, Features{FeatureContourCount: 40.0}),
			speech:      result(49, Features{FeatureWordCount: 50.0}),
			want:        75,
		},
		{
			name:        "gap of exactly 40 is not a disagreement",
			handwriting: result(90, Features{FeatureContourCount: 40.0}),
			speech:      result(50, Features{FeatureWordCount: 50.0}),
			want:        85,
		},
		{
			name:        "all deductions clamp to minimum",
			handwriting: result(85, Features{FeatureContourCount: 3.0}),
			speech:      result(20, Features{FeatureWordCount: 5.0}),
			want:        MinConfidence,
		},
		{
			name:        "missing handwriting skips its deductions",
			handwriting: nil,
			speech:      result(90, Features{FeatureWordCount: 5.0}),
			want:        75,
		},
		{
			name:        "missing features skip their deductions",
			handwriting: result(85, Features{}),
			speech:      result(80, nil),
			want:        85,
		},
		{
			name: "both missing",
			want: 85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Confidence(tt.handwriting, tt.speech))
		})
	}
}

func TestConfidence_AlwaysInRange(t *testing.T) {
	values := []float64{math.Inf(-1), -1e9, -1, 0, 4.99, 5, 9.99, 10, 1e9, math.Inf(1)}
	scores := []float64{-500, 0, 20, 50, 85, 100, 900}
	for _, c := range values {
		for _, w := range values {
			for _, hs := range scores {
				for _, ss := range scores {
					got := Confidence(
						result(hs, Features{FeatureContourCount: c}),
						result(ss, Features{FeatureWordCount: w}),
					)
					if got < MinConfidence || got > MaxConfidence {
						t.Fatalf("confidence %d out of range for contours=%v words=%v h=%v s=%v", got, c, w, hs, ss)
					}
				}
			}
		}
	}
}
