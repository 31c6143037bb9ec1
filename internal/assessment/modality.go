package assessment

import (
	"encoding/json"
	"math"
)

// Modality names one of the two independent assessment channels.
type Modality string

const (
	ModalityHandwriting Modality = "handwriting"
	ModalitySpeech      Modality = "speech"
)

// Feature names produced by the handwriting analyzer.
const (
	FeatureLineStraightness = "line_straightness"
	FeatureLetterFormation  = "letter_formation_quality"
	FeatureConsistency      = "consistency_score"
	FeatureWritingPressure  = "writing_pressure"
	FeatureSlantAngle       = "slant_angle"
	FeatureContourCount     = "contour_count"
	FeatureAvgLetterSize    = "avg_letter_size"
	FeatureLetterSpacing    = "letter_spacing"
	FeatureWordSpacing      = "word_spacing"
)

// Feature names produced by the speech analyzer.
const (
	FeatureTranscript        = "transcript"
	FeatureReadingSpeed      = "reading_speed_wpm"
	FeatureFluency           = "fluency_score"
	FeaturePronunciation     = "pronunciation_score"
	FeatureSpeechClarity     = "speech_clarity"
	FeaturePauseFrequency    = "pause_frequency"
	FeatureVolumeConsistency = "volume_consistency"
	FeatureWordCount         = "word_count"
	FeatureTotalDuration     = "total_duration"
)

// ModalityResult is the output of one external analyzer.
// A nil *ModalityResult means the modality was never run.
type ModalityResult struct {
	OverallScore float64  `json:"overall_score"`
	Features     Features `json:"features"`
}

// Features is the named measurement vector returned by an analyzer.
// Values are numbers, except the speech transcript which is a string.
type Features map[string]any

// Number returns the numeric value of a feature. Missing keys, strings,
// NaN and other non-numeric values report ok == false.
func (f Features) Number(name string) (float64, bool) {
	v, ok := f[name]
	if !ok {
		return 0, false
	}
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// NumberPtr is Number for optional serialized fields.
func (f Features) NumberPtr(name string) *float64 {
	n, ok := f.Number(name)
	if !ok {
		return nil
	}
	return &n
}

// Text returns a string feature, or "" when absent or not a string.
func (f Features) Text(name string) string {
	s, _ := f[name].(string)
	return s
}

// Feature looks up a numeric feature on a possibly absent result.
func (r *ModalityResult) Feature(name string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	return r.Features.Number(name)
}
