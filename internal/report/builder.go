// Package report assembles the report document from two modality results.
package report

import (
	"time"

	"github.com/abhisek/lddscreen/internal/assessment"
	"github.com/abhisek/lddscreen/internal/guidance"
)

// Builder assembles documents. A Builder is safe for concurrent use as long
// as its IDGenerator is.
type Builder struct {
	ids           IDGenerator
	now           func() time.Time
	rules         assessment.Ruleset
	systemVersion string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator replaces the default ClockIDs generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(b *Builder) { b.ids = ids }
}

// WithRuleset replaces the strength/concern tables.
func WithRuleset(rs assessment.Ruleset) Option {
	return func(b *Builder) { b.rules = rs }
}

// WithSystemVersion sets the metadata systemVersion label.
func WithSystemVersion(v string) Option {
	return func(b *Builder) {
		if v != "" {
			b.systemVersion = v
		}
	}
}

// NewBuilder creates a Builder with the wall clock, clock-based ids and the
// built-in rule tables.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		ids:           NewClockIDs(),
		now:           time.Now,
		rules:         assessment.DefaultRuleset(),
		systemVersion: DefaultSystemVersion,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build assembles a document. Either result may be nil; the document then
// carries no combined score or risk level and a nil breakdown for the
// missing modality.
func (b *Builder) Build(handwriting, speech *assessment.ModalityResult, subject SubjectInfo) *Document {
	now := b.now()
	in := guidance.NewInputs(handwriting, speech)

	combined := Combined{
		OverallScore: in.Combined,
		Confidence:   assessment.Confidence(handwriting, speech),
	}
	if in.Combined != nil {
		risk := assessment.ClassifyRisk(*in.Combined)
		combined.RiskLevel = &risk
	}

	return &Document{
		Metadata: Metadata{
			ReportID:      b.ids.NewID(now),
			GeneratedAt:   now.UTC(),
			Version:       FormatVersion,
			SystemVersion: b.systemVersion,
		},
		SubjectInfo: subject.WithDefaults(now),
		AnalysisResults: AnalysisResults{
			Combined:    combined,
			Handwriting: b.handwritingBreakdown(handwriting),
			Speech:      b.speechBreakdown(speech),
		},
		Recommendations: guidance.Recommendations(in),
		Interventions:   guidance.Interventions(in),
		NextSteps:       guidance.NextSteps(in),
	}
}

func (b *Builder) handwritingBreakdown(r *assessment.ModalityResult) *HandwritingBreakdown {
	if r == nil {
		return nil
	}
	f := rawFeatures(r.Features)
	return &HandwritingBreakdown{
		OverallScore: r.OverallScore,
		KeyFindings: HandwritingKeyFindings{
			LineStraightness: f.NumberPtr(assessment.FeatureLineStraightness),
			LetterFormation:  f.NumberPtr(assessment.FeatureLetterFormation),
			Consistency:      f.NumberPtr(assessment.FeatureConsistency),
			WritingPressure:  f.NumberPtr(assessment.FeatureWritingPressure),
			SlantAngle:       f.NumberPtr(assessment.FeatureSlantAngle),
		},
		Strengths:   b.rules.Strengths(assessment.ModalityHandwriting, f),
		Concerns:    b.rules.Concerns(assessment.ModalityHandwriting, f),
		RawFeatures: f,
	}
}

func (b *Builder) speechBreakdown(r *assessment.ModalityResult) *SpeechBreakdown {
	if r == nil {
		return nil
	}
	f := rawFeatures(r.Features)
	return &SpeechBreakdown{
		OverallScore: r.OverallScore,
		Transcript:   f.Text(assessment.FeatureTranscript),
		KeyFindings: SpeechKeyFindings{
			ReadingSpeed:   f.NumberPtr(assessment.FeatureReadingSpeed),
			Fluency:        f.NumberPtr(assessment.FeatureFluency),
			Pronunciation:  f.NumberPtr(assessment.FeaturePronunciation),
			Clarity:        f.NumberPtr(assessment.FeatureSpeechClarity),
			PauseFrequency: f.NumberPtr(assessment.FeaturePauseFrequency),
		},
		Strengths:   b.rules.Strengths(assessment.ModalitySpeech, f),
		Concerns:    b.rules.Concerns(assessment.ModalitySpeech, f),
		RawFeatures: f,
	}
}

// rawFeatures replaces a nil map with an empty one so a breakdown always
// serializes its features as an object.
func rawFeatures(f assessment.Features) assessment.Features {
	if f == nil {
		return assessment.Features{}
	}
	return f
}
