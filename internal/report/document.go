package report

import (
	"time"

	"github.com/abhisek/lddscreen/internal/assessment"
	"github.com/abhisek/lddscreen/internal/guidance"
)

// Document is a generated report. It is built once and only serialized
// afterwards.
type Document struct {
	Metadata        Metadata                `json:"metadata"`
	SubjectInfo     SubjectInfo             `json:"subjectInfo"`
	AnalysisResults AnalysisResults         `json:"analysisResults"`
	Recommendations []string                `json:"recommendations"`
	Interventions   []guidance.Intervention `json:"interventions"`
	NextSteps       []string                `json:"nextSteps"`
}

// Metadata identifies a document and the format it was written in.
type Metadata struct {
	ReportID      string    `json:"reportId"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Version       string    `json:"version"`
	SystemVersion string    `json:"systemVersion"`
}

// AnalysisResults nests the combined assessment and both breakdowns.
// A breakdown is nil when its modality was never run.
type AnalysisResults struct {
	Combined    Combined              `json:"combined"`
	Handwriting *HandwritingBreakdown `json:"handwriting"`
	Speech      *SpeechBreakdown      `json:"speech"`
}

// Combined is the cross-modality assessment. OverallScore and RiskLevel
// are nil unless both modalities are present.
type Combined struct {
	OverallScore *float64              `json:"overallScore"`
	RiskLevel    *assessment.RiskLevel `json:"riskLevel"`
	Confidence   int                   `json:"confidence"`
}

// HandwritingBreakdown summarizes the handwriting result.
type HandwritingBreakdown struct {
	OverallScore float64                `json:"overallScore"`
	KeyFindings  HandwritingKeyFindings `json:"keyFindings"`
	Strengths    []string               `json:"strengths"`
	Concerns     []string               `json:"concerns"`
	RawFeatures  assessment.Features    `json:"rawFeatures"`
}

// HandwritingKeyFindings are the headline handwriting features.
type HandwritingKeyFindings struct {
	LineStraightness *float64 `json:"lineStraightness,omitempty"`
	LetterFormation  *float64 `json:"letterFormation,omitempty"`
	Consistency      *float64 `json:"consistency,omitempty"`
	WritingPressure  *float64 `json:"writingPressure,omitempty"`
	SlantAngle       *float64 `json:"slantAngle,omitempty"`
}

// SpeechBreakdown summarizes the speech result.
type SpeechBreakdown struct {
	OverallScore float64             `json:"overallScore"`
	Transcript   string              `json:"transcript,omitempty"`
	KeyFindings  SpeechKeyFindings   `json:"keyFindings"`
	Strengths    []string            `json:"strengths"`
	Concerns     []string            `json:"concerns"`
	RawFeatures  assessment.Features `json:"rawFeatures"`
}

// SpeechKeyFindings are the headline speech features.
type SpeechKeyFindings struct {
	ReadingSpeed   *float64 `json:"readingSpeed,omitempty"`
	Fluency        *float64 `json:"fluency,omitempty"`
	Pronunciation  *float64 `json:"pronunciation,omitempty"`
	Clarity        *float64 `json:"clarity,omitempty"`
	PauseFrequency *float64 `json:"pauseFrequency,omitempty"`
}
