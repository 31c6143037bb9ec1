package httpapi

import (
	"encoding/json"
	"time"

	"github.com/abhisek/lddscreen/internal/report"
)

type createReportRequest struct {
	Subject report.SubjectInfo `json:"subject"`

	// Handwriting and Speech are analyzer results, validated like a
	// service response. Omitted or null means not assessed.
	Handwriting json.RawMessage `json:"handwriting"`
	Speech      json.RawMessage `json:"speech"`
	Narrate     bool            `json:"narrate"`
}

type reportResponse struct {
	Report         *report.Document `json:"report"`
	Narrative      string           `json:"narrative,omitempty"`
	NarrativeError string           `json:"narrativeError,omitempty"`
}

type reportSummary struct {
	ID            string    `json:"reportId"`
	SubjectName   string    `json:"subjectName"`
	CombinedScore *float64  `json:"combinedScore"`
	RiskLevel     string    `json:"riskLevel,omitempty"`
	Confidence    int       `json:"confidence"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

type listResponse struct {
	Reports []reportSummary `json:"reports"`
}

type errorResponse struct {
	Error string `json:"error"`
}
