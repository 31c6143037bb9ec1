package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/lddscreen/internal/report"
)

// ErrNotFound is returned when a report id is unknown.
var ErrNotFound = errors.New("report not found")

// ErrIncompatibleFormat is returned when an archived document was written
// in a format this build cannot read.
var ErrIncompatibleFormat = errors.New("incompatible report format")

// ReportSummary is the listing row for an archived report.
type ReportSummary struct {
	ID            string
	Sequence      int64
	SubjectName   string
	CombinedScore *float64
	RiskLevel     string
	Confidence    int
	GeneratedAt   time.Time
}

// StoredReport is an archived document with its optional narrative.
type StoredReport struct {
	Document  *report.Document
	Narrative string
}

// ReportRepo archives generated documents.
type ReportRepo interface {
	// Save stores a new document.
	Save(ctx context.Context, doc *report.Document) error

	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*StoredReport, error)

	// List returns the most recent reports, newest first. limit <= 0
	// returns all of them.
	List(ctx context.Context, limit int) ([]ReportSummary, error)

	// SetNarrative attaches a narrative summary to an archived report.
	SetNarrative(ctx context.Context, id, narrative string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// CountLLMRequests returns how many LLM calls were recorded.
	CountLLMRequests(ctx context.Context) (int, error)
}
