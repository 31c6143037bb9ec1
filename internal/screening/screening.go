// Package screening runs one screening end to end: analyze the samples
// that still need it, assemble the report, archive it and optionally
// attach a narrative.
package screening

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lddscreen/internal/analyzer"
	"github.com/abhisek/lddscreen/internal/assessment"
	"github.com/abhisek/lddscreen/internal/narrative"
	"github.com/abhisek/lddscreen/internal/report"
	"github.com/abhisek/lddscreen/internal/store"
)

// ErrConflictingInput is returned when a modality has both a result and a
// sample.
var ErrConflictingInput = errors.New("conflicting input")

// ErrNoAnalyzer is returned when a sample is given but no analyzer is
// configured.
var ErrNoAnalyzer = errors.New("no analyzer configured")

// Analyzer uploads samples to the analysis services.
type Analyzer interface {
	AnalyzeHandwriting(ctx context.Context, filename string, image io.Reader) (*assessment.ModalityResult, error)
	AnalyzeSpeech(ctx context.Context, filename string, audio io.Reader, referenceText string) (*assessment.ModalityResult, error)
}

// Narrator writes the plain-language summary of a document.
type Narrator interface {
	Summarize(ctx context.Context, doc *report.Document) (*narrative.Narrative, error)
}

// Sample is a file to send to an analysis service. Size is -1 when unknown.
type Sample struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Input describes one screening. Each modality is given either as a
// finished result or as a sample to analyze, or omitted.
type Input struct {
	Subject report.SubjectInfo

	Handwriting *assessment.ModalityResult
	Speech      *assessment.ModalityResult

	Image         *Sample
	Audio         *Sample
	ReferenceText string

	Narrate bool
}

// Result is the archived document plus anything produced alongside it.
type Result struct {
	Document  *report.Document
	Narrative string

	// NarrativeErr is set when a requested narrative failed. The document
	// is archived regardless.
	NarrativeErr error
}

type Service struct {
	builder  *report.Builder
	reports  store.ReportRepo
	analyzer Analyzer
	narrator Narrator
}

type Option func(*Service)

func WithAnalyzer(a Analyzer) Option {
	return func(s *Service) { s.analyzer = a }
}

func WithNarrator(n Narrator) Option {
	return func(s *Service) { s.narrator = n }
}

func NewService(builder *report.Builder, reports store.ReportRepo, opts ...Option) *Service {
	s := &Service{builder: builder, reports: reports}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs the screening described by in.
func (s *Service) Run(ctx context.Context, in Input) (*Result, error) {
	handwriting, speech, err := s.analyze(ctx, in)
	if err != nil {
		return nil, err
	}

	doc := s.builder.Build(handwriting, speech, in.Subject)
	if err := s.reports.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("archive report: %w", err)
	}
	slog.Info("report generated",
		"report_id", doc.Metadata.ReportID,
		"handwriting", handwriting != nil,
		"speech", speech != nil,
		"confidence", doc.AnalysisResults.Combined.Confidence,
	)

	res := &Result{Document: doc}
	if in.Narrate {
		res.Narrative, res.NarrativeErr = s.Narrate(ctx, doc)
	}
	return res, nil
}

// Narrate summarizes an archived document and stores the summary with it.
func (s *Service) Narrate(ctx context.Context, doc *report.Document) (string, error) {
	if s.narrator == nil {
		return "", fmt.Errorf("narrative requested but no LLM provider is configured")
	}
	n, err := s.narrator.Summarize(ctx, doc)
	if err != nil {
		slog.Warn("narrative failed", "report_id", doc.Metadata.ReportID, "error", err)
		return "", err
	}
	text := n.String()
	if err := s.reports.SetNarrative(ctx, doc.Metadata.ReportID, text); err != nil {
		return "", fmt.Errorf("store narrative: %w", err)
	}
	return text, nil
}

// analyze resolves both modalities, sending any samples to their services
// in parallel.
func (s *Service) analyze(ctx context.Context, in Input) (handwriting, speech *assessment.ModalityResult, err error) {
	if in.Handwriting != nil && in.Image != nil {
		return nil, nil, fmt.Errorf("%w: handwriting result and image both given", ErrConflictingInput)
	}
	if in.Speech != nil && in.Audio != nil {
		return nil, nil, fmt.Errorf("%w: speech result and audio both given", ErrConflictingInput)
	}
	if in.Image != nil {
		if err := analyzer.CheckImage(in.Image.Filename, in.Image.Size); err != nil {
			return nil, nil, err
		}
	}
	if in.Audio != nil {
		if err := analyzer.CheckAudio(in.Audio.Filename); err != nil {
			return nil, nil, err
		}
	}
	if (in.Image != nil || in.Audio != nil) && s.analyzer == nil {
		return nil, nil, ErrNoAnalyzer
	}

	handwriting, speech = in.Handwriting, in.Speech
	g, gctx := errgroup.WithContext(ctx)
	if in.Image != nil {
		g.Go(func() error {
			r, err := s.analyzer.AnalyzeHandwriting(gctx, in.Image.Filename, in.Image.Body)
			handwriting = r
			return err
		})
	}
	if in.Audio != nil {
		g.Go(func() error {
			r, err := s.analyzer.AnalyzeSpeech(gctx, in.Audio.Filename, in.Audio.Body, in.ReferenceText)
			speech = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return handwriting, speech, nil
}
