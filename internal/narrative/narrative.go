// Package narrative asks an LLM for a plain-language summary of a
// generated report. The summary is stored next to the document and never
// changes the document itself.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/lddscreen/internal/export"
	"github.com/abhisek/lddscreen/internal/llm"
	"github.com/abhisek/lddscreen/internal/report"
)

// Purpose labels narrative calls in the llm_requests log.
const Purpose = "report-narrative"

type Config struct {
	MaxTokens   int     `yaml:"max_tokens" env:"LDD_NARRATIVE_MAX_TOKENS" env-default:"512"`
	Temperature float64 `yaml:"temperature" env:"LDD_NARRATIVE_TEMPERATURE" env-default:"0.3"`
}

func DefaultConfig() Config {
	return Config{MaxTokens: 512, Temperature: 0.3}
}

// Narrative is the LLM-written summary of one report.
type Narrative struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

// String renders the narrative as the text stored in the archive.
func (n Narrative) String() string {
	var b strings.Builder
	b.WriteString(n.Summary)
	for _, h := range n.Highlights {
		b.WriteString("\n- ")
		b.WriteString(h)
	}
	return b.String()
}

type Service struct {
	provider llm.Provider
	cfg      Config
}

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Summarize asks the provider for a narrative of doc.
func (s *Service) Summarize(ctx context.Context, doc *report.Document) (*Narrative, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	prompt, err := buildPrompt(doc)
	if err != nil {
		return nil, fmt.Errorf("build narrative prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      SummarySchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM narrative failed: %w", err)
	}

	var out Narrative
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse narrative response: %w", err)
	}
	out.Summary = strings.TrimSpace(out.Summary)
	if out.Summary == "" {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty summary")}
	}
	if out.Highlights == nil {
		out.Highlights = []string{}
	}
	return &out, nil
}

const systemPrompt = `You write short summaries of learning difficulty screening reports for parents and teachers.

Instructions:
- Use plain, warm language a parent can follow. Avoid clinical jargon.
- This is a screening, not a diagnosis. Never state or imply a diagnosis.
- Only use the scores, findings and recommendations provided. Do not invent results.
- If a modality was not assessed, say so rather than guessing.
- Keep the summary to one paragraph and each highlight to one sentence.`

// promptData is the flattened view of a document the template renders.
type promptData struct {
	Subject         report.SubjectInfo
	Combined        string
	Risk            string
	Confidence      int
	Handwriting     *modalityView
	Speech          *modalityView
	Recommendations []string
	NextSteps       []string
}

type modalityView struct {
	Score     float64
	Strengths []string
	Concerns  []string
}

var userTemplate = template.Must(template.New("narrative").Parse(`Student: {{.Subject.Name}}, age {{.Subject.Age}}, {{.Subject.Grade}}
Test date: {{.Subject.TestDate}}

Combined score: {{.Combined}}
Risk level: {{.Risk}}
Confidence: {{.Confidence}}%
{{with .Handwriting}}
Handwriting score: {{printf "%.1f" .Score}}
Strengths:
{{range .Strengths}}- {{.}}
{{else}}- none noted
{{end}}Concerns:
{{range .Concerns}}- {{.}}
{{else}}- none noted
{{end}}{{else}}
Handwriting: not assessed
{{end}}{{with .Speech}}
Speech score: {{printf "%.1f" .Score}}
Strengths:
{{range .Strengths}}- {{.}}
{{else}}- none noted
{{end}}Concerns:
{{range .Concerns}}- {{.}}
{{else}}- none noted
{{end}}{{else}}
Speech: not assessed
{{end}}
Recommendations:
{{range .Recommendations}}- {{.}}
{{end}}
Next steps:
{{range .NextSteps}}- {{.}}
{{end}}`))

func buildPrompt(doc *report.Document) (string, error) {
	combined := doc.AnalysisResults.Combined
	data := promptData{
		Subject:         doc.SubjectInfo,
		Combined:        export.NotAvailable,
		Risk:            export.NotAvailable,
		Confidence:      combined.Confidence,
		Recommendations: doc.Recommendations,
		NextSteps:       doc.NextSteps,
	}
	if combined.OverallScore != nil {
		data.Combined = fmt.Sprintf("%.1f%%", *combined.OverallScore)
	}
	if combined.RiskLevel != nil {
		data.Risk = fmt.Sprintf("%s (%s)", combined.RiskLevel.Level, combined.RiskLevel.Description)
	}
	if h := doc.AnalysisResults.Handwriting; h != nil {
		data.Handwriting = &modalityView{Score: h.OverallScore, Strengths: h.Strengths, Concerns: h.Concerns}
	}
	if s := doc.AnalysisResults.Speech; s != nil {
		data.Speech = &modalityView{Score: s.OverallScore, Strengths: s.Strengths, Concerns: s.Concerns}
	}

	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
