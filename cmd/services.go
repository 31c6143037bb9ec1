package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/lddscreen/internal/analyzer"
	"github.com/abhisek/lddscreen/internal/customrules"
	"github.com/abhisek/lddscreen/internal/llm"
	"github.com/abhisek/lddscreen/internal/narrative"
	"github.com/abhisek/lddscreen/internal/report"
	"github.com/abhisek/lddscreen/internal/screening"
	"github.com/abhisek/lddscreen/internal/store"
)

func newBuilder() (*report.Builder, error) {
	ids, err := report.NewIDGenerator(cfg.Report.IDScheme)
	if err != nil {
		return nil, err
	}
	rules, err := customrules.Ruleset(cfg.CustomRules)
	if err != nil {
		return nil, fmt.Errorf("compile custom rules: %w", err)
	}
	opts := []report.Option{report.WithIDGenerator(ids), report.WithRuleset(rules)}
	if cfg.Report.SystemVersion != "" {
		opts = append(opts, report.WithSystemVersion(cfg.Report.SystemVersion))
	}
	return report.NewBuilder(opts...), nil
}

// newNarrator returns nil when no LLM provider can be configured; reports
// are still produced without a narrative.
func newNarrator(ctx context.Context, events store.EventRepo) screening.Narrator {
	llmCfg, _ := cfg.LLM.Discover()
	provider, err := llm.NewProvider(ctx, llmCfg, events)
	if err != nil {
		slog.Debug("LLM provider not configured", "error", err)
		return nil
	}
	return narrative.NewService(provider, cfg.Narrative)
}

// newScreening wires the screening service. The narrator is only built
// when withNarrator is set.
func newScreening(ctx context.Context, st *store.Store, withNarrator bool) (*screening.Service, error) {
	b, err := newBuilder()
	if err != nil {
		return nil, err
	}
	opts := []screening.Option{screening.WithAnalyzer(analyzer.NewClient(cfg.Analyzer))}
	if withNarrator {
		if n := newNarrator(ctx, st.EventRepo()); n != nil {
			opts = append(opts, screening.WithNarrator(n))
		}
	}
	return screening.NewService(b, st.ReportRepo(), opts...), nil
}
