package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lddscreen/internal/export"
	"github.com/abhisek/lddscreen/internal/report"
)

const reportsTable = "reports"

// reportRepo implements ReportRepo. The full document is kept as its JSON
// export; the summary columns exist for listing without decoding.
type reportRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *reportRepo) Save(ctx context.Context, doc *report.Document) error {
	body, err := export.JSON(doc)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	var score any
	if doc.AnalysisResults.Combined.OverallScore != nil {
		score = *doc.AnalysisResults.Combined.OverallScore
	}
	var risk string
	if doc.AnalysisResults.Combined.RiskLevel != nil {
		risk = string(doc.AnalysisResults.Combined.RiskLevel.Level)
	}

	query, args := builder().Insert(reportsTable).
		Columns("id", "sequence", "subject_name", "combined_score", "risk_level",
			"confidence", "format_version", "generated_at", "document").
		Values(doc.Metadata.ReportID, seqNum, doc.SubjectInfo.Name, score, risk,
			doc.AnalysisResults.Combined.Confidence, doc.Metadata.Version,
			doc.Metadata.GeneratedAt.UTC().Format(time.RFC3339Nano), string(body)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save report %s: %w", doc.Metadata.ReportID, err)
	}
	return nil
}

func (r *reportRepo) Get(ctx context.Context, id string) (*StoredReport, error) {
	b := builder()
	query, args := b.Select("format_version", "document", "narrative").
		From(b.Table(reportsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var version, body, narrative string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&version, &body, &narrative)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query report %s: %w", id, err)
	}

	if err := report.CheckFormatVersion(version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleFormat, err)
	}

	doc, err := export.ParseJSON([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &StoredReport{Document: doc, Narrative: narrative}, nil
}

func (r *reportRepo) List(ctx context.Context, limit int) ([]ReportSummary, error) {
	b := builder()
	sel := b.Select("id", "sequence", "subject_name", "combined_score", "risk_level",
		"confidence", "generated_at").
		From(b.Table(reportsTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := []ReportSummary{}
	for rows.Next() {
		var (
			s         ReportSummary
			score     sql.NullFloat64
			generated string
		)
		if err := rows.Scan(&s.ID, &s.Sequence, &s.SubjectName, &score,
			&s.RiskLevel, &s.Confidence, &generated); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		if score.Valid {
			v := score.Float64
			s.CombinedScore = &v
		}
		s.GeneratedAt, err = time.Parse(time.RFC3339Nano, generated)
		if err != nil {
			return nil, fmt.Errorf("parse generated_at for %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *reportRepo) SetNarrative(ctx context.Context, id, narrative string) error {
	query, args := builder().Update(reportsTable).
		Set("narrative", narrative).
		Where(entsql.EQ("id", id)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set narrative for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set narrative for %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
