package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lddscreen/internal/assessment"
	"github.com/abhisek/lddscreen/internal/report"
)

var generated = time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)

type staticID string

func (s staticID) NewID(time.Time) string { return string(s) }

func newBuilder() *report.Builder {
	return report.NewBuilder(
		report.WithClock(func() time.Time { return generated }),
		report.WithIDGenerator(staticID("LDD-42")),
	)
}

func fullDoc() *report.Document {
	hw := &assessment.ModalityResult{OverallScore: 85, Features: assessment.Features{
		assessment.FeatureLineStraightness: 72.25,
		assessment.FeatureLetterFormation:  64.0,
		assessment.FeatureContourCount:     30.0,
	}}
	sp := &assessment.ModalityResult{OverallScore: 40, Features: assessment.Features{
		assessment.FeatureFluency:       35.55,
		assessment.FeaturePronunciation: 61.0,
		assessment.FeatureWordCount:     20.0,
	}}
	return newBuilder().Build(hw, sp, report.SubjectInfo{Name: "Ada", Age: 9, TestDate: "2026-05-01"})
}

func TestJSON_RoundTrip(t *testing.T) {
	doc := fullDoc()
	data, err := JSON(doc)
	require.NoError(t, err)

	parsed, err := ParseJSON(data)
	require.NoError(t, err)
	require.NotNil(t, parsed.AnalysisResults.Combined.OverallScore)
	assert.Equal(t, *doc.AnalysisResults.Combined.OverallScore, *parsed.AnalysisResults.Combined.OverallScore)
	assert.Equal(t, doc.AnalysisResults.Combined.RiskLevel, parsed.AnalysisResults.Combined.RiskLevel)
	assert.Equal(t, doc.Recommendations, parsed.Recommendations)
	assert.Equal(t, doc.Interventions, parsed.Interventions)
	assert.Equal(t, doc.Metadata, parsed.Metadata)
}

func TestJSON_Stable(t *testing.T) {
	doc := fullDoc()
	a, err := JSON(doc)
	require.NoError(t, err)
	b, err := JSON(doc)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, string(a), "\n  \"metadata\": {")
}

func TestJSON_MissingModalityIsNull(t *testing.T) {
	doc := newBuilder().Build(nil, &assessment.ModalityResult{OverallScore: 90}, report.SubjectInfo{})
	data, err := JSON(doc)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"handwriting": null`)
	assert.Contains(t, s, `"overallScore": null`)
	assert.Contains(t, s, `"riskLevel": null`)
}

func TestCSV_Schema(t *testing.T) {
	data, err := CSV(fullDoc())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, CSVHeader, rows[0])
	require.Len(t, rows[1], 13)
	assert.Equal(t, []string{
		"LDD-42", "Ada", "9", "2026-05-01",
		"67.0", "Moderate Risk", "75",
		"85.0", "40.0",
		"72.2", "64.0", "35.5", "61.0",
	}, rows[1])
}

func TestCSV_MissingValues(t *testing.T) {
	doc := newBuilder().Build(nil, &assessment.ModalityResult{OverallScore: 90}, report.SubjectInfo{})
	row := CSVRow(doc)
	assert.Equal(t, NotAvailable, row[4])
	assert.Equal(t, NotAvailable, row[5])
	assert.Equal(t, NotAvailable, row[7])
	assert.Equal(t, "90.0", row[8])
	for _, i := range []int{9, 10, 11, 12} {
		assert.Equal(t, NotAvailable, row[i], "column %s", CSVHeader[i])
	}
}

func TestCSV_QuotesDelimiters(t *testing.T) {
	doc := newBuilder().Build(nil, nil, report.SubjectInfo{Name: `Smith, "Jo"`})
	data, err := CSV(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Smith, ""Jo"""`)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Smith, "Jo"`, rows[1][1])
	assert.Len(t, rows[1], 13)
}

func TestLayout_SinglePage(t *testing.T) {
	pages := Layout(fullDoc())
	require.Len(t, pages, 1)

	lines := pages[0].Lines
	assert.Equal(t, PrintableTitle, lines[0].Text)
	assert.Equal(t, TopY, lines[0].Y)
	assert.Equal(t, "Student Information", lines[1].Text)
	assert.Equal(t, "Name: Ada", lines[2].Text)
	assert.Equal(t, "Age: 9 years", lines[3].Text)
	assert.Equal(t, "Combined Score: 67.0%", lines[6].Text)
	assert.Equal(t, "Risk Level: Moderate Risk", lines[7].Text)
	assert.Equal(t, "Confidence: 75%", lines[8].Text)
	assert.Equal(t, "Recommendations", lines[9].Text)
	assert.Equal(t, "1. Regular monitoring and targeted interventions", lines[10].Text)

	footer := lines[len(lines)-1]
	assert.Equal(t, FooterY, footer.Y)
	assert.Equal(t, "Generated: 2026-05-01 10:30:00 UTC", footer.Text)
}

func TestLayout_PageBreak(t *testing.T) {
	doc := fullDoc()
	recs := make([]string, 20)
	for i := range recs {
		recs[i] = fmt.Sprintf("recommendation %d", i+1)
	}
	long := *doc
	long.Recommendations = recs

	pages := Layout(&long)
	require.Len(t, pages, 2)

	for _, p := range pages {
		for _, line := range p.Lines {
			if line.Y != FooterY {
				assert.LessOrEqual(t, line.Y, BottomMargin, line.Text)
			}
		}
	}

	second := pages[1].Lines
	assert.Equal(t, "16. recommendation 16", second[0].Text)
	assert.Equal(t, TopY, second[0].Y)
	for _, line := range second {
		assert.False(t, strings.HasPrefix(line.Text, "Generated:"), "footer must be on the first page only")
	}
	// The original document is untouched.
	assert.Len(t, doc.Recommendations, 4)
}

func TestLayout_NoRecommendations(t *testing.T) {
	doc := newBuilder().Build(nil, nil, report.SubjectInfo{})
	pages := Layout(doc)
	require.Len(t, pages, 1)
	text := string(Text(pages))
	assert.NotContains(t, text, "Recommendations")
	assert.Contains(t, text, "Combined Score: N/A")
	assert.Contains(t, text, "Risk Level: N/A")
}

func TestText_PagesSeparatedByFormFeed(t *testing.T) {
	pages := []Page{
		{Lines: []Line{{Y: 20, Text: "a"}, {Y: 40, Text: "b"}}},
		{Lines: []Line{{Y: 20, Text: "c"}}},
	}
	assert.Equal(t, "a\n\nb\n\f\nc\n", string(Text(pages)))
	assert.Equal(t, []string{"a\n\nb", "c"}, PageTexts(pages))
}

func TestRender_AllFormats(t *testing.T) {
	doc := fullDoc()
	for _, f := range Formats {
		data, err := Render(doc, f)
		require.NoError(t, err, f)
		assert.NotEmpty(t, data, f)
	}
	pdf, err := Render(doc, FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = Render(doc, Format("xml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, "text/csv", f.ContentType())

	_, err = ParseFormat("docx")
	assert.Error(t, err)
	assert.Equal(t, "disability-assessment-LDD-42.pdf", FileName(fullDoc(), FormatPDF))
}

func TestPDF_NonLatinNameStillRenders(t *testing.T) {
	doc := newBuilder().Build(nil, nil, report.SubjectInfo{Name: "Ольга 李"})

	pdf, err := Render(doc, FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	txt, err := Render(doc, FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(txt), "Name: Ольга 李")

	js, err := Render(doc, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(js), "Ольга 李")
}
