package export

import (
	"fmt"
	"strconv"

	"github.com/abhisek/lddscreen/internal/report"
)

// Page geometry in millimetres on an A4 portrait page.
const (
	MarginLeft   = 20.0
	TopY         = 20.0
	BottomMargin = 250.0
	FooterY      = 280.0
)

// Font sizes in points.
const (
	TitleSize   = 20.0
	HeadingSize = 14.0
	BodySize    = 12.0
	ListSize    = 10.0
	FooterSize  = 8.0
)

// PrintableTitle heads the first page.
const PrintableTitle = "Learning Disability Detection Report"

// FooterTimeLayout formats the generation timestamp in the footer.
const FooterTimeLayout = "2006-01-02 15:04:05 MST"

// Line is one line of text placed at baseline Y.
type Line struct {
	Y    float64
	Size float64
	Text string
}

// Page is an ordered set of lines.
type Page struct {
	Lines []Line
}

type layout struct {
	pages []Page
	y     float64
}

// put places text at the cursor and advances it by step, starting a new
// page first when the cursor is past the bottom margin.
func (l *layout) put(text string, size, step float64) {
	if l.y > BottomMargin {
		l.pages = append(l.pages, Page{})
		l.y = TopY
	}
	cur := &l.pages[len(l.pages)-1]
	cur.Lines = append(cur.Lines, Line{Y: l.y, Size: size, Text: text})
	l.y += step
}

// Layout lays the document out top to bottom: title, subject information,
// overall assessment and the numbered recommendations. The generation
// footer goes on the first page only.
func Layout(doc *report.Document) []Page {
	l := &layout{pages: []Page{{}}, y: TopY}

	l.put(PrintableTitle, TitleSize, 20)

	subject := doc.SubjectInfo
	l.put("Student Information", HeadingSize, 10)
	l.put("Name: "+subject.Name, BodySize, 8)
	l.put(fmt.Sprintf("Age: %d years", subject.Age), BodySize, 8)
	l.put("Test Date: "+subject.TestDate, BodySize, 15)

	combined := doc.AnalysisResults.Combined
	score := NotAvailable
	if combined.OverallScore != nil {
		score = strconv.FormatFloat(*combined.OverallScore, 'f', 1, 64) + "%"
	}
	risk := NotAvailable
	if combined.RiskLevel != nil {
		risk = string(combined.RiskLevel.Level)
	}
	l.put("Overall Assessment", HeadingSize, 10)
	l.put("Combined Score: "+score, BodySize, 8)
	l.put("Risk Level: "+risk, BodySize, 8)
	l.put(fmt.Sprintf("Confidence: %d%%", combined.Confidence), BodySize, 15)

	if len(doc.Recommendations) > 0 {
		l.put("Recommendations", HeadingSize, 10)
		for i, rec := range doc.Recommendations {
			l.put(fmt.Sprintf("%d. %s", i+1, rec), ListSize, 8)
		}
	}

	first := &l.pages[0]
	first.Lines = append(first.Lines, Line{
		Y:    FooterY,
		Size: FooterSize,
		Text: "Generated: " + doc.Metadata.GeneratedAt.Format(FooterTimeLayout),
	})
	return l.pages
}
