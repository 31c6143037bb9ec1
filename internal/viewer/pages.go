package viewer

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lddscreen/internal/export"
	"github.com/abhisek/lddscreen/internal/report"
)

type line struct {
	text  string
	style lipgloss.Style
}

type page struct {
	title string
	lines []line
}

func (p page) plain() string {
	texts := make([]string, len(p.lines))
	for i, l := range p.lines {
		texts[i] = l.text
	}
	return strings.Join(texts, "\n")
}

func (p page) render() string {
	out := make([]string, len(p.lines))
	for i, l := range p.lines {
		out[i] = l.style.Render(l.text)
	}
	return strings.Join(out, "\n")
}

// buildPages turns a document into the printable pages followed by a
// details page and, when present, the narrative.
func buildPages(doc *report.Document, narrative string) []page {
	var pages []page
	printable := export.Layout(doc)
	for i, p := range printable {
		pg := page{title: fmt.Sprintf("Report (%d/%d)", i+1, len(printable))}
		for j, l := range p.Lines {
			if j > 0 && l.Y-p.Lines[j-1].Y > 10 {
				pg.lines = append(pg.lines, line{})
			}
			pg.lines = append(pg.lines, line{text: l.Text, style: printableStyle(doc, l)})
		}
		pages = append(pages, pg)
	}

	pages = append(pages, detailsPage(doc))
	if narrative != "" {
		pg := page{title: "Summary"}
		pg.lines = append(pg.lines, line{text: "Summary", style: headingStyle}, line{})
		for _, s := range strings.Split(narrative, "\n") {
			pg.lines = append(pg.lines, line{text: s, style: bodyStyle})
		}
		pages = append(pages, pg)
	}
	return pages
}

func printableStyle(doc *report.Document, l export.Line) lipgloss.Style {
	switch {
	case l.Size == export.TitleSize:
		return titleStyle
	case l.Size == export.HeadingSize:
		return headingStyle
	case l.Size == export.FooterSize:
		return footerStyle
	case strings.HasPrefix(l.Text, "Risk Level: "):
		return riskStyle(doc.AnalysisResults.Combined.RiskLevel)
	}
	return bodyStyle
}

func detailsPage(doc *report.Document) page {
	pg := page{title: "Details"}
	heading := func(s string) {
		if len(pg.lines) > 0 {
			pg.lines = append(pg.lines, line{})
		}
		pg.lines = append(pg.lines, line{text: s, style: headingStyle})
	}
	item := func(s string) {
		pg.lines = append(pg.lines, line{text: "  • " + s, style: bodyStyle})
	}
	list := func(label string, items []string) {
		pg.lines = append(pg.lines, line{text: label, style: bodyStyle})
		if len(items) == 0 {
			pg.lines = append(pg.lines, line{text: "  none noted", style: footerStyle})
		}
		for _, s := range items {
			item(s)
		}
	}

	heading("Handwriting")
	if h := doc.AnalysisResults.Handwriting; h != nil {
		pg.lines = append(pg.lines, line{text: fmt.Sprintf("Score: %.1f", h.OverallScore), style: bodyStyle})
		list("Strengths:", h.Strengths)
		list("Concerns:", h.Concerns)
	} else {
		pg.lines = append(pg.lines, line{text: "Not assessed", style: footerStyle})
	}

	heading("Speech")
	if s := doc.AnalysisResults.Speech; s != nil {
		pg.lines = append(pg.lines, line{text: fmt.Sprintf("Score: %.1f", s.OverallScore), style: bodyStyle})
		if s.Transcript != "" {
			pg.lines = append(pg.lines, line{text: "Transcript: " + s.Transcript, style: bodyStyle})
		}
		list("Strengths:", s.Strengths)
		list("Concerns:", s.Concerns)
	} else {
		pg.lines = append(pg.lines, line{text: "Not assessed", style: footerStyle})
	}

	if len(doc.Interventions) > 0 {
		heading("Interventions")
		for _, iv := range doc.Interventions {
			item(fmt.Sprintf("%s: %s (%s, %s)", iv.Area, iv.Intervention, iv.Duration, iv.Frequency))
		}
	}
	if len(doc.NextSteps) > 0 {
		heading("Next Steps")
		for _, s := range doc.NextSteps {
			item(s)
		}
	}
	return pg
}
