package export

import "strings"

// sectionGap is the vertical distance above which a blank line is drawn.
const sectionGap = 10.0

// PageBreak separates pages in text output.
const PageBreak = "\f"

// Text renders pages as plain text, one line per layout line, with a
// blank line between sections and a form feed between pages.
func Text(pages []Page) []byte {
	var b strings.Builder
	for i, p := range pages {
		if i > 0 {
			b.WriteString(PageBreak)
			b.WriteString("\n")
		}
		for j, line := range p.Lines {
			if j > 0 && line.Y-p.Lines[j-1].Y > sectionGap {
				b.WriteString("\n")
			}
			b.WriteString(line.Text)
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

// PageTexts renders each page separately, for paging viewers.
func PageTexts(pages []Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strings.TrimSuffix(string(Text([]Page{p})), "\n")
	}
	return out
}
