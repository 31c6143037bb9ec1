package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDF writes pages to w as an A4 PDF using a core Helvetica font.
// created is stamped as the document creation date so repeated renders
// of the same pages are byte-identical.
//
// Core fonts cover cp1252 only: characters outside it (e.g. Cyrillic or
// CJK names) are drawn as '?'. The JSON, CSV and text exports keep them.
func PDF(w io.Writer, pages []Page, created time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(created)
	pdf.SetTitle(PrintableTitle, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, p := range pages {
		pdf.AddPage()
		for _, line := range p.Lines {
			pdf.SetFont("Helvetica", "", line.Size)
			pdf.Text(MarginLeft, line.Y, tr(line.Text))
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
