package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/abhisek/lddscreen/internal/report"
)

// Format names an export artifact.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format in the order they are written.
var Formats = []Format{FormatJSON, FormatCSV, FormatText, FormatPDF}

// ErrUnknownFormat is returned for a format name not in Formats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (want json, csv, txt or pdf)", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render produces one artifact. A failure affects only that artifact.
func Render(doc *report.Document, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(doc)
	case FormatCSV:
		return CSV(doc)
	case FormatText:
		return Text(Layout(doc)), nil
	case FormatPDF:
		var buf bytes.Buffer
		if err := PDF(&buf, Layout(doc), doc.Metadata.GeneratedAt); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

// FileName is the conventional download name of an artifact.
func FileName(doc *report.Document, f Format) string {
	return fmt.Sprintf("disability-assessment-%s.%s", doc.Metadata.ReportID, f)
}
