// Package export serializes report documents. Every exporter reads the
// document without modifying it.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/lddscreen/internal/report"
)

// JSON returns the full document, indented with two spaces.
func JSON(doc *report.Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report %s: %w", doc.Metadata.ReportID, err)
	}
	return append(b, '\n'), nil
}

// ParseJSON decodes a document written by JSON.
func ParseJSON(data []byte) (*report.Document, error) {
	var doc report.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &doc, nil
}
