package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/abhisek/lddscreen/internal/report"
)

// NotAvailable stands in for absent values in tabular output.
const NotAvailable = "N/A"

// CSVHeader is the fixed column schema of the tabular export.
var CSVHeader = []string{
	"Report ID", "Student Name", "Age", "Test Date",
	"Combined Score", "Risk Level", "Confidence",
	"Handwriting Score", "Speech Score",
	"Line Straightness", "Letter Formation", "Fluency", "Pronunciation",
}

// CSV returns a header row and one data row. Fields containing commas,
// quotes or line breaks are quoted.
func CSV(doc *report.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll([][]string{CSVHeader, CSVRow(doc)}); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// CSVRow projects the document onto the CSVHeader columns.
func CSVRow(doc *report.Document) []string {
	res := doc.AnalysisResults
	risk := NotAvailable
	if res.Combined.RiskLevel != nil {
		risk = string(res.Combined.RiskLevel.Level)
	}

	var hwScore, spScore, line, letters, fluency, pron *float64
	if hw := res.Handwriting; hw != nil {
		hwScore = &hw.OverallScore
		line = hw.KeyFindings.LineStraightness
		letters = hw.KeyFindings.LetterFormation
	}
	if sp := res.Speech; sp != nil {
		spScore = &sp.OverallScore
		fluency = sp.KeyFindings.Fluency
		pron = sp.KeyFindings.Pronunciation
	}

	return []string{
		doc.Metadata.ReportID,
		doc.SubjectInfo.Name,
		strconv.Itoa(doc.SubjectInfo.Age),
		doc.SubjectInfo.TestDate,
		oneDecimal(res.Combined.OverallScore),
		risk,
		strconv.Itoa(res.Combined.Confidence),
		oneDecimal(hwScore),
		oneDecimal(spScore),
		oneDecimal(line),
		oneDecimal(letters),
		oneDecimal(fluency),
		oneDecimal(pron),
	}
}

func oneDecimal(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
