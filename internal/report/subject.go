package report

import "time"

// Subject defaults applied when a field is left empty.
const (
	DefaultName  = "Student"
	DefaultAge   = 8
	DefaultGrade = "Grade 3"

	// TestDateLayout formats the defaulted test date.
	TestDateLayout = "2006-01-02"
)

// SubjectInfo identifies the person assessed. Every field is optional; zero
// values are replaced by WithDefaults.
type SubjectInfo struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Grade    string `json:"grade"`
	School   string `json:"school,omitempty"`
	Teacher  string `json:"teacher,omitempty"`
	TestDate string `json:"testDate"`
}

// WithDefaults returns a copy of s with empty fields defaulted. The test
// date defaults to the date of now.
func (s SubjectInfo) WithDefaults(now time.Time) SubjectInfo {
	if s.Name == "" {
		s.Name = DefaultName
	}
	if s.Age <= 0 {
		s.Age = DefaultAge
	}
	if s.Grade == "" {
		s.Grade = DefaultGrade
	}
	if s.TestDate == "" {
		s.TestDate = now.Format(TestDateLayout)
	}
	return s
}
