package report

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// FormatVersion is written into every document's metadata.
const FormatVersion = "2.0"

// DefaultSystemVersion labels the producing system when none is configured.
const DefaultSystemVersion = "lddscreen"

// CheckFormatVersion reports whether a document written with version v can
// be read by this build. Documents are compatible when their major version
// matches FormatVersion's.
func CheckFormatVersion(v string) error {
	got := "v" + v
	if !semver.IsValid(got) {
		return fmt.Errorf("invalid report format version %q", v)
	}
	if semver.Major(got) != semver.Major("v"+FormatVersion) {
		return fmt.Errorf("report format version %s is not compatible with %s", v, FormatVersion)
	}
	return nil
}
