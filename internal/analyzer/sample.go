package analyzer

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// MaxImageBytes caps handwriting uploads.
const MaxImageBytes = 5 << 20

var (
	imageExtensions = []string{".jpg", ".jpeg", ".png"}
	audioExtensions = []string{".wav", ".mp3", ".ogg", ".m4a", ".webm"}
)

// ErrUnsupportedSample is returned when a sample is rejected before upload.
var ErrUnsupportedSample = errors.New("unsupported sample")

// CheckImage accepts JPG, JPEG and PNG files up to MaxImageBytes. A
// negative size skips the size check.
func CheckImage(filename string, size int64) error {
	if !hasExtension(filename, imageExtensions) {
		return fmt.Errorf("%w: %s is not a JPG, JPEG or PNG image", ErrUnsupportedSample, filepath.Base(filename))
	}
	if size > MaxImageBytes {
		return fmt.Errorf("%w: %s is larger than 5MB", ErrUnsupportedSample, filepath.Base(filename))
	}
	return nil
}

// CheckAudio accepts WAV, MP3, OGG, M4A and WebM recordings.
func CheckAudio(filename string) error {
	if !hasExtension(filename, audioExtensions) {
		return fmt.Errorf("%w: %s is not a WAV, MP3, OGG, M4A or WebM recording", ErrUnsupportedSample, filepath.Base(filename))
	}
	return nil
}

func hasExtension(filename string, allowed []string) bool {
	return slices.Contains(allowed, strings.ToLower(filepath.Ext(filename)))
}
