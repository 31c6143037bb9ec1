package report

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDPrefix starts every report id.
const IDPrefix = "LDD-"

// IDGenerator assigns report ids. Implementations must be safe for
// concurrent use.
type IDGenerator interface {
	NewID(now time.Time) string
}

// ClockIDs derives ids from the generation instant in milliseconds. Ids
// issued within the same millisecond get a sequence suffix, so ids are
// unique within one generator.
type ClockIDs struct {
	mu     sync.Mutex
	lastMs int64
	seq    int
}

// NewClockIDs returns a ClockIDs generator.
func NewClockIDs() *ClockIDs {
	return &ClockIDs{}
}

func (g *ClockIDs) NewID(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.lastMs {
		// Same instant, or the clock went backwards: keep the last
		// millisecond and bump the sequence.
		g.seq++
		return fmt.Sprintf("%s%d-%d", IDPrefix, g.lastMs, g.seq)
	}
	g.lastMs = ms
	g.seq = 0
	return fmt.Sprintf("%s%d", IDPrefix, ms)
}

// UUIDIDs issues time-ordered UUIDv7 ids.
type UUIDIDs struct{}

func (UUIDIDs) NewID(time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		return IDPrefix + uuid.NewString()
	}
	return IDPrefix + id.String()
}

// NewIDGenerator returns the generator for a configured scheme: "clock"
// (default) or "uuid".
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch scheme {
	case "", "clock":
		return NewClockIDs(), nil
	case "uuid":
		return UUIDIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown report id scheme: %q", scheme)
	}
}
