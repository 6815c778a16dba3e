package gate

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const markerLayout = "2006-01-02"

// DailyGate limits scanner invocations to one per calendar day per
// client. The last successful run day persists in a single-line
// marker file; a missing or garbled file reads as "never ran". The
// gate is advisory only: it is never the source of truth for whether
// notifications exist.
type DailyGate struct {
	mu   sync.Mutex
	path string
}

func New(path string) *DailyGate {
	return &DailyGate{path: path}
}

// ShouldRun reports whether the scanner has not yet run today.
func (g *DailyGate) ShouldRun(today time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	data, err := os.ReadFile(g.path)
	if err != nil {
		return true
	}
	marker := strings.TrimSpace(string(data))
	if _, err := time.Parse(markerLayout, marker); err != nil {
		return true
	}
	return marker != today.Format(markerLayout)
}

// MarkRan persists today as the last run day. Called only after a
// successful scan; a failed scan leaves the marker alone so the next
// bootstrap retries.
func (g *DailyGate) MarkRan(today time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if dir := filepath.Dir(g.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(g.path, []byte(today.Format(markerLayout)+"\n"), 0o644)
}
