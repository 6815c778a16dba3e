package alert

import (
	"sync"

	"github.com/fatih/color"
)

// TermAlerter renders local push alerts on the terminal for the
// notify-client binary. Tags coalesce: re-showing a tag replaces the
// remembered alert instead of printing a duplicate line.
type TermAlerter struct {
	mu    sync.Mutex
	seen  map[string]string
	state Permission
}

func NewTermAlerter() *TermAlerter {
	return &TermAlerter{
		seen:  make(map[string]string),
		state: PermissionDefault,
	}
}

func (a *TermAlerter) PermissionState() Permission {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *TermAlerter) RequestPermission() Permission {
	a.mu.Lock()
	defer a.mu.Unlock()
	// The terminal has no permission prompt; asking grants.
	a.state = PermissionGranted
	return a.state
}

func (a *TermAlerter) Show(title string, opts Options) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if opts.Tag != "" {
		if prev, ok := a.seen[opts.Tag]; ok && prev == opts.Body {
			return
		}
		a.seen[opts.Tag] = opts.Body
	}
	color.Yellow("🔔 %s", title)
	if opts.Body != "" {
		color.HiBlack("   %s", opts.Body)
	}
}

// TermToaster prints transient in-app messages with severity colors.
type TermToaster struct{}

func (TermToaster) Info(message string)    { color.Cyan("ℹ %s", message) }
func (TermToaster) Success(message string) { color.Green("✓ %s", message) }
func (TermToaster) Warning(message string) { color.Yellow("! %s", message) }
func (TermToaster) Error(message string)   { color.Red("✗ %s", message) }
