package assistant

import (
	"context"
	"errors"
)

// ErrNoOpener means no assistant opener command is configured or installed
var ErrNoOpener = errors.New("assistant opener unavailable")

// Availability is the result of probing for the assistant
type Availability int

const (
	// Absent: nothing to open; the prompt can only be pasted by hand
	Absent Availability = iota
	// InstalledInactive: the opener exists but is switched off
	InstalledInactive
	// Available: the opener exists and may be launched
	Available
)

// String returns the string representation of the availability
func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case InstalledInactive:
		return "installed-inactive"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// Surface is where a failure report is delivered: clipboard, chat panel and
// transient notifications.
type Surface interface {
	Probe(ctx context.Context) Availability
	WriteClipboard(ctx context.Context, text string) error
	OpenPanel(ctx context.Context) error
	ShowNotification(text string)
	ShowWarning(text string)
	ShowError(text string)
}
