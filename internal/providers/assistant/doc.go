// Package assistant delivers failure prompts to a human-assist surface.
//
// Surface is the capability set the reporter relies on. Probe returns a
// tri-state Availability so callers branch explicitly:
//
//	switch surface.Probe(ctx) {
//	case assistant.Available:         // copy, open the panel, notify
//	case assistant.InstalledInactive: // copy and notify, do not launch
//	case assistant.Absent:            // warn, copy and notify
//	}
//
// Desktop implements Surface with a clipboard chain, an external opener
// command (for example "code --reuse-window") and lipgloss-styled notices.
package assistant
