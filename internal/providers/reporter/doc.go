// Package reporter turns a failed terminal session into a prompt for a
// human-assist chat surface.
//
// Report runs once per failed session:
//
//	policy check  -> Suppressed (notice on the display)
//	normalize     -> strip escapes and shell echo, collapse blank lines
//	truncate      -> at most MaxOutput runes, head/tail around a marker
//	prompt        -> markdown with command, exit code, directory, environment
//	deliver       -> clipboard, optional panel, notification
//
// Nothing is returned as an error. A policy that cannot be loaded aborts
// silently; formatting or delivery problems are logged and announced on the
// display.
package reporter
