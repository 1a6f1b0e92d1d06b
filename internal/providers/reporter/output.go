package reporter

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

const (
	// EmptyOutput stands in for output that normalizes to nothing
	EmptyOutput = "[No output captured or output was empty]"
	// OmissionMarker joins the head and tail of truncated output
	OmissionMarker = "...\n[Output Truncated - Middle Omitted]\n..."
	// TailPrefix marks output reduced to its tail
	TailPrefix = "...\n"
)

// echoWindow is how many lines at each end are searched for shell echo
const echoWindow = 5

// Normalize turns captured terminal lines into plain report text. Escape
// sequences are removed, carriage-return overwrites resolve to their final
// text, the shell's echo of command and trailer is dropped where it can be
// recognised, trailing whitespace is trimmed, blank runs collapse to one
// line and blank lines at either end are removed.
func Normalize(lines []string, command, trailer string) string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	cleaned = stripEcho(cleaned, command, trailer)

	var out []string
	blank := false
	for _, line := range cleaned {
		if line == "" {
			if len(out) > 0 && !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n")
}

func cleanLine(line string) string {
	line = strings.ToValidUTF8(line, "\uFFFD")
	// A bare carriage return redraws the line; keep what was drawn last
	segments := strings.Split(line, "\r")
	line = ""
	for i := len(segments) - 1; i >= 0; i-- {
		if text := ansi.Strip(segments[i]); strings.TrimSpace(text) != "" {
			line = text
			break
		}
	}
	return strings.TrimRight(line, " \t\v\f")
}

// stripEcho drops the first non-blank line when it ends with the command
// (the terminal's echo, possibly after a prompt) and trailing lines that are
// the trailer echo, the shell's "exit" notice or a bare prompt. Only the
// first and last few lines are examined.
func stripEcho(lines []string, command, trailer string) []string {
	command = strings.TrimSpace(command)
	trailer = strings.TrimSpace(trailer)

	for i := 0; i < len(lines) && i < echoWindow; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if command != "" && strings.HasSuffix(line, command) {
			lines = lines[i+1:]
		}
		break
	}

	end := len(lines)
	for i := len(lines) - 1; i >= 0 && len(lines)-i <= echoWindow; i-- {
		if !isShellNoise(strings.TrimSpace(lines[i]), trailer) {
			break
		}
		end = i
	}
	return lines[:end]
}

func isShellNoise(line, trailer string) bool {
	switch {
	case line == "", line == "exit":
		return true
	case trailer != "" && strings.HasSuffix(line, trailer):
		return true
	default:
		return isPrompt(line)
	}
}

// isPrompt reports whether line looks like a prompt with nothing typed
func isPrompt(line string) bool {
	if line == "" || utf8.RuneCountInString(line) > 64 {
		return false
	}
	n := len(line)
	last := line[n-1]
	if last == '>' && strings.HasPrefix(line, "PS ") {
		return true
	}
	switch last {
	case '$', '#', '>':
	case '%':
		// "100%" is progress, "host%" is a prompt
		if n > 1 && line[n-2] >= '0' && line[n-2] <= '9' {
			return false
		}
	default:
		return false
	}
	return !strings.ContainsAny(line[:n-1], " \t")
}

// Truncate bounds output to maxLen runes. Longer output keeps its first and
// last contextLines lines around OmissionMarker; when that combination is
// still too long its tail is kept behind TailPrefix, and output with too few
// lines keeps its own tail. The result never exceeds maxLen and output that
// fits is returned unchanged.
func Truncate(output string, maxLen, contextLines int) string {
	if utf8.RuneCountInString(output) <= maxLen {
		return output
	}

	lines := strings.Split(output, "\n")
	if contextLines > 0 && len(lines) > contextLines*2 {
		head := strings.Join(lines[:contextLines], "\n")
		tail := strings.Join(lines[len(lines)-contextLines:], "\n")
		combined := head + "\n" + OmissionMarker + "\n" + tail
		if utf8.RuneCountInString(combined) <= maxLen {
			return combined
		}
		return keepTail(combined, maxLen)
	}

	return keepTail(output, maxLen)
}

func keepTail(output string, maxLen int) string {
	keep := maxLen - utf8.RuneCountInString(TailPrefix)
	if keep <= 0 {
		return string([]rune(TailPrefix)[:max(maxLen, 0)])
	}
	runes := []rune(output)
	return TailPrefix + string(runes[len(runes)-keep:])
}
