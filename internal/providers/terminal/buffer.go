package terminal

// LineBuffer accumulates shell output as lines. Lines are split on "\n"
// with one trailing "\r" removed; a partial last line is carried until more
// output arrives or the buffer is frozen. It is not safe for concurrent use;
// Session serializes access.
type LineBuffer struct {
	lines   []string
	partial []byte
	frozen  bool
}

// NewLineBuffer creates an empty line buffer
func NewLineBuffer() *LineBuffer {
	return &LineBuffer{}
}

// Write appends output. After Freeze it discards input but still reports
// success so the output pump keeps draining.
func (b *LineBuffer) Write(p []byte) (int, error) {
	if b.frozen {
		return len(p), nil
	}

	start := 0
	for i, c := range p {
		if c != '\n' {
			continue
		}
		b.partial = append(b.partial, p[start:i]...)
		b.lines = append(b.lines, trimCR(b.partial))
		b.partial = b.partial[:0]
		start = i + 1
	}
	b.partial = append(b.partial, p[start:]...)

	return len(p), nil
}

// Freeze flushes the partial line and stops accepting output
func (b *LineBuffer) Freeze() {
	if b.frozen {
		return
	}
	if len(b.partial) > 0 {
		b.lines = append(b.lines, trimCR(b.partial))
		b.partial = nil
	}
	b.frozen = true
}

// Frozen reports whether Freeze was called
func (b *LineBuffer) Frozen() bool {
	return b.frozen
}

// Lines returns a copy of the complete lines, plus the partial line if any
func (b *LineBuffer) Lines() []string {
	out := make([]string, len(b.lines), len(b.lines)+1)
	copy(out, b.lines)
	if len(b.partial) > 0 {
		out = append(out, trimCR(b.partial))
	}
	return out
}

// Len returns the number of complete lines
func (b *LineBuffer) Len() int {
	return len(b.lines)
}

func trimCR(line []byte) string {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line)
}
