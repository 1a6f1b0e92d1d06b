package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineBufferSplitsLines(t *testing.T) {
	b := NewLineBuffer()
	b.Write([]byte("one\r\ntwo\nthr"))
	b.Write([]byte("ee\r\n"))

	assert.Equal(t, []string{"one", "two", "three"}, b.Lines())
	assert.Equal(t, 3, b.Len())
}

func TestLineBufferCarriesPartialLine(t *testing.T) {
	b := NewLineBuffer()
	b.Write([]byte("progress 10%"))

	assert.Equal(t, []string{"progress 10%"}, b.Lines())
	assert.Equal(t, 0, b.Len())

	b.Freeze()
	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Frozen())
}

func TestLineBufferIgnoresWritesAfterFreeze(t *testing.T) {
	b := NewLineBuffer()
	b.Write([]byte("kept\n"))
	b.Freeze()

	n, err := b.Write([]byte("dropped\n"))
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []string{"kept"}, b.Lines())
}

func TestLineBufferKeepsEmptyLines(t *testing.T) {
	b := NewLineBuffer()
	b.Write([]byte("a\r\n\r\nb\r\n"))
	assert.Equal(t, []string{"a", "", "b"}, b.Lines())
}

func TestLinesReturnsCopy(t *testing.T) {
	b := NewLineBuffer()
	b.Write([]byte("a\n"))
	lines := b.Lines()
	lines[0] = "changed"
	assert.Equal(t, []string{"a"}, b.Lines())
}
