package console

// LineBuffer assembles console lines from a byte stream. CR is ignored and
// LF ends a line. A line longer than the buffer is dropped whole.
type LineBuffer struct {
	buf      []byte
	n        int
	overflow bool
}

// NewLineBuffer creates a LineBuffer holding at most capacity bytes per line
func NewLineBuffer(capacity int) *LineBuffer {
	return &LineBuffer{buf: make([]byte, capacity)}
}

// Feed appends b. When b completes a line, the line is returned with ok set.
// dropped is set instead when the completed line did not fit.
func (l *LineBuffer) Feed(b byte) (line string, ok, dropped bool) {
	switch b {
	case '\r':
		return "", false, false
	case '\n':
		if l.overflow {
			l.Reset()
			return "", false, true
		}
		line = string(l.buf[:l.n])
		l.n = 0
		return line, true, false
	}

	if l.n == len(l.buf) {
		l.overflow = true
		return "", false, false
	}
	l.buf[l.n] = b
	l.n++
	return "", false, false
}

// Pending returns the number of bytes of the unfinished line
func (l *LineBuffer) Pending() int { return l.n }

// Reset discards any partial line
func (l *LineBuffer) Reset() {
	l.n = 0
	l.overflow = false
}
