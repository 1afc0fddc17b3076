package common

import (
	"bytes"
	"io"
	"sync"
)

// LineRing keeps the latest lines written to it. A line longer than the
// configured maximum is cut into multiple lines.
type LineRing struct {
	maxLines      int
	maxLineLength int

	lines   [][]byte
	offset  int
	pending []byte

	mutex sync.RWMutex
}

func NewLineRing(maxLines, maxLineLength int) *LineRing {
	if maxLines < 1 {
		maxLines = 1
	}
	if maxLineLength < 1 {
		maxLineLength = 1
	}
	return &LineRing{
		maxLines:      maxLines,
		maxLineLength: maxLineLength,
		lines:         make([][]byte, 0, maxLines),
	}
}

func (this *LineRing) Write(p []byte) (int, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			this.pending = append(this.pending, p...)
			p = nil
		} else {
			this.pending = append(this.pending, p[:i]...)
			p = p[i+1:]
		}
		for len(this.pending) > this.maxLineLength {
			this.push(this.pending[:this.maxLineLength])
			this.pending = this.pending[this.maxLineLength:]
		}
		if i >= 0 {
			this.push(this.pending)
			this.pending = this.pending[:0]
		}
	}
	return n, nil
}

func (this *LineRing) push(line []byte) {
	clone := bytes.Clone(line)
	if clone == nil {
		clone = []byte{}
	}
	if len(this.lines) < this.maxLines {
		this.lines = append(this.lines, clone)
		return
	}
	this.lines[this.offset] = clone
	this.offset = (this.offset + 1) % this.maxLines
}

func (this *LineRing) Len() int {
	this.mutex.RLock()
	defer this.mutex.RUnlock()
	return len(this.lines)
}

// Last returns up to n of the latest complete lines, oldest first.
func (this *LineRing) Last(n int) []string {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	if n > len(this.lines) {
		n = len(this.lines)
	}
	if n <= 0 {
		return nil
	}
	result := make([]string, 0, n)
	start := len(this.lines) - n
	for i := start; i < len(this.lines); i++ {
		result = append(result, string(this.lines[(this.offset+i)%len(this.lines)]))
	}
	return result
}

// WriteTo writes all complete lines, oldest first, each terminated by \n.
func (this *LineRing) WriteTo(w io.Writer) (n int64, err error) {
	for _, line := range this.Last(this.maxLines) {
		wn, wErr := io.WriteString(w, line+"\n")
		n += int64(wn)
		if wErr != nil {
			return n, wErr
		}
	}
	return n, nil
}
