package logging

import (
	"bytes"
	"sync"
)

// Ring keeps the most recent log lines for the in-app log viewer.
type Ring struct {
	mu      sync.Mutex
	lines   []string
	limit   int
	partial []byte
}

// NewRing creates a ring holding up to size lines.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = 200
	}
	return &Ring{limit: size}
}

// Write implements io.Writer. Incomplete trailing lines are held until their
// newline arrives.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := append(r.partial, p...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		r.push(string(data[:i]))
		data = data[i+1:]
	}
	r.partial = append(r.partial[:0:0], data...)
	return len(p), nil
}

func (r *Ring) push(line string) {
	if len(r.lines) == r.limit {
		copy(r.lines, r.lines[1:])
		r.lines = r.lines[:len(r.lines)-1]
	}
	r.lines = append(r.lines, line)
}

// Lines returns a copy of the buffered lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len returns the number of buffered lines.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}
