package document

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces document ids that never repeat for the life of the
// generator.
type IDGenerator interface {
	NextID() string
}

// UUIDGenerator issues random v4 UUIDs. It holds no state.
type UUIDGenerator struct{}

// NextID implements IDGenerator.
func (UUIDGenerator) NextID() string {
	return uuid.New().String()
}

// CounterGenerator combines a per-instance monotonic counter with a
// nanosecond timestamp, e.g. "doc-1760400000000000000-3".
type CounterGenerator struct {
	Prefix string
	Now    func() time.Time

	n uint64
}

// NextID implements IDGenerator.
func (g *CounterGenerator) NextID() string {
	g.n++
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	prefix := g.Prefix
	if prefix == "" {
		prefix = "doc"
	}
	return prefix + "-" + strconv.FormatInt(now().UnixNano(), 10) + "-" + strconv.FormatUint(g.n, 10)
}
