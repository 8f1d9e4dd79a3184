package order

import (
	"sync"

	"github.com/google/uuid"
)

// RefGenerator produces order references.
type RefGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 order references.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined references for testing.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu   sync.Mutex
	refs []string
	idx  int
}

// NewFixedGenerator creates a generator that returns refs in order.
func NewFixedGenerator(refs ...string) *FixedGenerator {
	return &FixedGenerator{refs: refs}
}

// Generate returns the next predetermined reference.
//
// Panics if all references have been consumed, so a test that composes more
// orders than it planned for fails fast.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.refs) {
		panic("FixedGenerator: all refs exhausted")
	}
	ref := g.refs[g.idx]
	g.idx++
	return ref
}
