package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates predictable game ids for tests: the prefix
// followed by a zero-padded counter. Implements table.IDGenerator.
//
// Thread-safety: SequentialIDs is safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator. If prefix is empty, "game-" is used.
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "game-"
	}
	return &SequentialIDs{prefix: prefix}
}

// Generate returns the next id: prefix0001, prefix0002, ...
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s%04d", g.prefix, g.n)
}
