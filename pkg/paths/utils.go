package paths

import (
	"github.com/vertex-lab/socnet/pkg/graph"
)

// MapWalker is a [Walker] backed by a map, useful for tests and small graphs.
type MapWalker struct {
	follows map[graph.ID][]graph.ID
}

func NewWalker(m map[graph.ID][]graph.ID) *MapWalker {
	return &MapWalker{follows: m}
}

func (m *MapWalker) Follows(node graph.ID) []graph.ID {
	return m.follows[node]
}

// NewLineWalker returns a walker over the line 0 -> 1 -> ... -> n-1.
func NewLineWalker(n int) *MapWalker {
	follows := make(map[graph.ID][]graph.ID, n)
	for i := range n - 1 {
		follows[graph.ID(i)] = []graph.ID{graph.ID(i + 1)}
	}
	return &MapWalker{follows: follows}
}

// NewCyclicWalker returns a walker over the cycle 0 -> 1 -> ... -> n-1 -> 0.
func NewCyclicWalker(n int) *MapWalker {
	follows := make(map[graph.ID][]graph.ID, n)
	for i := range n {
		follows[graph.ID(i)] = []graph.ID{graph.ID((i + 1) % n)}
	}
	return &MapWalker{follows: follows}
}
