package analytics

import (
	"fmt"

	"github.com/vertex-lab/socnet/pkg/graph"
	"github.com/vertex-lab/socnet/pkg/paths"
)

// distancer is implemented by networks that can provide the breadth-first distances
// from a source without traversing the graph again.
type distancer interface {
	Distances(source graph.ID) map[graph.ID]int
}

// Cached is a [Network] that memoizes the distances from the most recently queried users,
// so that repeated [Distance], [Centrality] and [Reachable] queries from the same user
// traverse the graph once.
type Cached struct {
	Network
	cache *paths.Cache
}

// WithCache wraps the network with a distance cache holding at most size users.
func WithCache(net Network, size int) (*Cached, error) {
	cache, err := paths.NewCache(net, size)
	if err != nil {
		return nil, fmt.Errorf("WithCache: %w", err)
	}
	return &Cached{Network: net, cache: cache}, nil
}

func (c *Cached) Distances(source graph.ID) map[graph.ID]int {
	return c.cache.Distances(source)
}

// distances returns the distances from source, using the network's cache if it has one.
// The returned map must not be modified.
func distances(net Network, source graph.ID) map[graph.ID]int {
	if d, ok := net.(distancer); ok {
		return d.Distances(source)
	}
	return paths.Distances(net, source)
}
