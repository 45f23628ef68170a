package paths

import (
	"fmt"

	"github.com/vertex-lab/socnet/pkg/graph"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes the [Distances] from the most recently queried sources.
// It is safe for concurrent use. The returned maps are shared and must not be modified.
type Cache struct {
	walker Walker
	cache  *lru.Cache[graph.ID, map[graph.ID]int]
}

// NewCache returns a cache that holds the distances of at most size sources.
func NewCache(walker Walker, size int) (*Cache, error) {
	cache, err := lru.New[graph.ID, map[graph.ID]int](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create the distance cache: %w", err)
	}

	return &Cache{walker: walker, cache: cache}, nil
}

func (c *Cache) Distances(source graph.ID) map[graph.ID]int {
	if distances, ok := c.cache.Get(source); ok {
		return distances
	}

	distances := Distances(c.walker, source)
	c.cache.Add(source, distances)
	return distances
}

// Len returns the number of sources currently cached.
func (c *Cache) Len() int {
	return c.cache.Len()
}
