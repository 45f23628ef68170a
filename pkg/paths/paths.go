// The paths package computes unweighted shortest paths along the follow graph
// using breadth-first search.
package paths

import (
	"slices"

	"github.com/vertex-lab/socnet/pkg/graph"
)

type Walker interface {
	// Follows returns the follow-list of the node, which are the only nodes reachable in one step.
	Follows(node graph.ID) []graph.ID
}

// Path is an ordered list of nodes, from the source to the destination (both included).
// An empty path means the destination is unreachable.
type Path struct {
	Nodes []graph.ID
}

// Len returns the number of hops of the path, which is zero for an empty path.
func (p Path) Len() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// IsEmpty returns whether the path is empty, meaning no path was found.
func (p Path) IsEmpty() bool {
	return len(p.Nodes) == 0
}

// Source returns the first node of the path. It panics if the path is empty.
func (p Path) Source() graph.ID {
	return p.Nodes[0]
}

// Destination returns the last node of the path. It panics if the path is empty.
func (p Path) Destination() graph.ID {
	return p.Nodes[len(p.Nodes)-1]
}

// Reverse returns the nodes from destination to source.
func (p Path) Reverse() []graph.ID {
	reversed := slices.Clone(p.Nodes)
	slices.Reverse(reversed)
	return reversed
}

// Shortest returns a shortest path from source to destination, or an empty path
// if destination can't be reached. The search stops as soon as destination is dequeued.
// When source == destination the path is empty: a node is not considered reachable from itself.
func Shortest(walker Walker, source, destination graph.ID) Path {
	if source == destination {
		return Path{}
	}

	predecessor := map[graph.ID]graph.ID{}
	visited := map[graph.ID]struct{}{source: {}}
	queue := []graph.ID{source}
	found := false

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node == destination {
			found = true
			break
		}

		for _, next := range walker.Follows(node) {
			if _, seen := visited[next]; seen {
				continue
			}

			visited[next] = struct{}{}
			predecessor[next] = node
			queue = append(queue, next)
		}
	}

	if !found {
		return Path{}
	}

	// walk the predecessors back from destination, then flip the chain.
	chain := []graph.ID{destination}
	for node := destination; node != source; {
		node = predecessor[node]
		chain = append(chain, node)
	}

	slices.Reverse(chain)
	return Path{Nodes: chain}
}

// Distances returns the number of hops from source to every node reachable from it,
// source included with distance 0.
func Distances(walker Walker, source graph.ID) map[graph.ID]int {
	distance := map[graph.ID]int{source: 0}
	queue := []graph.ID{source}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, next := range walker.Follows(node) {
			if _, seen := distance[next]; seen {
				continue
			}

			distance[next] = distance[node] + 1
			queue = append(queue, next)
		}
	}

	return distance
}
