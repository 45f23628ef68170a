// The network package builds the immutable follow network from a list of follow
// relationships. A [Model] holds two directed graphs over the same users:
//   - followers: u --> v means v follows u
//   - follows:   u --> v means u follows v
//
// Once [New] returns, the model is never mutated and can be shared by concurrent readers.
package network

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vertex-lab/socnet/pkg/graph"
)

var ErrMalformedFollow = errors.New("malformed follow")

// Follow represents the relationship "Follower follows Followee".
type Follow struct {
	Follower string
	Followee string
}

func (f Follow) String() string {
	return f.Follower + " -> " + f.Followee
}

func (f Follow) Validate() error {
	if f.Follower == "" {
		return fmt.Errorf("%w: %v: empty follower", ErrMalformedFollow, f)
	}
	if f.Followee == "" {
		return fmt.Errorf("%w: %v: empty followee", ErrMalformedFollow, f)
	}
	return nil
}

type Model struct {
	index     *graph.Index
	followers *graph.Digraph
	follows   *graph.Digraph
}

// New builds the model in a single pass over the follows.
// It fails on the first malformed follow, without partial recovery.
func New(follows []Follow) (*Model, error) {
	m := &Model{
		index:     graph.NewIndex(),
		followers: graph.NewDigraph(),
		follows:   graph.NewDigraph(),
	}

	for i, f := range follows {
		if err := m.add(f); err != nil {
			return nil, fmt.Errorf("network.New: follow #%d: %w", i, err)
		}
	}

	return m, nil
}

func (m *Model) add(f Follow) error {
	if err := f.Validate(); err != nil {
		return err
	}

	follower := m.index.IDFor(f.Follower)
	followee := m.index.IDFor(f.Followee)

	for _, g := range []*graph.Digraph{m.followers, m.follows} {
		g.AddVertex(follower)
		g.AddVertex(followee)
	}

	if err := m.followers.AddEdge(followee, follower); err != nil {
		return err
	}

	return m.follows.AddEdge(follower, followee)
}

// Len returns the number of users in the network.
func (m *Model) Len() int {
	return m.index.Len()
}

// Users returns the IDs of all the users, in ascending order.
func (m *Model) Users() []graph.ID {
	return m.index.IDs()
}

// ID returns the ID of the user, or [graph.ErrNodeNotFound].
func (m *Model) ID(name string) (graph.ID, error) {
	return m.index.Lookup(name)
}

// Name returns the name of the user, or [graph.ErrNodeNotFound].
func (m *Model) Name(ID graph.ID) (string, error) {
	return m.index.Name(ID)
}

// Names resolves the IDs into user names.
func (m *Model) Names(IDs []graph.ID) ([]string, error) {
	names := make([]string, len(IDs))
	for i, ID := range IDs {
		name, err := m.index.Name(ID)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// Followers returns the users that follow the user.
func (m *Model) Followers(user graph.ID) []graph.ID {
	return slices.Clone(m.followers.Adjacent(user))
}

// Follows returns the follow-list of the user. The returned slice must not be modified.
// It's the hot path of every traversal, hence it doesn't copy.
func (m *Model) Follows(user graph.ID) []graph.ID {
	return m.follows.Adjacent(user)
}

// FollowerCount returns the number of followers of the user.
func (m *Model) FollowerCount(user graph.ID) int {
	return m.followers.OutDegree(user)
}

// FollowCount returns the number of users the user follows.
func (m *Model) FollowCount(user graph.ID) int {
	return m.follows.OutDegree(user)
}

// IsFollowing returns whether follower follows followee.
func (m *Model) IsFollowing(follower, followee graph.ID) bool {
	return m.follows.HasEdge(follower, followee)
}

// VertexCount returns the number of vertices of the followers graph.
func (m *Model) VertexCount() int {
	return m.followers.VertexCount()
}

// EdgeCount returns the number of distinct follow relationships.
func (m *Model) EdgeCount() int {
	return m.followers.EdgeCount()
}
