package network

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/vertex-lab/socnet/pkg/graph"
)

func TestNew(t *testing.T) {
	follows := []Follow{
		{Follower: "A", Followee: "B"},
		{Follower: "B", Followee: "C"},
		{Follower: "C", Followee: "A"},
		{Follower: "A", Followee: "C"},
	}

	m, err := New(follows)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if m.Len() != 3 || m.VertexCount() != 3 {
		t.Fatalf("expected 3 users, got %d (%d vertices)", m.Len(), m.VertexCount())
	}

	if m.EdgeCount() != 4 {
		t.Fatalf("expected 4 edges, got %d", m.EdgeCount())
	}

	A, err := m.ID("A")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	C, _ := m.ID("C")

	if !reflect.DeepEqual(m.Follows(A), []graph.ID{1, 2}) {
		t.Errorf("expected follows of A [1 2], got %v", m.Follows(A))
	}

	if !reflect.DeepEqual(m.Followers(C), []graph.ID{1, 0}) {
		t.Errorf("expected followers of C [1 0], got %v", m.Followers(C))
	}

	if m.FollowerCount(C) != 2 || m.FollowCount(C) != 1 {
		t.Errorf("unexpected counts for C: followers %d, follows %d", m.FollowerCount(C), m.FollowCount(C))
	}

	if !m.IsFollowing(C, A) || m.IsFollowing(A, A) {
		t.Errorf("IsFollowing: unexpected result")
	}

	names, err := m.Names(m.Users())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if !reflect.DeepEqual(names, []string{"A", "B", "C"}) {
		t.Errorf("expected names [A B C], got %v", names)
	}
}

func TestNewMalformed(t *testing.T) {
	tests := []struct {
		name    string
		follows []Follow
	}{
		{
			name:    "empty follower",
			follows: []Follow{{Followee: "B"}},
		},
		{
			name:    "empty followee",
			follows: []Follow{{Follower: "A", Followee: "B"}, {Follower: "A"}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := New(test.follows)
			if !errors.Is(err, ErrMalformedFollow) {
				t.Fatalf("expected error %v, got %v", ErrMalformedFollow, err)
			}

			if m != nil {
				t.Fatalf("expected nil model, got %v", m)
			}
		})
	}
}

func TestNewIdempotent(t *testing.T) {
	once, err := New([]Follow{{Follower: "A", Followee: "B"}})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	twice, err := New([]Follow{{Follower: "A", Followee: "B"}, {Follower: "A", Followee: "B"}})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected the same model, got %v and %v", once, twice)
	}
}

func TestUnknownUser(t *testing.T) {
	m, err := New(nil)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if _, err := m.ID("ghost"); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Fatalf("expected error %v, got %v", graph.ErrNodeNotFound, err)
	}

	if _, err := m.Name(0); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Fatalf("expected error %v, got %v", graph.ErrNodeNotFound, err)
	}
}

func TestRandomFollows(t *testing.T) {
	follows := RandomFollows(100, 5)
	if len(follows) > 500 {
		t.Fatalf("expected at most 500 follows, got %d", len(follows))
	}

	for _, f := range follows {
		if f.Follower == f.Followee {
			t.Fatalf("unexpected self-follow %v", f)
		}
	}

	if RandomFollows(1, 5) != nil {
		t.Fatalf("expected nil follows for a single user")
	}
}

func BenchmarkNew(b *testing.B) {
	sizes := []int{1000, 10000, 100000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			follows := RandomFollows(size, 10)

			b.ResetTimer()
			for range b.N {
				if _, err := New(follows); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
