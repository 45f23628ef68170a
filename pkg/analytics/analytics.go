// The analytics package answers structural queries about a follow network:
// popularity, leaders, density, reciprocity, distances, paths, centrality and reachability.
// All functions only read the network, so they can run concurrently on the same [Network].
package analytics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/vertex-lab/socnet/pkg/graph"
	"github.com/vertex-lab/socnet/pkg/paths"
)

const (
	// Unreachable is the distance between two users when no path connects them.
	Unreachable = math.MaxInt

	// NoPath is the formatted path between two users when no path connects them.
	NoPath = "[NONE]"

	// DefaultLeaderShare is the minimum fraction of all users that must follow a leader.
	DefaultLeaderShare = 0.3
)

var (
	ErrEmptyNetwork    = errors.New("the network has no users")
	ErrDegenerateGraph = errors.New("the network is too small for this metric")
	ErrNoReachable     = errors.New("no user is reachable")
)

type Network interface {
	paths.Walker

	// Len returns the number of users.
	Len() int

	// Users returns the IDs of all users in ascending order.
	Users() []graph.ID

	// ID returns the ID of the named user, or [graph.ErrNodeNotFound].
	ID(name string) (graph.ID, error)

	// Name returns the name of the user, or [graph.ErrNodeNotFound].
	Name(user graph.ID) (string, error)

	FollowerCount(user graph.ID) int
	FollowCount(user graph.ID) int

	// IsFollowing returns whether follower follows followee.
	IsFollowing(follower, followee graph.ID) bool

	VertexCount() int
	EdgeCount() int
}

// MostPopular returns the user with the most followers.
// Ties are broken in favour of the lowest ID, which is the user that appeared first in the input.
func MostPopular(net Network) (string, error) {
	name, err := argmax(net, net.FollowerCount)
	if err != nil {
		return "", fmt.Errorf("MostPopular: %w", err)
	}
	return name, nil
}

// TopFollower returns the user that follows the most users, with the same tie-breaking as [MostPopular].
func TopFollower(net Network) (string, error) {
	name, err := argmax(net, net.FollowCount)
	if err != nil {
		return "", fmt.Errorf("TopFollower: %w", err)
	}
	return name, nil
}

func argmax(net Network, count func(graph.ID) int) (string, error) {
	users := net.Users()
	if len(users) == 0 {
		return "", ErrEmptyNetwork
	}

	best, most := users[0], count(users[0])
	for _, user := range users[1:] {
		if c := count(user); c > most {
			best, most = user, c
		}
	}

	return net.Name(best)
}

// Leaders returns, in alphabetical order, the users that are followed by at least share * N users
// and have more followers than follows.
func Leaders(net Network, share float64) ([]string, error) {
	threshold := share * float64(net.Len())

	var leaders []string
	for _, user := range net.Users() {
		followers := net.FollowerCount(user)
		if float64(followers) < threshold || followers <= net.FollowCount(user) {
			continue
		}

		name, err := net.Name(user)
		if err != nil {
			return nil, fmt.Errorf("Leaders: %w", err)
		}
		leaders = append(leaders, name)
	}

	slices.Sort(leaders)
	return leaders, nil
}

// Density returns the ratio between the number of follows and the number of
// possible follows N * (N-1). It returns [ErrDegenerateGraph] if N <= 1.
func Density(net Network) (float64, error) {
	N := net.VertexCount()
	if N <= 1 {
		return 0, fmt.Errorf("Density: %w: %d users", ErrDegenerateGraph, N)
	}

	return float64(net.EdgeCount()) / (float64(N) * float64(N-1)), nil
}

// Reciprocity returns the fraction of follows that are followed back.
// It returns [ErrDegenerateGraph] if there are no follows.
func Reciprocity(net Network) (float64, error) {
	E := net.EdgeCount()
	if E == 0 {
		return 0, fmt.Errorf("Reciprocity: %w: no follows", ErrDegenerateGraph)
	}

	var mutual int
	for _, user := range net.Users() {
		for _, followee := range net.Follows(user) {
			if net.IsFollowing(followee, user) {
				mutual++
			}
		}
	}

	return float64(mutual) / float64(E), nil
}

// Distance returns the number of hops of the shortest follow path from user1 to user2.
// It's 0 when the users are the same, and [Unreachable] when no path exists.
func Distance(net Network, user1, user2 string) (int, error) {
	source, destination, err := resolve(net, user1, user2)
	if err != nil {
		return 0, fmt.Errorf("Distance: %w", err)
	}

	if source == destination {
		return 0, nil
	}

	if d, ok := net.(distancer); ok {
		distance, reachable := d.Distances(source)[destination]
		if !reachable {
			return Unreachable, nil
		}
		return distance, nil
	}

	path := paths.Shortest(net, source, destination)
	if path.IsEmpty() {
		return Unreachable, nil
	}
	return path.Len(), nil
}

// Path returns the shortest follow path from user1 to user2 formatted as "[user1|...|user2]",
// or [NoPath] if user2 can't be reached. A user has no path to itself.
func Path(net Network, user1, user2 string) (string, error) {
	source, destination, err := resolve(net, user1, user2)
	if err != nil {
		return "", fmt.Errorf("Path: %w", err)
	}

	path := paths.Shortest(net, source, destination)
	if path.IsEmpty() {
		return NoPath, nil
	}

	names := make([]string, len(path.Nodes))
	for i, node := range path.Nodes {
		if names[i], err = net.Name(node); err != nil {
			return "", fmt.Errorf("Path: %w", err)
		}
	}

	return "[" + strings.Join(names, "|") + "]", nil
}

/*
Centrality returns the mean distance from user to all the other users.

Unreachable users contribute [Unreachable] to the sum, which is accumulated as a float64
and therefore never overflows. On a graph where some user can't be reached the result is
dominated by the sentinel and only tells that the graph is not strongly connected from user.
Use [ReachableCentrality] for the mean over the reachable users only.
*/
func Centrality(net Network, user string) (float64, error) {
	source, err := net.ID(user)
	if err != nil {
		return 0, fmt.Errorf("Centrality: %w", err)
	}

	N := net.Len()
	if N <= 1 {
		return 0, fmt.Errorf("Centrality: %w: %d users", ErrDegenerateGraph, N)
	}

	hops := distances(net, source)
	var sum float64

	for _, other := range net.Users() {
		if other == source {
			continue
		}

		d, reachable := hops[other]
		if !reachable {
			sum += float64(Unreachable)
			continue
		}
		sum += float64(d)
	}

	return sum / float64(N-1), nil
}

// ReachableCentrality returns the mean distance from user to the users it can reach.
// It returns [ErrNoReachable] if user can't reach anyone.
func ReachableCentrality(net Network, user string) (float64, error) {
	source, err := net.ID(user)
	if err != nil {
		return 0, fmt.Errorf("ReachableCentrality: %w", err)
	}

	var sum float64
	var count int

	for node, d := range distances(net, source) {
		if node == source {
			continue
		}

		sum += float64(d)
		count++
	}

	if count == 0 {
		return 0, fmt.Errorf("ReachableCentrality: %w from %q", ErrNoReachable, user)
	}

	return sum / float64(count), nil
}

// Reachable returns, in alphabetical order, all the other users that can be reached
// from user by following the follow-lists. It never contains user itself.
func Reachable(net Network, user string) ([]string, error) {
	source, err := net.ID(user)
	if err != nil {
		return nil, fmt.Errorf("Reachable: %w", err)
	}

	hops := distances(net, source)
	reachable := make([]string, 0, len(hops))

	for node := range hops {
		if node == source {
			continue
		}

		name, err := net.Name(node)
		if err != nil {
			return nil, fmt.Errorf("Reachable: %w", err)
		}
		reachable = append(reachable, name)
	}

	slices.Sort(reachable)
	return reachable, nil
}

func resolve(net Network, user1, user2 string) (graph.ID, graph.ID, error) {
	source, err := net.ID(user1)
	if err != nil {
		return -1, -1, err
	}

	destination, err := net.ID(user2)
	if err != nil {
		return -1, -1, err
	}

	return source, destination, nil
}
