package network

import (
	"strconv"

	"github.com/pippellia-btc/slicex"
)

// RandomFollows returns the follows of a random network of n users named "0", ..., "n-1",
// where each user follows k others chosen at random. Repeated follows are possible,
// self-follows are not.
func RandomFollows(n, k int) []Follow {
	if n < 2 || k < 1 {
		return nil
	}

	names := make([]string, n)
	for i := range n {
		names[i] = strconv.Itoa(i)
	}

	follows := make([]Follow, 0, n*k)
	for _, follower := range names {
		for range k {
			followee := slicex.RandomElement(names)
			if followee == follower {
				continue
			}

			follows = append(follows, Follow{Follower: follower, Followee: followee})
		}
	}

	return follows
}
