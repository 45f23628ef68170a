// The ingest package loads follow relationships from the outside world (text files,
// nostr follow lists from relays or an event store, the crawler's redis graph) and hands
// them to [network.New] as a list of [network.Follow].
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vertex-lab/socnet/pkg/network"
)

var ErrOddTokens = errors.New("odd number of names")

type Source interface {
	// Follows returns all the follow relationships known to the source.
	Follows(ctx context.Context) ([]network.Follow, error)
}

// File is a [Source] reading a text file of whitespace separated names, where each
// consecutive pair "A B" means A follows B.
type File struct {
	Path string
}

func (f File) Follows(ctx context.Context) ([]network.Follow, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer file.Close()

	follows, err := ReadFollows(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return follows, nil
}

// ReadFollows parses whitespace separated names in pairs (follower, followee).
// A trailing name without its followee is an error, not silently dropped.
func ReadFollows(r io.Reader) ([]network.Follow, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var follows []network.Follow
	var follower string
	var odd bool

	for scanner.Scan() {
		name := scanner.Text()
		if !odd {
			follower = name
			odd = true
			continue
		}

		follows = append(follows, network.Follow{Follower: follower, Followee: name})
		odd = false
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if odd {
		return nil, fmt.Errorf("%w: %q has no followee", ErrOddTokens, follower)
	}

	return follows, nil
}
