package ingest

import (
	"context"
	"fmt"

	"github.com/nbd-wtf/go-nostr"
	"github.com/pippellia-btc/nastro"
	"github.com/pippellia-btc/nastro/sqlite"
	"github.com/vertex-lab/socnet/pkg/network"
)

// OpenStore opens (or creates) the sqlite event store at URL.
func OpenStore(URL string, opts ...sqlite.Option) (*sqlite.Store, error) {
	store, err := sqlite.New(URL, sqlite.WithRetries(2))
	if err != nil {
		return nil, fmt.Errorf("failed to open event store %s: %w", URL, err)
	}

	for _, opt := range opts {
		if err := opt(store); err != nil {
			return nil, err
		}
	}
	return store, nil
}

const maxStoreEvents = 1_000_000

// EventStore is a [Source] that reads follow lists from a nostr event store.
// If Authors is empty, the follow lists of every author in the store are used.
type EventStore struct {
	Store   nastro.Store
	Authors []string
}

func (s EventStore) Follows(ctx context.Context) ([]network.Follow, error) {
	filter := nostr.Filter{
		Kinds:   []int{nostr.KindFollowList},
		Authors: s.Authors,
		Limit:   maxStoreEvents,
	}

	if len(s.Authors) > 0 {
		filter.Limit = len(s.Authors)
	}

	events, err := s.Store.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query follow lists: %w", err)
	}

	return followLists(events)
}
