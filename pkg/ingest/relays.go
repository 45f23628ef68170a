package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/vertex-lab/socnet/pkg/network"
)

// Relays is a [Source] that fetches the follow lists of Authors from nostr relays.
type Relays struct {
	URLs    []string
	Authors []string
	Timeout time.Duration
}

func (r Relays) Follows(ctx context.Context) ([]network.Follow, error) {
	if len(r.Authors) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	pool := nostr.NewSimplePool(ctx)
	defer shutdown(pool)

	filter := nostr.Filter{
		Kinds:   []int{nostr.KindFollowList},
		Authors: r.Authors,
		Limit:   len(r.Authors),
	}

	var events []nostr.Event
	for event := range pool.FetchMany(ctx, r.URLs, filter) {
		events = append(events, *event.Event)
	}

	if len(events) == 0 && ctx.Err() != nil {
		return nil, fmt.Errorf("failed to fetch follow lists: %w", ctx.Err())
	}

	slog.Info("fetched follow lists", "events", len(events), "relays", len(r.URLs))
	return followLists(events)
}

// shutdown iterates over the relays in the pool and closes all connections.
func shutdown(pool *nostr.SimplePool) {
	pool.Relays.Range(func(_ string, relay *nostr.Relay) bool {
		relay.Close()
		return true
	})
}
