package ingest

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/nbd-wtf/go-nostr"
	"github.com/vertex-lab/socnet/pkg/network"
)

var ErrUnsupportedKind = errors.New("unsupported event kind")

const (
	followPrefix = "p"
	maxFollows   = 50000
)

// FollowList returns the follows declared by a nostr follow list (kind:3), where the
// author follows every valid pubkey in its "p" tags. Self-follows are removed.
func FollowList(event *nostr.Event) ([]network.Follow, error) {
	if event.Kind != nostr.KindFollowList {
		return nil, fmt.Errorf("%w: event ID %s has kind %d", ErrUnsupportedKind, event.ID, event.Kind)
	}

	pubkeys := parsePubkeys(event)
	follows := make([]network.Follow, len(pubkeys))
	for i, pk := range pubkeys {
		follows[i] = network.Follow{Follower: event.PubKey, Followee: pk}
	}

	return follows, nil
}

// parse unique valid pubkeys (excluding author) from the "p" tags in the event.
func parsePubkeys(event *nostr.Event) []string {
	pubkeys := make([]string, 0, min(len(event.Tags), maxFollows))
	for _, tag := range event.Tags {
		if len(pubkeys) > maxFollows {
			// stop processing, list is too big
			break
		}

		if len(tag) < 2 {
			continue
		}

		prefix, pubkey := tag[0], tag[1]
		if prefix != followPrefix {
			continue
		}

		if pubkey == event.PubKey || !nostr.IsValidPublicKey(pubkey) {
			continue
		}

		pubkeys = append(pubkeys, pubkey)
	}

	return unique(pubkeys)
}

// latest returns, for each author, its most recent event.
// Follow lists are replaceable, so only the latest one is valid.
func latest(events []nostr.Event) []*nostr.Event {
	byAuthor := make(map[string]*nostr.Event, len(events))
	for i := range events {
		e, exists := byAuthor[events[i].PubKey]
		if !exists || events[i].CreatedAt > e.CreatedAt {
			byAuthor[events[i].PubKey] = &events[i]
		}
	}

	result := make([]*nostr.Event, 0, len(byAuthor))
	for _, e := range byAuthor {
		result = append(result, e)
	}

	// sorting by author makes the resulting network (and its IDs) reproducible.
	slices.SortFunc(result, func(a, b *nostr.Event) int { return cmp.Compare(a.PubKey, b.PubKey) })
	return result
}

// followLists converts the latest follow list of each author into follows.
func followLists(events []nostr.Event) ([]network.Follow, error) {
	var follows []network.Follow
	for _, event := range latest(events) {
		f, err := FollowList(event)
		if err != nil {
			return nil, err
		}
		follows = append(follows, f...)
	}
	return follows, nil
}

// Unique returns a slice of unique elements of the input slice.
func unique[E cmp.Ordered](slice []E) []E {
	if len(slice) == 0 {
		return nil
	}

	slices.Sort(slice)
	unique := make([]E, 0, len(slice))
	unique = append(unique, slice[0])

	for i := 1; i < len(slice); i++ {
		if slice[i] != slice[i-1] {
			unique = append(unique, slice[i])
		}
	}

	return unique
}
