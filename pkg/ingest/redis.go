package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/socnet/pkg/graph"
	"github.com/vertex-lab/socnet/pkg/network"
)

// The key schema is the one of the crawler's redis graph, so a crawled database
// can be analyzed directly.
const (
	// redis variable names
	KeyDatabase        = "database"
	KeyLastNodeID      = "lastNodeID"
	KeyKeyIndex        = "keyIndex"
	KeyNodePrefix      = "node:"
	KeyFollowsPrefix   = "follows:"
	KeyFollowersPrefix = "followers:"

	// redis node HASH fields
	NodeID     = "id"
	NodePubkey = "pubkey"

	batchSize = 10000
)

// Redis is a [Source] reading the follow graph stored in redis.
type Redis struct {
	Client *redis.Client
}

func NewRedis(opt *redis.Options) (Redis, error) {
	r := Redis{Client: redis.NewClient(opt)}
	if err := r.Client.Ping(context.Background()).Err(); err != nil {
		return Redis{}, fmt.Errorf("failed to connect to redis at %s: %w", opt.Addr, err)
	}
	return r, nil
}

// Close closes the client, releasing any open resources.
func (r Redis) Close() error {
	return r.Client.Close()
}

// NodeCount returns the number of nodes stored in redis (in the keyIndex)
func (r Redis) NodeCount(ctx context.Context) (int, error) {
	nodes, err := r.Client.HLen(ctx, KeyKeyIndex).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch the node count: %w", err)
	}
	return int(nodes), nil
}

// Follows returns every follow relationship stored in redis, ordered by follower ID
// and then by followee ID, which keeps the resulting network reproducible.
func (r Redis) Follows(ctx context.Context) ([]network.Follow, error) {
	index, err := r.Client.HGetAll(ctx, KeyKeyIndex).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch the %s: %w", KeyKeyIndex, err)
	}

	names := make(map[int]string, len(index))
	for pubkey, ID := range index {
		id, err := strconv.Atoi(ID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse the ID of %s: %w", pubkey, err)
		}
		names[id] = pubkey
	}

	nodes := make([]int, 0, len(names))
	for id := range names {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)

	var follows []network.Follow
	for batch := range slices.Chunk(nodes, batchSize) {
		members, err := r.bulkFollows(ctx, batch)
		if err != nil {
			return nil, err
		}

		for i, node := range batch {
			for _, followee := range members[i] {
				name, exists := names[followee]
				if !exists {
					return nil, fmt.Errorf("%s%d lists node %d: %w", KeyFollowsPrefix, node, followee, graph.ErrNodeNotFound)
				}

				follows = append(follows, network.Follow{Follower: names[node], Followee: name})
			}
		}
	}

	slog.Info("loaded follows from redis", "nodes", len(nodes), "follows", len(follows))
	return follows, nil
}

// bulkFollows returns the sorted follow-lists of the nodes, in a single round trip.
func (r Redis) bulkFollows(ctx context.Context, nodes []int) ([][]int, error) {
	pipe := r.Client.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(nodes))
	for i, node := range nodes {
		cmds[i] = pipe.SMembers(ctx, follows(node))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch the follows of %d nodes: %w", len(nodes), err)
	}

	members := make([][]int, len(nodes))
	for i, cmd := range cmds {
		IDs, err := toInts(cmd.Val())
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", follows(nodes[i]), err)
		}

		slices.Sort(IDs)
		members[i] = IDs
	}

	return members, nil
}

// Save writes the follows into redis, adding the missing nodes first.
func (r Redis) Save(ctx context.Context, list []network.Follow) error {
	IDs := make(map[string]int)
	for _, f := range list {
		if err := f.Validate(); err != nil {
			return err
		}

		for _, name := range []string{f.Follower, f.Followee} {
			if _, done := IDs[name]; done {
				continue
			}

			ID, err := r.nodeID(ctx, name)
			if err != nil {
				return err
			}
			IDs[name] = ID
		}
	}

	pipe := r.Client.TxPipeline()
	for _, f := range list {
		follower, followee := IDs[f.Follower], IDs[f.Followee]
		pipe.SAdd(ctx, follows(follower), followee)
		pipe.SAdd(ctx, followers(followee), follower)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save %d follows: pipeline failed: %w", len(list), err)
	}
	return nil
}

// nodeID returns the ID of the node with the pubkey, adding it if missing.
func (r Redis) nodeID(ctx context.Context, pubkey string) (int, error) {
	ID, err := r.Client.HGet(ctx, KeyKeyIndex, pubkey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return r.addNode(ctx, pubkey)

	case err != nil:
		return 0, fmt.Errorf("failed to fetch ID of node with pubkey %s: %w", pubkey, err)

	default:
		return strconv.Atoi(ID)
	}
}

// addNode adds a new node to the database and returns its assigned ID
func (r Redis) addNode(ctx context.Context, pubkey string) (int, error) {
	// get the ID outside the transaction, which implies there might be "holes",
	// meaning IDs not associated with any node
	next, err := r.Client.HIncrBy(ctx, KeyDatabase, KeyLastNodeID, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to add node with pubkey %s: failed to increment ID: %w", pubkey, err)
	}
	ID := int(next - 1)

	pipe := r.Client.TxPipeline()
	pipe.HSetNX(ctx, KeyKeyIndex, pubkey, ID)
	pipe.HSet(ctx, node(ID), NodeID, ID, NodePubkey, pubkey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to add node with pubkey %s: pipeline failed: %w", pubkey, err)
	}

	return ID, nil
}

func node(id int) string {
	return KeyNodePrefix + strconv.Itoa(id)
}

func follows(id int) string {
	return KeyFollowsPrefix + strconv.Itoa(id)
}

func followers(id int) string {
	return KeyFollowersPrefix + strconv.Itoa(id)
}

// toInts converts a slice of strings to integers
func toInts(s []string) ([]int, error) {
	ints := make([]int, len(s))
	for i, e := range s {
		n, err := strconv.Atoi(e)
		if err != nil {
			return nil, err
		}
		ints[i] = n
	}
	return ints, nil
}
