package ingest

import (
	"reflect"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/socnet/pkg/network"
)

var testAddress = "localhost:6380"

// newTestRedis connects to the test redis, skipping the test if it's not running.
func newTestRedis(t *testing.T) Redis {
	t.Helper()
	r, err := NewRedis(&redis.Options{Addr: testAddress})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}

	t.Cleanup(func() {
		r.Client.FlushAll(ctx)
		r.Close()
	})

	r.Client.FlushAll(ctx)
	return r
}

func TestRedis(t *testing.T) {
	r := newTestRedis(t)

	saved := []network.Follow{
		{Follower: "A", Followee: "B"},
		{Follower: "B", Followee: "C"},
		{Follower: "A", Followee: "C"},
		{Follower: "C", Followee: "A"},
	}

	if err := r.Save(ctx, saved); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	count, err := r.NodeCount(ctx)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 nodes, got %d", count)
	}

	members, err := r.Client.SMembers(ctx, followers(2)).Result()
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected C to have 2 followers, got %v", members)
	}

	loaded, err := r.Follows(ctx)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	expected := []network.Follow{
		{Follower: "A", Followee: "B"},
		{Follower: "A", Followee: "C"},
		{Follower: "B", Followee: "C"},
		{Follower: "C", Followee: "A"},
	}

	if !reflect.DeepEqual(loaded, expected) {
		t.Fatalf("expected follows %v, got %v", expected, loaded)
	}

	// saving again doesn't duplicate nodes or follows
	if err := r.Save(ctx, saved); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	again, err := r.Follows(ctx)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if !reflect.DeepEqual(again, expected) {
		t.Fatalf("expected follows %v, got %v", expected, again)
	}
}

func TestRedisDanglingFollow(t *testing.T) {
	r := newTestRedis(t)

	if err := r.Save(ctx, []network.Follow{{Follower: "A", Followee: "B"}}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	// node 69 was never added to the keyIndex
	if err := r.Client.SAdd(ctx, follows(0), 69).Err(); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Follows(ctx); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
