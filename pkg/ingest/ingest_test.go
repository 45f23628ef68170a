package ingest

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/vertex-lab/socnet/pkg/network"
)

var ctx = context.Background()

func TestReadFollows(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []network.Follow
		err      error
	}{
		{
			name: "empty",
		},
		{
			name:  "one per line",
			input: "A B\nB C\n",
			expected: []network.Follow{
				{Follower: "A", Followee: "B"},
				{Follower: "B", Followee: "C"},
			},
		},
		{
			name:  "any whitespace",
			input: "  A\tB C\n\nD  ",
			expected: []network.Follow{
				{Follower: "A", Followee: "B"},
				{Follower: "C", Followee: "D"},
			},
		},
		{
			name:  "missing followee",
			input: "A B\nC",
			err:   ErrOddTokens,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			follows, err := ReadFollows(strings.NewReader(test.input))
			if !errors.Is(err, test.err) {
				t.Fatalf("expected error %v, got %v", test.err, err)
			}

			if !reflect.DeepEqual(follows, test.expected) {
				t.Fatalf("expected follows %v, got %v", test.expected, follows)
			}
		})
	}
}

func TestFile(t *testing.T) {
	path := t.TempDir() + "/follows.txt"
	if err := os.WriteFile(path, []byte("A B\nB A\n"), 0644); err != nil {
		t.Fatal(err)
	}

	follows, err := File{Path: path}.Follows(ctx)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	expected := []network.Follow{{Follower: "A", Followee: "B"}, {Follower: "B", Followee: "A"}}
	if !reflect.DeepEqual(follows, expected) {
		t.Fatalf("expected follows %v, got %v", expected, follows)
	}

	if _, err := (File{Path: path + ".missing"}).Follows(ctx); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected error %v, got %v", os.ErrNotExist, err)
	}
}
