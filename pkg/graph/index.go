package graph

import (
	"fmt"
)

// Index is the bidirectional mapping between user names and IDs.
// IDs are assigned by a counter, so two distinct names never share an ID.
type Index struct {
	ids   map[string]ID
	names []string
}

func NewIndex() *Index {
	return &Index{ids: make(map[string]ID)}
}

// IDFor returns the ID of name, registering it if it was never seen before.
func (x *Index) IDFor(name string) ID {
	if ID, exists := x.ids[name]; exists {
		return ID
	}

	ID := ID(len(x.names))
	x.ids[name] = ID
	x.names = append(x.names, name)
	return ID
}

// Lookup returns the ID of name, or [ErrNodeNotFound] if name was never registered.
func (x *Index) Lookup(name string) (ID, error) {
	ID, exists := x.ids[name]
	if !exists {
		return -1, fmt.Errorf("failed to lookup %q: %w", name, ErrNodeNotFound)
	}
	return ID, nil
}

// Name returns the name registered with the ID, or [ErrNodeNotFound].
func (x *Index) Name(ID ID) (string, error) {
	if ID < 0 || int(ID) >= len(x.names) {
		return "", fmt.Errorf("failed to fetch the name of node %d: %w", ID, ErrNodeNotFound)
	}
	return x.names[ID], nil
}

// IDs returns all the registered IDs in ascending order.
func (x *Index) IDs() []ID {
	IDs := make([]ID, len(x.names))
	for i := range IDs {
		IDs[i] = ID(i)
	}
	return IDs
}

// Len returns the number of registered names.
func (x *Index) Len() int {
	return len(x.names)
}
