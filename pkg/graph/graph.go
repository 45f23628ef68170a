// The graph package defines the in-memory building blocks of a follow network:
// the [Index] that assigns dense IDs to user names, and the [Digraph] that stores
// directed adjacency between those IDs.
package graph

import (
	"errors"
	"strconv"
)

var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrInvalidVertex = errors.New("invalid vertex")
)

// ID identifies a user inside one network. IDs are dense, starting from 0,
// in the order names were first observed.
type ID int

func (id ID) String() string {
	return strconv.Itoa(int(id))
}
