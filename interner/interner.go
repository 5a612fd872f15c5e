// Package interner caches values behind small dense ids.
package interner

import (
	"fmt"

	"fortio.org/safecast"
)

// ID references a value stored in an Interner.
type ID uint32

// Interner maps values to ids and back. Ids are handed out in first-seen
// order starting at 0 and are never reused.
type Interner[T comparable] struct {
	values []T
	ids    map[T]ID
}

func New[T comparable]() *Interner[T] {
	return &Interner[T]{
		ids: make(map[T]ID),
	}
}

// Insert stores value and returns its id. Inserting a value equal to one
// already present returns the existing id.
func (in *Interner[T]) Insert(value T) ID {
	if id, ok := in.ids[value]; ok {
		return id
	}

	next, err := safecast.Conv[uint32](len(in.values))
	if err != nil {
		panic(fmt.Errorf("interner id overflow: %w", err))
	}

	id := ID(next)
	in.values = append(in.values, value)
	in.ids[value] = id
	return id
}

// Get returns the value behind id. The id must have come from Insert on
// the same Interner.
func (in *Interner[T]) Get(id ID) T {
	return in.values[id]
}

// Lookup is Get for ids of unknown origin.
func (in *Interner[T]) Lookup(id ID) (T, bool) {
	if int(id) >= len(in.values) {
		var zero T
		return zero, false
	}
	return in.values[id], true
}

// Find returns the id of value without inserting it.
func (in *Interner[T]) Find(value T) (ID, bool) {
	id, ok := in.ids[value]
	return id, ok
}

func (in *Interner[T]) Len() int {
	return len(in.values)
}
