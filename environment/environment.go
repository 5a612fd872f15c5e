// Package environment implements the lexical scope stack used while type
// checking.
package environment

import "github.com/pontaoski/envyc/interner"

// Environment is a stack of scopes mapping identifier ids to values.
type Environment[T any] struct {
	scopes []map[interner.ID]T
}

func New[T any]() *Environment[T] {
	return &Environment[T]{}
}

// NewScope pushes an empty scope.
func (e *Environment[T]) NewScope() {
	e.scopes = append(e.scopes, make(map[interner.ID]T))
}

// RemoveTopScope pops the innermost scope. Calls must be balanced with
// NewScope; popping an empty stack panics.
func (e *Environment[T]) RemoveTopScope() {
	if len(e.scopes) == 0 {
		panic("environment: RemoveTopScope on empty scope stack")
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Define binds id in the innermost scope, replacing an earlier binding of id
// in that same scope.
func (e *Environment[T]) Define(id interner.ID, value T) {
	if len(e.scopes) == 0 {
		panic("environment: Define with no scope")
	}
	e.scopes[len(e.scopes)-1][id] = value
}

// Get returns the binding of id in the nearest enclosing scope.
func (e *Environment[T]) Get(id interner.ID) (T, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if val, ok := e.scopes[i][id]; ok {
			return val, true
		}
	}

	var zero T
	return zero, false
}

// Depth is the number of scopes on the stack.
func (e *Environment[T]) Depth() int {
	return len(e.scopes)
}
