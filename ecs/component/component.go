// Package component holds the plain data attached to entities. Every kind is
// registered once through NewComponent and addressed by its handle.
package component

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID 0 is never registered, so a zero ComponentKind is invalid.
type ComponentID uint32

type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind registers a new kind for T under T's type name. Two kinds
// of the same T are distinct.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: register(typeName[T]())}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

func (k ComponentKind[T]) String() string { return Name(k.id) }

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

var registry = struct {
	sync.Mutex
	names []string
}{names: []string{""}}

func register(name string) ComponentID {
	registry.Lock()
	defer registry.Unlock()
	registry.names = append(registry.names, name)
	return ComponentID(len(registry.names) - 1)
}

// Name returns the type name a component id was registered under, such as
// "Body". Unknown ids return "".
func Name(id ComponentID) string {
	registry.Lock()
	defer registry.Unlock()
	if int(id) >= len(registry.names) {
		return ""
	}
	return registry.names[id]
}

func typeName[T any]() string {
	var zero T
	name := fmt.Sprintf("%T", zero)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
