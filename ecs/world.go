package ecs

import "github.com/milk9111/bossrush/ecs/component"

// World owns entities, their component stores, the event queue and the arena
// context every system reads.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	arena    *Arena
}

// NewWorld creates an empty ECS world with a default arena.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		arena:  NewArena(DefaultFieldWidth, DefaultFieldHeight, nil),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Arena returns the world context resource.
func (w *World) Arena() *Arena {
	if w == nil {
		return nil
	}
	return w.arena
}

// SetArena replaces the world context resource.
func (w *World) SetArena(a *Arena) {
	if w == nil || a == nil {
		return
	}
	w.arena = a
}

// StoreSizes counts live components per kind name. Kinds sharing a type name
// are summed.
func StoreSizes(w *World) map[string]int {
	if w == nil {
		return nil
	}
	out := make(map[string]int, len(w.stores))
	for id, s := range w.stores {
		if n := s.Len(); n > 0 {
			out[component.Name(id)] += n
		}
	}
	return out
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
