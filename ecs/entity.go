package ecs

import "fmt"

// Entity packs a slot id in the low 32 bits and that slot's generation in
// the high 32, so a handle to a recycled slot never matches the new occupant.
type Entity uint64

type entityID uint32
type generation uint32

const (
	entityIDBits = 32
	entityIDMask = 1<<entityIDBits - 1
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID { return entityID(e & entityIDMask) }

func (e Entity) generation() generation { return generation(e >> entityIDBits) }

// String renders slot and generation as "id#gen".
func (e Entity) String() string {
	if e == 0 {
		return "none"
	}
	return fmt.Sprintf("%d#%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e > 0
}

// Tag is the plain owner value stored on projectiles and shockwaves, which
// cannot import this package.
func (e Entity) Tag() uint64 { return uint64(e) }

// Owns reports whether an owner tag names e.
func (e Entity) Owns(tag uint64) bool { return e != 0 && uint64(e) == tag }
