package ecs

import (
	"fmt"
	"slices"
)

// Entity is a dense integer handle. Ids of removed entities are reused; there is
// no generation counter, so a stale handle silently refers to whichever entity
// next receives the id.
type Entity int

// ComponentID identifies one component kind. Valid ids are [0, count) for the
// World they are used with.
type ComponentID int

// FlagID identifies one bit of an entity's flag mask. Flag 0 is AliveFlag and
// belongs to the registry; user flags start at 1.
type FlagID int

// AliveFlag is the reserved flag bit marking an entity as allocated.
const AliveFlag FlagID = 0

const aliveBit = 1

// EntityRegistry owns entity liveness, the per-entity component mask and the
// per-entity flag mask, and recycles the ids of removed entities.
type EntityRegistry[M, F Bits] struct {
	mask      []M
	flags     []F
	free      []Entity
	alive     int
	maskWidth int
	flagWidth int
}

// NewEntityRegistry creates a registry with room for capacity entities before
// its first reallocation.
func NewEntityRegistry[M, F Bits](capacity int) *EntityRegistry[M, F] {
	if capacity < 1 {
		capacity = 1
	}
	return &EntityRegistry[M, F]{
		mask:      make([]M, 0, capacity),
		flags:     make([]F, 0, capacity),
		maskWidth: widthOf[M](),
		flagWidth: widthOf[F](),
	}
}

// Allocate returns a live entity id, preferring the most recently released one.
// The second result reports whether the backing capacity doubled to make room.
// The returned entity has an empty mask and only the alive flag set.
func (r *EntityRegistry[M, F]) Allocate() (Entity, bool) {
	r.alive++

	if n := len(r.free); n > 0 {
		e := r.free[n-1]
		r.free = r.free[:n-1]
		r.mask[e] = 0
		r.flags[e] = aliveBit
		return e, false
	}

	grew := false
	if len(r.mask) == cap(r.mask) {
		r.reserve(2 * cap(r.mask))
		grew = true
	}

	e := Entity(len(r.mask))
	r.mask = append(r.mask, 0)
	r.flags = append(r.flags, aliveBit)
	return e, grew
}

func (r *EntityRegistry[M, F]) reserve(capacity int) {
	mask := make([]M, len(r.mask), capacity)
	copy(mask, r.mask)
	r.mask = mask

	flags := make([]F, len(r.flags), capacity)
	copy(flags, r.flags)
	r.flags = flags
}

// Release marks e dead, clears its mask and returns it to the pool. Releasing
// an entity that is not alive is a no-op and returns false.
func (r *EntityRegistry[M, F]) Release(e Entity) bool {
	if !r.IsAlive(e) {
		return false
	}
	r.release(e)
	return true
}

// ReleaseUnchecked is Release without the liveness check. Releasing a dead
// entity this way puts its id in the pool twice.
func (r *EntityRegistry[M, F]) ReleaseUnchecked(e Entity) {
	r.release(e)
}

func (r *EntityRegistry[M, F]) release(e Entity) {
	r.flags[e] &^= aliveBit
	r.mask[e] = 0
	r.free = append(r.free, e)
	r.alive--
}

func (r *EntityRegistry[M, F]) inRange(e Entity) bool {
	return e >= 0 && int(e) < len(r.mask)
}

// IsAlive reports whether e is allocated. Out-of-range ids are not alive.
func (r *EntityRegistry[M, F]) IsAlive(e Entity) bool {
	return r.inRange(e) && r.flags[e]&aliveBit != 0
}

// HasComponent tests bit id of e's mask. Out-of-range entities or ids report false.
func (r *EntityRegistry[M, F]) HasComponent(e Entity, id ComponentID) bool {
	if !r.inRange(e) || id < 0 || int(id) >= r.maskWidth {
		return false
	}
	return r.mask[e]&bitOf[M](int(id)) != 0
}

// Mask returns e's raw component mask.
func (r *EntityRegistry[M, F]) Mask(e Entity) M {
	return r.mask[e]
}

// Flags returns e's raw flag mask, including the alive bit.
func (r *EntityRegistry[M, F]) Flags(e Entity) F {
	return r.flags[e]
}

func (r *EntityRegistry[M, F]) setBit(e Entity, id ComponentID) {
	r.mask[e] |= bitOf[M](int(id))
}

func (r *EntityRegistry[M, F]) clearBit(e Entity, id ComponentID) {
	r.mask[e] &^= bitOf[M](int(id))
}

func (r *EntityRegistry[M, F]) checkUserFlag(f FlagID) {
	if f == AliveFlag {
		panic(ErrReservedFlag)
	}
	r.checkFlag(f)
}

func (r *EntityRegistry[M, F]) checkFlag(f FlagID) {
	if f < 0 || int(f) >= r.flagWidth {
		panic(fmt.Errorf("%w: flag %d, mask holds %d", ErrFlagOutOfRange, f, r.flagWidth))
	}
}

// SetFlag sets user flag f on e. Flag 0 is reserved and panics.
func (r *EntityRegistry[M, F]) SetFlag(e Entity, f FlagID) {
	r.checkUserFlag(f)
	r.flags[e] |= bitOf[F](int(f))
}

// ClearFlag clears user flag f on e. Flag 0 is reserved and panics.
func (r *EntityRegistry[M, F]) ClearFlag(e Entity, f FlagID) {
	r.checkUserFlag(f)
	r.flags[e] &^= bitOf[F](int(f))
}

// ReadFlag reports whether flag f is set on e. Reading AliveFlag is allowed.
func (r *EntityRegistry[M, F]) ReadFlag(e Entity, f FlagID) bool {
	if !r.inRange(e) || f < 0 || int(f) >= r.flagWidth {
		return false
	}
	return r.flags[e]&bitOf[F](int(f)) != 0
}

// QueryMask ORs the bits of ids into a single component mask.
func (r *EntityRegistry[M, F]) QueryMask(ids ...ComponentID) M {
	return maskOf[M](ids)
}

// FlagMask ORs the bits of flags into a single flag mask.
func (r *EntityRegistry[M, F]) FlagMask(flags ...FlagID) F {
	for _, f := range flags {
		r.checkFlag(f)
	}
	return maskOf[F](flags)
}

// Len is the high-water mark: one past the largest id ever allocated.
func (r *EntityRegistry[M, F]) Len() int {
	return len(r.mask)
}

// Cap is the number of entities that fit before the next reallocation.
func (r *EntityRegistry[M, F]) Cap() int {
	return cap(r.mask)
}

// Alive returns the number of live entities.
func (r *EntityRegistry[M, F]) Alive() int {
	return r.alive
}

// Free returns a copy of the pool of reusable ids; the last element is reused first.
func (r *EntityRegistry[M, F]) Free() []Entity {
	return slices.Clone(r.free)
}
