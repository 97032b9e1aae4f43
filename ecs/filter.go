package ecs

import (
	"fmt"
	"slices"
)

// Filter describes a query as the component kinds an entity must own (all)
// and the kinds it must not own (none).
type Filter struct {
	all  []ComponentID
	none []ComponentID
}

// All matches entities owning every kind in ids.
func All(ids ...ComponentID) Filter {
	return Filter{all: ids}
}

// None matches entities owning none of the kinds in ids.
func None(ids ...ComponentID) Filter {
	return Filter{none: ids}
}

// With adds required kinds to f.
func (f Filter) With(ids ...ComponentID) Filter {
	f.all = append(slices.Clip(f.all), ids...)
	return f
}

// Without adds excluded kinds to f.
func (f Filter) Without(ids ...ComponentID) Filter {
	f.none = append(slices.Clip(f.none), ids...)
	return f
}

// Required returns the required kinds.
func (f Filter) Required() []ComponentID {
	return slices.Clone(f.all)
}

// Excluded returns the excluded kinds.
func (f Filter) Excluded() []ComponentID {
	return slices.Clone(f.none)
}

func (f Filter) String() string {
	return fmt.Sprintf("all=%v none=%v", f.all, f.none)
}

// matcher is a Filter compiled against a mask type.
type matcher[M Bits] struct {
	required M
	excluded M
}

func (m matcher[M]) matches(mask M) bool {
	return mask&m.required == m.required && mask&^m.excluded == mask
}
