package ecs

import (
	"reflect"
	"sort"
)

// singletonTable holds one value per Go type, outside the entity table.
type singletonTable struct {
	entries map[reflect.Type]any // *T keyed by T
}

func (t *singletonTable) lookup(typ reflect.Type) (any, bool) {
	if t.entries == nil {
		return nil, false
	}
	ptr, ok := t.entries[typ]
	return ptr, ok
}

func (t *singletonTable) store(typ reflect.Type, ptr any) {
	if t.entries == nil {
		t.entries = make(map[reflect.Type]any)
	}
	t.entries[typ] = ptr
}

func (t *singletonTable) names() []string {
	names := make([]string, 0, len(t.entries))
	for typ := range t.entries {
		names = append(names, typ.String())
	}
	sort.Strings(names)
	return names
}

type singletonHolder interface {
	singletons() *singletonTable
}

func (w *World[C, M, F]) singletons() *singletonTable {
	return &w.resources
}

// Singleton provides access to a single value that is not associated with any
// entity. Use this for global game state, configuration, or other singleton
// data. There is at most one value per type T in a World.
type Singleton[T any] struct {
	ptr *T
}

// NewSingleton returns the World's singleton of type T. If it does not exist
// yet it is created with the initializer value, or the zero value when no
// initializer is given. An initializer is ignored for an existing singleton.
func NewSingleton[T any](w singletonHolder, initializer ...T) *Singleton[T] {
	table := w.singletons()
	typ := reflect.TypeFor[T]()

	if ptr, ok := table.lookup(typ); ok {
		return &Singleton[T]{ptr: ptr.(*T)}
	}

	value := new(T)
	if len(initializer) > 0 {
		*value = initializer[0]
	}
	table.store(typ, value)
	return &Singleton[T]{ptr: value}
}

// Get returns a pointer to the singleton value. The pointer is stable for the
// lifetime of the World.
func (s *Singleton[T]) Get() *T {
	return s.ptr
}

// Set replaces the singleton value.
func (s *Singleton[T]) Set(v T) {
	*s.ptr = v
}

// Singletons returns the type names of the World's singletons, sorted.
func (w *World[C, M, F]) Singletons() []string {
	return w.resources.names()
}
