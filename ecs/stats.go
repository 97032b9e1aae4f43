package ecs

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
)

// Stats is a point-in-time summary of a World.
type Stats struct {
	Entities       int
	Alive          int
	Free           int
	Capacity       int
	ComponentCount int

	Components   []ComponentStats
	Flags        []FlagStats
	Combinations []CombinationStats
	Singletons   []string

	// MaskDigest hashes every entity's mask and flags, live or dead. Two worlds
	// driven through the same operations have the same digest.
	MaskDigest uint64
}

// ComponentStats counts the live entities owning one component kind.
type ComponentStats struct {
	ID          ComponentID
	Name        string
	EntityCount int
}

// FlagStats counts the live entities carrying one user flag.
type FlagStats struct {
	ID          FlagID
	Name        string
	EntityCount int
}

// CombinationStats counts the live entities sharing one exact component mask.
type CombinationStats struct {
	Mask        uint64
	Components  []string
	EntityCount int
}

// CollectStats walks every entity once and summarises the World.
func (w *World[C, M, F]) CollectStats() Stats {
	r := w.entities
	stats := Stats{
		Entities:       r.Len(),
		Alive:          r.Alive(),
		Free:           len(r.free),
		Capacity:       r.Cap(),
		ComponentCount: w.count,
		Components:     make([]ComponentStats, w.count),
		Singletons:     w.Singletons(),
	}
	for id := range w.count {
		stats.Components[id] = ComponentStats{ID: ComponentID(id), Name: w.ComponentName(ComponentID(id))}
	}

	flagCounts := make([]int, r.flagWidth)
	combos := intmap.New[uint64, int](64)
	digest := xxhash.New()
	var buf [16]byte

	for i, mask := range r.mask {
		flags := r.flags[i]
		binary.LittleEndian.PutUint64(buf[:8], uint64(mask))
		binary.LittleEndian.PutUint64(buf[8:], uint64(flags))
		_, _ = digest.Write(buf[:])

		if flags&aliveBit == 0 {
			continue
		}
		forEachBit(mask, func(id int) {
			stats.Components[id].EntityCount++
		})
		forEachBit(flags, func(f int) {
			flagCounts[f]++
		})
		n, _ := combos.Get(uint64(mask))
		combos.Put(uint64(mask), n+1)
	}
	stats.MaskDigest = digest.Sum64()

	for f := 1; f < len(flagCounts); f++ {
		if flagCounts[f] == 0 && f > len(w.flagNames) {
			continue
		}
		stats.Flags = append(stats.Flags, FlagStats{
			ID:          FlagID(f),
			Name:        w.FlagName(FlagID(f)),
			EntityCount: flagCounts[f],
		})
	}

	stats.Combinations = make([]CombinationStats, 0, combos.Len())
	for mask, n := range combos.All() {
		stats.Combinations = append(stats.Combinations, CombinationStats{
			Mask:        mask,
			Components:  w.namesOf(mask),
			EntityCount: n,
		})
	}
	slices.SortFunc(stats.Combinations, func(a, b CombinationStats) int {
		if c := cmp.Compare(b.EntityCount, a.EntityCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Mask, b.Mask)
	})

	return stats
}

func (w *World[C, M, F]) namesOf(mask uint64) []string {
	names := make([]string, 0, 4)
	forEachBit(mask, func(id int) {
		names = append(names, w.ComponentName(ComponentID(id)))
	})
	return names
}
