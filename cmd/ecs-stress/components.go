package main

import (
	"fmt"

	"github.com/plus3/bitecs/ecs"
)

// componentCount fills a uint64 mask.
const componentCount = 64

// HotFlag marks entities whose accumulated value passed hotThreshold.
const HotFlag ecs.FlagID = 1

const hotThreshold = 1000

// Datum is the single component shape of the stress world: a counter tagged
// with the kind it is stored under.
type Datum struct {
	Kind  ecs.ComponentID
	Value int64
}

func (d Datum) ComponentID() ecs.ComponentID {
	return d.Kind
}

type (
	World     = ecs.World[Datum, uint64, uint8]
	Scheduler = ecs.Scheduler[Datum, uint64, uint8]
	Frame     = ecs.UpdateFrame[Datum, uint64, uint8]
)

func componentNames() []string {
	names := make([]string, componentCount)
	for i := range names {
		names[i] = fmt.Sprintf("Datum%02d", i)
	}
	return names
}
