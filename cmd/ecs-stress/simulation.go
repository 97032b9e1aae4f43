package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/bitecs/ecs"
	"go.uber.org/zap"
)

// Simulation is one World with its generated systems. Simulations share
// nothing, so several can run on separate goroutines.
type Simulation struct {
	world     *World
	scheduler *Scheduler
	rng       *rand.Rand
	churn     int
	logger    *zap.Logger
}

// accumulateSystem adds the value of one kind into another for every entity
// owning both and none of a third.
type accumulateSystem struct {
	filter   ecs.Filter
	from, to ecs.ComponentID
}

func (s *accumulateSystem) Execute(frame *Frame) {
	frame.World.EachMut(s.filter, func(_ ecs.Entity, row ecs.RowMut[Datum, uint64, uint8]) {
		from := row.Unchecked(s.from)
		to := row.Unchecked(s.to)
		row.Set(Datum{Kind: s.to, Value: to.Value + from.Value + 1})
	})
}

// churnSystem deletes random live entities and queues a fresh entity for each.
type churnSystem struct {
	sim *Simulation
}

func (s *churnSystem) Execute(frame *Frame) {
	w := frame.World
	if w.Len() == 0 {
		return
	}
	for range s.sim.churn {
		e := ecs.Entity(s.sim.rng.IntN(w.Len()))
		if w.IsAlive(e) {
			frame.Commands.Delete(e)
		}
		frame.Commands.Spawn(s.sim.randomComponents()...)
	}
}

// hotSystem flags entities whose first component has grown past hotThreshold.
type hotSystem struct{}

func (hotSystem) Execute(frame *Frame) {
	w := frame.World
	w.EachComponent(ecs.All(0), 0, func(e ecs.Entity, d Datum) {
		if d.Value > hotThreshold {
			frame.Commands.SetFlag(e, HotFlag)
		}
	})
}

func NewSimulation(cfg Config, seed uint64, logger *zap.Logger) *Simulation {
	opts := []ecs.Option{
		ecs.WithLogger(logger),
		ecs.WithComponentNames(componentNames()...),
		ecs.WithFlagNames("hot"),
	}
	if cfg.Capacity > 0 {
		opts = append(opts, ecs.WithCapacity(cfg.Capacity))
	}

	world := ecs.NewWorld[Datum, uint64, uint8](componentCount, opts...)
	sim := &Simulation{
		world:     world,
		scheduler: ecs.NewScheduler(world),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		churn:     cfg.Churn,
		logger:    logger,
	}

	for range cfg.Systems {
		sim.scheduler.Register(sim.randomSystem())
	}
	sim.scheduler.Register(&churnSystem{sim: sim})
	sim.scheduler.Register(hotSystem{})

	for range cfg.Entities {
		world.CreateEntityWith(sim.randomComponents()...)
	}
	return sim
}

func (s *Simulation) randomSystem() *accumulateSystem {
	from := ecs.ComponentID(s.rng.IntN(componentCount))
	to := ecs.ComponentID(s.rng.IntN(componentCount))
	for to == from {
		to = ecs.ComponentID(s.rng.IntN(componentCount))
	}
	not := ecs.ComponentID(s.rng.IntN(componentCount))
	for not == from || not == to {
		not = ecs.ComponentID(s.rng.IntN(componentCount))
	}
	return &accumulateSystem{
		filter: ecs.All(from, to).Without(not),
		from:   from,
		to:     to,
	}
}

// randomComponents returns 1 to 5 components of random kinds. Kind 0 is
// included half the time so hotSystem has work.
func (s *Simulation) randomComponents() []Datum {
	n := s.rng.IntN(5) + 1
	cs := make([]Datum, 0, n+1)
	if s.rng.IntN(2) == 0 {
		cs = append(cs, Datum{Kind: 0})
	}
	for range n {
		cs = append(cs, Datum{Kind: ecs.ComponentID(s.rng.IntN(componentCount))})
	}
	return cs
}

// RunFrames advances the simulation by n frames of a fixed step.
func (s *Simulation) RunFrames(n int) {
	for range n {
		s.scheduler.Once(1.0 / 60.0)
	}
}

// Run advances the simulation until ctx is done and records every frame time.
func (s *Simulation) Run(ctx context.Context) WorkerResult {
	result := WorkerResult{
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, 1024),
		},
	}

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			s.scheduler.Once(float64(deltaTime) / float64(time.Second))
			result.UpdateTime.Samples = append(result.UpdateTime.Samples, time.Since(updateStart))
			result.TotalUpdates++
		}
	}

	result.TotalTime = time.Since(startTime)
	result.UpdateTime.Finalize()
	result.World = s.world.CollectStats()
	result.Hot = len(s.world.QueryFlags(HotFlag))

	s.logger.Debug("simulation finished",
		zap.Int64("updates", result.TotalUpdates),
		zap.Int("alive", result.World.Alive),
		zap.Uint64("mask_digest", result.World.MaskDigest))
	return result
}
