package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type executor interface {
	Execute()
	invalidateCache()
}

// Scheduler drives a World one frame at a time: it refreshes tracked queries,
// runs systems in registration order and flushes the frame's commands.
type Scheduler[C Component, M, F Bits] struct {
	world       *World[C, M, F]
	systems     []System[C, M, F]
	systemStats []*systemStatsInternal
	queries     []executor
	commands    *Commands[C]
	tick        int64
	logger      *zap.Logger
}

// NewScheduler creates a scheduler for the given world.
func NewScheduler[C Component, M, F Bits](world *World[C, M, F]) *Scheduler[C, M, F] {
	return &Scheduler[C, M, F]{
		world:    world,
		systems:  make([]System[C, M, F], 0),
		commands: NewCommands[C](),
		logger:   world.logger,
	}
}

// World returns the world the scheduler drives.
func (s *Scheduler[C, M, F]) World() *World[C, M, F] {
	return s.world
}

// Query creates a Query that the scheduler executes before every frame.
func (s *Scheduler[C, M, F]) Query(f Filter) *Query[C, M, F] {
	q := NewQuery(s.world, f)
	s.queries = append(s.queries, q)
	return q
}

// Register adds a system to the end of the run order.
func (s *Scheduler[C, M, F]) Register(system System[C, M, F]) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	systemName := systemType.Name()
	if systemName == "" {
		systemName = fmt.Sprintf("system %d", len(s.systems)-1)
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName,
		minDuration: time.Duration(1<<63 - 1),
	})
	s.logger.Debug("system registered", zap.String("system", systemName))
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler[C, M, F]) Once(dt float64) {
	for _, q := range s.queries {
		q.Execute()
	}

	frame := &UpdateFrame[C, M, F]{
		DeltaTime: dt,
		Tick:      s.tick,
		Commands:  s.commands,
		World:     s.world,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush(s.world)
	for _, q := range s.queries {
		q.invalidateCache()
	}
	s.tick++
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler[C, M, F]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler[C, M, F]) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
