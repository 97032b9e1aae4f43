package ecs_test

import "github.com/plus3/bitecs/ecs"

// Component ids for the test component set.
const (
	PositionID ecs.ComponentID = iota
	NameID
	VelocityID
	HealthID
	componentCount
)

// User flags. Flag 0 belongs to the registry.
const (
	BallFlag   ecs.FlagID = 1
	PaddleFlag ecs.FlagID = 2
)

// Component is the closed set of test components.
type Component interface {
	ecs.Component
	isComponent()
}

type Position struct {
	X, Y int32
}

type Name struct {
	Value string
}

type Velocity struct {
	DX, DY int32
}

type Health struct {
	Current int
	Max     int
}

func (Position) ComponentID() ecs.ComponentID { return PositionID }
func (Name) ComponentID() ecs.ComponentID     { return NameID }
func (Velocity) ComponentID() ecs.ComponentID { return VelocityID }
func (Health) ComponentID() ecs.ComponentID   { return HealthID }

func (Position) isComponent() {}
func (Name) isComponent()     {}
func (Velocity) isComponent() {}
func (Health) isComponent()   {}

type World = ecs.World[Component, uint8, uint8]

func newTestWorld(opts ...ecs.Option) *World {
	return ecs.NewWorld[Component, uint8, uint8](int(componentCount), opts...)
}

// newScenarioWorld builds the two-entity world used throughout the tests:
// e1 has a Position, e2 has a Position and a Name.
func newScenarioWorld() (w *World, e1, e2 ecs.Entity) {
	w = newTestWorld()
	e1 = w.CreateEntity()
	e2 = w.CreateEntity()

	w.SetComponent(e2, Position{X: 0, Y: 0})
	w.SetComponent(e1, Position{X: 10, Y: 5})
	w.SetComponent(e2, Name{Value: "Hello world"})
	return w, e1, e2
}
