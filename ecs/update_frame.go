package ecs

// UpdateFrame is handed to every System during one Scheduler tick. Structural
// changes made while iterating go through Commands, which the Scheduler
// flushes after the last system.
type UpdateFrame[C Component, M, F Bits] struct {
	DeltaTime float64
	Tick      int64
	Commands  *Commands[C]
	World     *World[C, M, F]
}
