package ecs

// System represents a behavior that runs once per frame against a World.
// Systems keep their own state between frames and usually hold one or more
// Queries created through Scheduler.Query.
type System[C Component, M, F Bits] interface {
	Execute(frame *UpdateFrame[C, M, F])
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc[C Component, M, F Bits] func(frame *UpdateFrame[C, M, F])

// Execute calls f(frame).
func (f SystemFunc[C, M, F]) Execute(frame *UpdateFrame[C, M, F]) {
	f(frame)
}
