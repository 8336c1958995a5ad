package ecs_test

import "github.com/plus3/skirmish/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Frozen struct{}

type Tag string

type Score int32

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Frozen](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Score](registry)
	return registry
}
