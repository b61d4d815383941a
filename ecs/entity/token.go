package entity

import (
	"fmt"

	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/scene"
)

func NewToken(world *ecs.World, spec scene.TokenSpec) (ecs.Entity, error) {
	w, h := spec.Size()

	entity := world.CreateEntity()
	if err := ecs.Add(world, entity, component.TransformComponent, component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, fmt.Errorf("token %s: failed to add transform component: %w", spec.Name, err)
	}
	if err := ecs.Add(world, entity, component.TokenComponent, component.Token{Name: spec.Name, Width: w, Height: h}); err != nil {
		return 0, fmt.Errorf("token %s: failed to add token component: %w", spec.Name, err)
	}
	return entity, nil
}

func TokenSpec(tok component.Token, tr component.Transform) scene.TokenSpec {
	return scene.TokenSpec{Name: tok.Name, X: tr.X, Y: tr.Y, Width: tok.Width, Height: tok.Height}
}
