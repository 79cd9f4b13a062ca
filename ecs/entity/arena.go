package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/prefabs"
)

const (
	layerGround = iota
	layerPath
	layerProps
	layerEmbers
)

// Random is the source used to scatter ember particles.
type Random interface {
	Float64() float64
}

// NewArena creates the singleton holding the scene bounds.
func NewArena(w *ecs.World, spec *prefabs.SceneSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{
		Width:            spec.Arena.Width,
		Height:           spec.Arena.Height,
		Margin:           spec.Arena.Margin,
		ProjectileMargin: spec.Arena.ProjectileMargin,
	}); err != nil {
		return 0, fmt.Errorf("arena: add bounds: %w", err)
	}
	return entity, nil
}

// NewBackground lays out the ground grid, the path rows across the
// vertical centre, the scene props and any ember particles. It returns the
// number of entities created.
func NewBackground(w *ecs.World, spec *prefabs.SceneSpec, rng Random) (int, error) {
	bg := spec.Background
	created := 0

	add := func(pos cp.Vector, deco component.Decoration) error {
		entity := ecs.CreateEntity(w)
		if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Pos: pos, Scale: deco.Scale}); err != nil {
			return fmt.Errorf("background: add transform: %w", err)
		}
		if err := ecs.Add(w, entity, component.DecorationComponent.Kind(), &deco); err != nil {
			return fmt.Errorf("background: add decoration: %w", err)
		}
		created++
		return nil
	}

	if bg.Tile > 0 && bg.Ground != "" {
		cols := int(math.Ceil(spec.Arena.Width / bg.Tile))
		rows := int(math.Ceil(spec.Arena.Height / bg.Tile))
		half := bg.Tile / 2
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				pos := cp.Vector{X: float64(x)*bg.Tile + half, Y: float64(y)*bg.Tile + half}
				if err := add(pos, component.Decoration{Sprite: bg.Ground, Scale: 1, Layer: layerGround}); err != nil {
					return created, err
				}
			}
		}

		if bg.Path != "" {
			centre := spec.Arena.Height / 2
			for row := 0; row < bg.PathRows; row++ {
				for x := 0; x < cols; x++ {
					pos := cp.Vector{X: float64(x)*bg.Tile + half, Y: centre + float64(row)*bg.Tile}
					if err := add(pos, component.Decoration{Sprite: bg.Path, Scale: 1, Layer: layerPath}); err != nil {
						return created, err
					}
				}
			}
		}
	}

	for _, d := range spec.Decorations {
		layer := d.Layer
		if layer == 0 {
			layer = layerProps
		}
		for _, p := range d.Positions {
			if err := add(cp.Vector{X: p.X, Y: p.Y}, component.Decoration{Sprite: d.Sprite, Scale: d.Scale, Layer: layer}); err != nil {
				return created, err
			}
		}
	}

	if bg.Embers > 0 && rng != nil {
		for i := 0; i < bg.Embers; i++ {
			pos := cp.Vector{X: rng.Float64() * spec.Arena.Width, Y: rng.Float64() * spec.Arena.Height}
			if err := add(pos, component.Decoration{Sprite: "ember", Scale: 1, Layer: layerEmbers}); err != nil {
				return created, err
			}
		}
	}

	return created, nil
}
