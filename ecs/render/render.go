package render

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
)

const (
	actorLayer      = 10
	projectileLayer = 15

	emberSprite = "ember"
	emberRise   = 100.0
	emberPeriod = 3.0
)

type drawable struct {
	entity ecs.Entity
	layer  int
	sprite string
	t      *component.Transform
	alpha  float32
}

// RenderSystem draws decorations, actors and projectiles sorted by layer.
type RenderSystem struct {
	effects *Effects
}

func NewRenderSystem(effects *Effects) *RenderSystem {
	return &RenderSystem{effects: effects}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var items []drawable

	elapsed := w.Elapsed().Seconds()
	ecs.ForEach2(w, component.DecorationComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.Decoration, t *component.Transform) {
		if d.Sprite == emberSprite {
			items = append(items, emberDrawable(e, d, t, elapsed))
			return
		}
		items = append(items, drawable{entity: e, layer: d.Layer, sprite: d.Sprite, t: t, alpha: 1})
	})

	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, a *component.Actor, t *component.Transform) {
		alpha := float32(1)
		if dying, ok := ecs.Get(w, e, component.DyingComponent.Kind()); ok && r.effects != nil {
			alpha = r.effects.fade(e, dying.Remaining)
		}
		items = append(items, drawable{entity: e, layer: actorLayer, sprite: a.Sprite, t: t, alpha: alpha})
	})

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		items = append(items, drawable{entity: e, layer: projectileLayer, sprite: p.Sprite, t: t, alpha: 1})
	})

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return uint64(items[i].entity) < uint64(items[j].entity)
	})

	offset := cp.Vector{}
	if r.effects != nil {
		offset = r.effects.ShakeOffset(screen.Bounds().Dx(), screen.Bounds().Dy())
	}

	for _, it := range items {
		img := GetImage(it.sprite)
		if img == nil {
			continue
		}
		r.drawSprite(screen, img, it, offset)
	}
}

func (r *RenderSystem) drawSprite(screen, img *ebiten.Image, it drawable, offset cp.Vector) {
	op := &ebiten.DrawImageOptions{}
	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	op.GeoM.Translate(-iw/2, -ih/2)

	scale := it.t.Scale
	if scale == 0 {
		scale = 1
	}
	sx := scale
	if it.t.FacingLeft {
		sx = -sx
	}
	op.GeoM.Scale(sx, scale)
	op.GeoM.Translate(it.t.Pos.X+offset.X, it.t.Pos.Y+offset.Y)

	if r.effects != nil {
		if tint, ok := r.effects.tint(it.entity); ok {
			applyTint(&op.ColorScale, tint)
		}
	}
	op.ColorScale.ScaleAlpha(it.alpha)

	screen.DrawImage(img, op)
}

// emberDrawable floats an ember upward and fades it, looping every
// emberPeriod seconds with a per-entity phase.
func emberDrawable(e ecs.Entity, d *component.Decoration, t *component.Transform, elapsed float64) drawable {
	phase := float64(uint64(e)%17) / 17
	progress := math.Mod(elapsed/emberPeriod+phase, 1)
	moved := *t
	moved.Pos = t.Pos.Add(cp.Vector{Y: -emberRise * progress})
	return drawable{entity: e, layer: d.Layer, sprite: d.Sprite, t: &moved, alpha: float32(0.6 * (1 - progress))}
}
