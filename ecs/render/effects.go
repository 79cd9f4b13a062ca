package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/event"
	"github.com/milk9111/crimsonsky/prefabs"
)

const (
	flashTime  = 100 * time.Millisecond
	numberTime = 800 * time.Millisecond
	numberRise = 30.0
	sparkTime  = 400 * time.Millisecond
	sparkReach = 40.0
	slashTime  = 150 * time.Millisecond
)

type flash struct {
	tint color.NRGBA
	left time.Duration
}

type floatingNumber struct {
	text string
	pos  cp.Vector
	clr  color.NRGBA
	age  time.Duration
}

type sparkBurst struct {
	pos   cp.Vector
	count int
	age   time.Duration
}

type slashMark struct {
	pos        cp.Vector
	facingLeft bool
	age        time.Duration
}

// Effects turns combat events into short-lived visuals: hit flashes,
// floating damage numbers, spark bursts, slash marks and screen shake.
type Effects struct {
	face ebtext.Face

	flashes map[ecs.Entity]*flash
	windows map[ecs.Entity]float64
	numbers []*floatingNumber
	bursts  []*sparkBurst
	slashes []*slashMark

	shakeLeft      time.Duration
	shakeIntensity float64
	shakeAge       time.Duration

	sparkColor color.Color
	slashColor color.Color
}

func NewEffects(face ebtext.Face, palette prefabs.PaletteSpec) *Effects {
	return &Effects{
		face:       face,
		flashes:    map[ecs.Entity]*flash{},
		windows:    map[ecs.Entity]float64{},
		sparkColor: paletteColor(palette, "spark"),
		slashColor: paletteColor(palette, "slash"),
	}
}

// Reset drops every running effect, used when the scene changes.
func (fx *Effects) Reset() {
	fx.flashes = map[ecs.Entity]*flash{}
	fx.windows = map[ecs.Entity]float64{}
	fx.numbers = nil
	fx.bursts = nil
	fx.slashes = nil
	fx.shakeLeft = 0
}

func (fx *Effects) OnEvent(ev event.Event) {
	switch ev.Type {
	case event.ActorHit:
		hit, ok := ev.Data.(event.Hit)
		if !ok {
			return
		}
		if c, err := prefabs.ParseHexColor(hit.Tint); err == nil {
			fx.flashes[ecs.Entity(hit.Entity)] = &flash{tint: c, left: flashTime}
		}
		if hit.Player {
			return
		}
		clr := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		if c, err := prefabs.ParseHexColor(hit.NumberColor); err == nil {
			clr = c
		}
		fx.numbers = append(fx.numbers, &floatingNumber{
			text: fmt.Sprintf("-%d", hit.Amount),
			pos:  hit.Pos.Add(cp.Vector{Y: -20}),
			clr:  clr,
		})
	case event.EnemyDied:
		death, ok := ev.Data.(event.Death)
		if !ok {
			return
		}
		fx.windows[ecs.Entity(death.Entity)] = death.Window
		if death.Sparks > 0 {
			fx.bursts = append(fx.bursts, &sparkBurst{pos: death.Pos, count: death.Sparks})
		}
	case event.ProjectileImpact:
		impact, ok := ev.Data.(event.Impact)
		if ok && impact.Sparks > 0 {
			fx.bursts = append(fx.bursts, &sparkBurst{pos: impact.Pos, count: impact.Sparks})
		}
	case event.SlashSwung:
		slash, ok := ev.Data.(event.Slash)
		if ok {
			fx.slashes = append(fx.slashes, &slashMark{pos: slash.Pos, facingLeft: slash.FacingLeft})
		}
	case event.CameraShake:
		shake, ok := ev.Data.(event.Shake)
		if ok {
			fx.shakeLeft = time.Duration(shake.Seconds * float64(time.Second))
			fx.shakeIntensity = shake.Intensity
			fx.shakeAge = 0
		}
	}
}

// Update ages every effect by dt.
func (fx *Effects) Update(dt time.Duration) {
	for e, f := range fx.flashes {
		f.left -= dt
		if f.left <= 0 {
			delete(fx.flashes, e)
		}
	}

	numbers := fx.numbers[:0]
	for _, n := range fx.numbers {
		n.age += dt
		if n.age < numberTime {
			numbers = append(numbers, n)
		}
	}
	fx.numbers = numbers

	bursts := fx.bursts[:0]
	for _, b := range fx.bursts {
		b.age += dt
		if b.age < sparkTime {
			bursts = append(bursts, b)
		}
	}
	fx.bursts = bursts

	slashes := fx.slashes[:0]
	for _, s := range fx.slashes {
		s.age += dt
		if s.age < slashTime {
			slashes = append(slashes, s)
		}
	}
	fx.slashes = slashes

	if fx.shakeLeft > 0 {
		fx.shakeLeft -= dt
		fx.shakeAge += dt
	}
}

// ShakeOffset returns the camera offset for the running shake.
func (fx *Effects) ShakeOffset(width, height int) cp.Vector {
	if fx.shakeLeft <= 0 {
		return cp.Vector{}
	}
	t := fx.shakeAge.Seconds()
	return cp.Vector{
		X: math.Sin(t*90) * fx.shakeIntensity * float64(width),
		Y: math.Cos(t*70) * fx.shakeIntensity * float64(height),
	}
}

func (fx *Effects) tint(e ecs.Entity) (color.NRGBA, bool) {
	f, ok := fx.flashes[e]
	if !ok {
		return color.NRGBA{}, false
	}
	return f.tint, true
}

// fade returns the alpha of a dying enemy.
func (fx *Effects) fade(e ecs.Entity, remaining float64) float32 {
	window, ok := fx.windows[e]
	if !ok || window <= 0 {
		return 1
	}
	return float32(cp.Clamp(remaining/window, 0, 1))
}

// Draw renders the overlays on top of the world.
func (fx *Effects) Draw(screen *ebiten.Image) {
	for _, s := range fx.slashes {
		alpha := 1 - s.age.Seconds()/slashTime.Seconds()
		dir := float32(1)
		if s.facingLeft {
			dir = -1
		}
		x, y := float32(s.pos.X), float32(s.pos.Y)
		vector.StrokeLine(screen, x-4*dir, y-14, x+8*dir, y, 3, fadeColor(fx.slashColor, alpha), true)
		vector.StrokeLine(screen, x+8*dir, y, x-4*dir, y+14, 3, fadeColor(fx.slashColor, alpha), true)
	}

	for _, b := range fx.bursts {
		progress := b.age.Seconds() / sparkTime.Seconds()
		for i := 0; i < b.count; i++ {
			angle := 2 * math.Pi * float64(i) / float64(b.count)
			p := b.pos.Add(cp.ForAngle(angle).Mult(sparkReach * progress))
			vector.FillCircle(screen, float32(p.X), float32(p.Y), 3, fadeColor(fx.sparkColor, 1-progress), true)
		}
	}

	if fx.face == nil {
		return
	}
	for _, n := range fx.numbers {
		progress := n.age.Seconds() / numberTime.Seconds()
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(n.pos.X, n.pos.Y-numberRise*progress)
		op.ColorScale.ScaleWithColor(n.clr)
		op.ColorScale.ScaleAlpha(float32(1 - progress))
		ebtext.Draw(screen, n.text, fx.face, op)
	}
}

func fadeColor(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	k := cp.Clamp(alpha, 0, 1)
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}

// applyTint multiplies the sprite by tint. White flashes the sprite bright
// since multiplying by white would leave it unchanged.
func applyTint(cs *ebiten.ColorScale, tint color.NRGBA) {
	if tint.R == 0xff && tint.G == 0xff && tint.B == 0xff {
		cs.Scale(3, 3, 3, 1)
		return
	}
	cs.ScaleWithColor(tint)
}

