package component

import "github.com/jakecoffman/cp"

// ArenaBounds stores the playfield of the current scene. Actors stay inside
// the rectangle shrunk by Margin; projectiles live until they leave the
// rectangle grown by ProjectileMargin.
type ArenaBounds struct {
	Width            float64
	Height           float64
	Margin           float64
	ProjectileMargin float64
}

// Inner returns the rectangle actors are clamped to.
func (b ArenaBounds) Inner() cp.BB {
	return cp.BB{L: b.Margin, B: b.Margin, R: b.Width - b.Margin, T: b.Height - b.Margin}
}

// Outer returns the rectangle projectiles may travel in.
func (b ArenaBounds) Outer() cp.BB {
	m := b.ProjectileMargin
	return cp.BB{L: -m, B: -m, R: b.Width + m, T: b.Height + m}
}

// Clamp keeps p inside Inner.
func (b ArenaBounds) Clamp(p cp.Vector) cp.Vector {
	in := b.Inner()
	return cp.Vector{X: cp.Clamp(p.X, in.L, in.R), Y: cp.Clamp(p.Y, in.B, in.T)}
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
