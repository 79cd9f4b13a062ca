// Package render draws a scene world with ebiten. Sprites are generated from
// the palette at start-up, so the game ships without image assets.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/crimsonsky/prefabs"
	"golang.org/x/image/colornames"
)

type spriteShape int

const (
	shapeFigure spriteShape = iota
	shapeTile
	shapeTree
	shapeRock
	shapeOrb
)

type spriteDef struct {
	w, h  int
	shape spriteShape
}

var spriteDefs = map[string]spriteDef{
	"soad":             {16, 16, shapeFigure},
	"gurbaaz":          {16, 16, shapeFigure},
	"goblin":           {12, 12, shapeFigure},
	"goblin_chief":     {16, 16, shapeFigure},
	"fire_drake":       {14, 12, shapeFigure},
	"flame_drake_boss": {24, 20, shapeFigure},
	"grass":            {32, 32, shapeTile},
	"path":             {32, 32, shapeTile},
	"volcanic_ground":  {32, 32, shapeTile},
	"ash_path":         {32, 32, shapeTile},
	"tree":             {24, 32, shapeTree},
	"rock":             {16, 12, shapeRock},
	"fireball":         {10, 10, shapeOrb},
	"ember":            {4, 4, shapeOrb},
}

// BuildSprites generates and registers an image for every known sprite.
func BuildSprites(palette prefabs.PaletteSpec) {
	for name, def := range spriteDefs {
		RegisterImage(name, buildSprite(def, paletteColor(palette, name)))
	}
}

// paletteColor returns the palette entry for name, magenta when missing.
func paletteColor(palette prefabs.PaletteSpec, name string) color.Color {
	if c, ok := palette[name]; ok && c.Color != nil {
		return c.Color
	}
	return colornames.Magenta
}

func buildSprite(def spriteDef, body color.Color) *ebiten.Image {
	img := ebiten.NewImage(def.w, def.h)
	w, h := float32(def.w), float32(def.h)

	switch def.shape {
	case shapeFigure:
		vector.FillRect(img, w*0.2, h*0.35, w*0.6, h*0.65, body, false)
		vector.FillRect(img, w*0.25, 0, w*0.5, h*0.4, colornames.Bisque, false)
		vector.FillRect(img, w*0.55, h*0.12, w*0.1, h*0.1, colornames.Black, false)
	case shapeTile:
		img.Fill(body)
		vector.StrokeRect(img, 0, 0, w, h, 1, color.NRGBA{A: 40}, false)
	case shapeTree:
		vector.FillRect(img, w*0.4, h*0.6, w*0.2, h*0.4, colornames.Saddlebrown, false)
		vector.FillCircle(img, w/2, h*0.4, w*0.45, body, true)
	case shapeRock:
		vector.FillRect(img, 0, h*0.25, w, h*0.75, body, false)
		vector.FillRect(img, w*0.2, 0, w*0.6, h*0.3, body, false)
	case shapeOrb:
		vector.FillCircle(img, w/2, h/2, w/2, body, true)
	}

	return img
}
