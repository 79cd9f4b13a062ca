package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/crimsonsky/event"
	"golang.org/x/image/colornames"
)

const (
	hudMargin = 12
	barWidth  = 160
	barHeight = 10
)

// DrawHUD draws the scene title and both health bars.
func DrawHUD(screen *ebiten.Image, face ebtext.Face, title string, health event.HealthUpdate) {
	drawHealthBar(screen, face, hudMargin, hudMargin, "Soad", health.Lead, health.Max, colornames.Orange)
	drawHealthBar(screen, face, hudMargin, hudMargin+barHeight+22, "Gurbaaz", health.Companion, health.Max, colornames.Royalblue)

	if face == nil || title == "" {
		return
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())-float64(len(title))*7-hudMargin, hudMargin)
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, title, face, op)
}

func drawHealthBar(screen *ebiten.Image, face ebtext.Face, x, y float32, name string, current, maxHealth int, fill color.Color) {
	ratio := float32(0)
	if maxHealth > 0 {
		ratio = float32(current) / float32(maxHealth)
	}
	if ratio < 0 {
		ratio = 0
	}

	if face != nil {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleWithColor(colornames.White)
		ebtext.Draw(screen, fmt.Sprintf("%s %d/%d", name, current, maxHealth), face, op)
	}

	top := y + 14
	vector.FillRect(screen, x, top, barWidth, barHeight, color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xcc}, false)
	vector.FillRect(screen, x, top, barWidth*ratio, barHeight, fill, false)
	vector.StrokeRect(screen, x, top, barWidth, barHeight, 1, colornames.Black, false)
}

// DrawBanner draws centred text over a dimmed screen.
func DrawBanner(screen *ebiten.Image, face ebtext.Face, text string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.FillRect(screen, 0, 0, float32(w), float32(h), color.NRGBA{A: 0xb0}, false)
	if face == nil {
		return
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(w)/2-float64(len(text))*7/2, float64(h)/2)
	op.ColorScale.ScaleWithColor(colornames.Gold)
	ebtext.Draw(screen, text, face, op)
}
