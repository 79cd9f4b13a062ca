package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/crimsonsky/campaign"
	"github.com/milk9111/crimsonsky/common"
	"github.com/milk9111/crimsonsky/dialogue"
	"github.com/milk9111/crimsonsky/event"
	"github.com/milk9111/crimsonsky/prefabs"
	"github.com/milk9111/crimsonsky/scene"
)

const frameTime = 16 * time.Millisecond

// Rows reserved above and below the arena.
const (
	hudRows    = 1
	footerRows = 3
)

var glyphs = map[string]rune{
	"soad":             '@',
	"gurbaaz":          'G',
	"goblin":           'g',
	"goblin_chief":     'C',
	"fire_drake":       'd',
	"flame_drake_boss": 'D',
	"fireball":         'o',
	"tree":             '♣',
	"rock":             '▲',
}

type Game struct {
	screen        tcell.Screen
	width, height int

	director *campaign.Director
	keys     *termKeys
	box      *dialogue.Box
	cues     *cues
	palette  prefabs.PaletteSpec

	health  event.HealthUpdate
	paused  bool
	victory bool
}

func NewGame(director *campaign.Director, keys *termKeys, palette prefabs.PaletteSpec) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	g := &Game{
		screen:   screen,
		director: director,
		keys:     keys,
		box:      dialogue.NewBox(),
		cues:     newCues(),
		palette:  palette,
	}
	g.width, g.height = screen.Size()
	keys.muted = g.box.Active

	director.Events().SubscribeAll(g)
	director.Events().SubscribeAll(g.cues)
	return g, nil
}

func (g *Game) OnEvent(ev event.Event) {
	switch ev.Type {
	case event.DialogueShown:
		if show, ok := ev.Data.(event.ShowDialogue); ok {
			g.box.Push(show.Request)
		}
	case event.HealthUpdated:
		if h, ok := ev.Data.(event.HealthUpdate); ok {
			g.health = h
		}
	case event.GameWon:
		g.victory = true
	}
}

func (g *Game) run() {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.update()
			g.draw()
		}
	}
}

// handleInput returns false when the player quits.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyEnter {
			g.box.Press()
			return true
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'p':
				g.paused = !g.paused
				return true
			case 'r':
				if g.victory {
					g.restart()
				}
				return true
			}
		}
		g.keys.Press(ev)
	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *Game) update() {
	if g.paused || g.victory {
		return
	}
	g.keys.Tick()
	g.box.Update(frameTime)

	prev := g.director.Engine()
	g.director.Update(frameTime)
	if g.director.Engine() != prev {
		g.box.Clear()
	}
}

func (g *Game) restart() {
	if err := g.director.Restart(); err != nil {
		log.Printf("[tty] restart: %v", err)
		return
	}
	g.victory = false
	g.box.Clear()
}

func (g *Game) draw() {
	g.screen.Clear()

	engine := g.director.Engine()
	if engine != nil {
		g.drawArena(engine)
		g.drawHUD(engine.Spec().Title)
	}
	g.drawFooter()

	g.screen.Show()
}

func (g *Game) drawArena(engine *scene.Engine) {
	spec := engine.Spec()
	ground := g.style(spec.Background.Ground)
	path := g.style(spec.Background.Path)

	rows := g.arenaRows()
	midRow := hudRows + rows/2
	for y := hudRows; y < hudRows+rows; y++ {
		ch, st := '.', ground
		if y >= midRow && y < midRow+spec.Background.PathRows {
			ch, st = '=', path
		}
		for x := 0; x < g.width; x++ {
			g.screen.SetContent(x, y, ch, nil, st)
		}
	}

	for _, d := range spec.Decorations {
		for _, p := range d.Positions {
			g.plot(p.X, p.Y, d.Sprite)
		}
	}

	snap := engine.Snapshot()
	for _, p := range snap.Projectiles {
		g.plot(p.X, p.Y, p.Sprite)
	}
	for _, en := range snap.Enemies {
		if en.Dying {
			g.plotRune(en.X, en.Y, '*', g.style("spark"))
			continue
		}
		g.plot(en.X, en.Y, en.Sprite)
	}
	g.plot(snap.Companion.X, snap.Companion.Y, snap.Companion.Sprite)
	g.plot(snap.Lead.X, snap.Lead.Y, snap.Lead.Sprite)
}

func (g *Game) drawHUD(title string) {
	st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	line := fmt.Sprintf(" %s   Soad %s %3d   Gurbaaz %s %3d",
		title,
		bar(g.health.Lead, g.health.Max, 10), g.health.Lead,
		bar(g.health.Companion, g.health.Max, 10), g.health.Companion)
	g.text(0, 0, line, st)
}

func (g *Game) drawFooter() {
	top := g.height - footerRows
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	switch banner, ok := g.director.Banner(); {
	case g.victory:
		g.text(1, top, "VICTORY! The sky is clear.  r: play again  q: quit", tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	case ok:
		g.text(1, top, banner, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		if err := g.director.Err(); err != nil {
			g.text(1, top+1, err.Error(), dim)
		}
	case g.box.Active():
		speaker, text := g.box.Text()
		g.text(1, top, string(speaker)+":", tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
		g.text(1, top+1, text, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}

	hint := "arrows/wasd: move  space: attack  enter: next line  p: pause  q: quit"
	if g.paused {
		hint = "PAUSED  p: resume"
	}
	g.text(1, g.height-1, hint, dim)
}

func (g *Game) arenaRows() int {
	rows := g.height - hudRows - footerRows
	if rows < 1 {
		return 1
	}
	return rows
}

// cell maps arena coordinates to a terminal cell.
func (g *Game) cell(x, y float64) (int, int) {
	cx := int(x / common.ScreenWidth * float64(g.width))
	cy := hudRows + int(y/common.ScreenHeight*float64(g.arenaRows()))
	return cx, cy
}

func (g *Game) plot(x, y float64, sprite string) {
	r, ok := glyphs[sprite]
	if !ok {
		r = '?'
	}
	g.plotRune(x, y, r, g.style(sprite))
}

func (g *Game) plotRune(x, y float64, r rune, st tcell.Style) {
	cx, cy := g.cell(x, y)
	if cx < 0 || cx >= g.width || cy < hudRows || cy >= hudRows+g.arenaRows() {
		return
	}
	g.screen.SetContent(cx, cy, r, nil, st)
}

func (g *Game) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		if x >= g.width {
			return
		}
		g.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (g *Game) style(name string) tcell.Style {
	c, ok := g.palette[name]
	if !ok || c.Color == nil {
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B)))
}

func bar(current, maxHealth, width int) string {
	if maxHealth <= 0 {
		maxHealth = 1
	}
	filled := current * width / maxHealth
	out := make([]rune, width)
	for i := range out {
		if i < filled {
			out[i] = '█'
		} else {
			out[i] = '░'
		}
	}
	return string(out)
}

func (g *Game) cleanup() {
	g.cues.Close()
	g.screen.Fini()
}
