package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/crimsonsky/campaign"
	"github.com/milk9111/crimsonsky/common"
	"github.com/milk9111/crimsonsky/dialogue"
	"github.com/milk9111/crimsonsky/ecs/render"
	"github.com/milk9111/crimsonsky/event"
	"github.com/milk9111/crimsonsky/prefabs"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"
)

type Game struct {
	director *campaign.Director
	box      *dialogue.Box
	effects  *render.Effects
	renderer *render.RenderSystem
	face     ebtext.Face

	pauseUI    *ebitenui.UI
	victoryUI  *ebitenui.UI
	dialogueUI *DialogueUI

	watcher   *prefabs.Watcher
	clipboard bool

	health      event.HealthUpdate
	shownLead   float32
	shownComp   float32
	paused      bool
	victory     bool
	attackLatch bool
	debug       bool
}

type GameOptions struct {
	Debug   bool
	Watch   bool
	Palette prefabs.PaletteSpec
}

func NewGame(director *campaign.Director, opts GameOptions) *Game {
	face := ebtext.NewGoXFace(basicfont.Face7x13)
	effects := render.NewEffects(face, opts.Palette)

	g := &Game{
		director:   director,
		box:        dialogue.NewBox(),
		effects:    effects,
		renderer:   render.NewRenderSystem(effects),
		face:       face,
		dialogueUI: NewDialogueUI(),
		debug:      opts.Debug,
	}
	g.pauseUI = NewPauseUI(g)
	g.victoryUI = NewVictoryUI(g)

	render.BuildSprites(opts.Palette)
	director.Events().SubscribeAll(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.Printf("[game] watch prefabs: %v", err)
		} else {
			g.watcher = w
		}
	}

	if opts.Debug {
		if err := clipboard.Init(); err != nil {
			log.Printf("[game] clipboard unavailable: %v", err)
		} else {
			g.clipboard = true
		}
	}

	return g
}

// AttackMuted reports whether the attack key should be ignored this frame.
func (g *Game) AttackMuted() bool {
	return g.box.Active() || g.attackLatch
}

func (g *Game) OnEvent(ev event.Event) {
	g.effects.OnEvent(ev)

	switch ev.Type {
	case event.DialogueShown:
		if show, ok := ev.Data.(event.ShowDialogue); ok {
			g.box.Push(show.Request)
		}
	case event.HealthUpdated:
		if h, ok := ev.Data.(event.HealthUpdate); ok {
			if g.health.Max == 0 {
				g.shownLead, g.shownComp = float32(h.Lead), float32(h.Companion)
			}
			g.health = h
		}
	case event.SceneReadied:
		if ready, ok := ev.Data.(event.SceneReady); ok {
			log.Printf("[game] scene ready: %s", ready.Scene)
		}
	case event.GameWon:
		g.victory = true
	}
}

func (g *Game) Update() error {
	g.drainWatcher()

	if g.victory {
		g.victoryUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.restart()
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.debug && g.clipboard && inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}

	dt := time.Second / time.Duration(ebiten.TPS())

	if g.box.Active() {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.box.Press()
			g.attackLatch = true
		}
		g.box.Update(dt)
		g.dialogueUI.Sync(g.box)
		g.dialogueUI.UI.Update()
	}
	if g.attackLatch && !ebiten.IsKeyPressed(ebiten.KeySpace) {
		g.attackLatch = false
	}

	prevIndex, prevEngine := g.director.SceneIndex(), g.director.Engine()
	g.director.Update(dt)
	if g.director.Engine() != prevEngine || g.director.SceneIndex() != prevIndex {
		g.sceneChanged()
	}

	g.effects.Update(dt)
	step := float32(dt.Seconds()) * 60
	g.shownLead = common.Approach(g.shownLead, float32(g.health.Lead), step)
	g.shownComp = common.Approach(g.shownComp, float32(g.health.Companion), step)

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	if engine := g.director.Engine(); engine != nil {
		g.renderer.Draw(engine.World(), screen)
		g.effects.Draw(screen)
		render.DrawHUD(screen, g.face, engine.Spec().Title, event.HealthUpdate{
			Lead:      int(g.shownLead + 0.5),
			Companion: int(g.shownComp + 0.5),
			Max:       g.health.Max,
		})
	}

	if g.box.Active() {
		g.dialogueUI.UI.Draw(screen)
	}

	if banner, ok := g.director.Banner(); ok {
		render.DrawBanner(screen, g.face, banner)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.victory {
		g.victoryUI.Draw(screen)
	}

	if g.debug {
		state := ""
		if engine := g.director.Engine(); engine != nil {
			state = engine.State().Current()
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  state: %s", ebiten.ActualFPS(), state), 10, common.ScreenHeight-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.ScreenWidth, common.ScreenHeight
}

func (g *Game) restart() {
	if err := g.director.Restart(); err != nil {
		log.Printf("[game] restart: %v", err)
		return
	}
	g.victory = false
	g.sceneChanged()
}

// sceneChanged clears presentation state tied to the previous scene.
func (g *Game) sceneChanged() {
	g.box.Clear()
	g.effects.Reset()
	g.shownLead = float32(g.health.Max)
	g.shownComp = float32(g.health.Max)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("[game] %s changed", name)
			if err := g.director.Reload(); err != nil {
				log.Printf("[game] reload: %v", err)
				continue
			}
			g.sceneChanged()
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("[game] watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) copySnapshot() {
	engine := g.director.Engine()
	if engine == nil {
		return
	}
	data, err := yaml.Marshal(engine.Snapshot())
	if err != nil {
		log.Printf("[game] snapshot: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("[game] copied %s snapshot to clipboard", engine.Name())
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}
