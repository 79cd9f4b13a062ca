package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/crimsonsky/campaign"
	"github.com/milk9111/crimsonsky/prefabs"
	"github.com/milk9111/crimsonsky/scene"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (F2 copies a scene snapshot)")
	watch := flag.Bool("watch", false, "reload scenes when files under prefabs/ change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", "", "start at this scene (name from prefabs/campaign.yaml)")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	campaignSpec, err := prefabs.LoadCampaignSpec()
	if err != nil {
		log.Fatal(err)
	}
	library, err := prefabs.LoadDialogues()
	if err != nil {
		log.Fatal(err)
	}
	palette, err := prefabs.LoadPaletteSpec()
	if err != nil {
		log.Printf("palette: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var game *Game
	keys := ebitenKeys{muted: func() bool { return game != nil && game.AttackMuted() }}

	director, err := campaign.New(campaignSpec, library, campaign.WithSceneOptions(
		scene.WithRoller(rand.New(rand.NewSource(*seed))),
		scene.WithKeySource(keys),
	))
	if err != nil {
		log.Fatal(err)
	}
	if *sceneName != "" {
		if err := director.Start(*sceneName); err != nil {
			log.Fatal(err)
		}
	}

	ebiten.SetWindowSize(1200, 900)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Crimson Sky")

	game = NewGame(director, GameOptions{Debug: *debug, Watch: *watch, Palette: palette})
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
