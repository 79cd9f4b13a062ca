// Command tty plays the campaign in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/milk9111/crimsonsky/campaign"
	"github.com/milk9111/crimsonsky/prefabs"
	"github.com/milk9111/crimsonsky/scene"
)

func main() {
	sceneName := flag.String("scene", "", "start at this scene (name from prefabs/campaign.yaml)")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	// The screen owns stdout.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	campaignSpec, err := prefabs.LoadCampaignSpec()
	if err != nil {
		fatal(err)
	}
	library, err := prefabs.LoadDialogues()
	if err != nil {
		fatal(err)
	}
	palette, err := prefabs.LoadPaletteSpec()
	if err != nil {
		log.Printf("palette: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	keys := newTermKeys()
	director, err := campaign.New(campaignSpec, library, campaign.WithSceneOptions(
		scene.WithRoller(rand.New(rand.NewSource(*seed))),
		scene.WithKeySource(keys),
	))
	if err != nil {
		fatal(err)
	}
	if *sceneName != "" {
		if err := director.Start(*sceneName); err != nil {
			fatal(err)
		}
	}

	game, err := NewGame(director, keys, palette)
	if err != nil {
		fatal(err)
	}
	defer game.cleanup()

	game.run()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
