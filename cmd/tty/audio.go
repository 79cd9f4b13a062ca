package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/crimsonsky/event"
)

const sampleRate = beep.SampleRate(44100)

// cues plays short synthesised tones for combat events.
type cues struct {
	enabled bool
}

func newCues() *cues {
	c := &cues{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("[tty] audio disabled: %v", err)
		return c
	}
	c.enabled = true
	return c
}

func (c *cues) OnEvent(ev event.Event) {
	switch ev.Type {
	case event.ActorHit:
		hit, ok := ev.Data.(event.Hit)
		if !ok {
			return
		}
		if hit.Player {
			c.tone(220, 60*time.Millisecond)
		} else {
			c.tone(880, 50*time.Millisecond)
		}
	case event.ProjectileImpact:
		c.tone(110, 80*time.Millisecond)
	case event.EnemyDied:
		if death, ok := ev.Data.(event.Death); ok && death.Boss {
			c.tone(330, 400*time.Millisecond)
		}
	case event.GameWon:
		c.tone(660, 300*time.Millisecond)
	}
}

func (c *cues) tone(freq int, d time.Duration) {
	if !c.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (c *cues) Close() {
	if c.enabled {
		speaker.Close()
	}
}
