// Package campaign sequences the scenes of a run and carries the party from
// one arena to the next.
package campaign

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/crimsonsky/dialogue"
	"github.com/milk9111/crimsonsky/event"
	"github.com/milk9111/crimsonsky/prefabs"
	"github.com/milk9111/crimsonsky/scene"
)

const retryDelay = time.Second

// SceneLoader resolves a scene name to its spec.
type SceneLoader func(name string) (*prefabs.SceneSpec, error)

// Director owns the current scene engine. Hosts subscribe to Events once;
// the director forwards every engine's events there.
type Director struct {
	spec      *prefabs.CampaignSpec
	library   *dialogue.Library
	loadScene SceneLoader
	sceneOpts []scene.Option
	events    *event.Dispatcher

	index  int
	engine *scene.Engine

	banner     string
	transition time.Duration
	next       int
	won        bool
	err        error
}

type Option func(*Director)

func WithSceneLoader(l SceneLoader) Option {
	return func(d *Director) { d.loadScene = l }
}

// WithSceneOptions passes options to every scene engine the director builds.
func WithSceneOptions(opts ...scene.Option) Option {
	return func(d *Director) { d.sceneOpts = append(d.sceneOpts, opts...) }
}

// New builds the first scene of spec.
func New(spec *prefabs.CampaignSpec, lib *dialogue.Library, opts ...Option) (*Director, error) {
	if spec == nil || len(spec.Scenes) == 0 {
		return nil, fmt.Errorf("campaign: %w: no scenes", prefabs.ErrInvalidSpec)
	}

	d := &Director{
		spec:      spec,
		library:   lib,
		loadScene: prefabs.LoadSceneSpec,
		events:    event.NewDispatcher(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.enter(0); err != nil {
		return nil, err
	}
	return d, nil
}

// Events is the dispatcher hosts listen on. It outlives scene changes.
func (d *Director) Events() *event.Dispatcher { return d.events }

// Engine returns the running scene.
func (d *Director) Engine() *scene.Engine { return d.engine }

// SceneIndex returns the position of the running scene in the campaign.
func (d *Director) SceneIndex() int { return d.index }

// Banner returns the transition text while a scene change is pending.
func (d *Director) Banner() (string, bool) {
	if d.transition <= 0 {
		return "", false
	}
	return d.banner, true
}

// Err returns the last failed attempt to enter the next scene. The banner
// stays up and the attempt repeats every retryDelay until it succeeds.
func (d *Director) Err() error { return d.err }

// Won reports whether the final scene was cleared.
func (d *Director) Won() bool { return d.won }

// Update advances the pending transition or the running scene.
func (d *Director) Update(dt time.Duration) {
	if d.transition > 0 {
		d.transition -= dt
		if d.transition > 0 {
			return
		}
		if err := d.enter(d.next); err != nil {
			d.err = err
			d.transition = retryDelay
			log.Printf("[campaign] enter %s: %v (retrying)", d.spec.Scenes[d.next], err)
		}
		return
	}
	if d.won || d.engine == nil {
		return
	}
	d.engine.Update(dt)
}

// Start jumps to the named scene.
func (d *Director) Start(name string) error {
	for i, s := range d.spec.Scenes {
		if s == name {
			return d.enter(i)
		}
	}
	return fmt.Errorf("campaign: unknown scene %q", name)
}

// Restart returns to the first scene with a fresh party.
func (d *Director) Restart() error {
	return d.enter(0)
}

// Reload re-reads content from disk and rebuilds the running scene. On error
// the current scene keeps running.
func (d *Director) Reload() error {
	lib, err := prefabs.LoadDialogues()
	if err != nil {
		return fmt.Errorf("campaign: reload dialogues: %w", err)
	}
	d.library = lib
	log.Printf("[campaign] reloading %s", d.spec.Scenes[d.index])
	return d.enter(d.index)
}

// OnEvent receives the running engine's events, forwards them to the host
// and reacts to scene completion.
func (d *Director) OnEvent(ev event.Event) {
	d.events.Dispatch(ev)

	if ev.Type != event.SceneCompleted {
		return
	}
	complete, ok := ev.Data.(event.SceneComplete)
	if !ok || complete.Scene != d.spec.Scenes[d.index] {
		return
	}

	if d.index+1 >= len(d.spec.Scenes) {
		d.won = true
		log.Printf("[campaign] cleared final scene %s", complete.Scene)
		return
	}

	d.next = d.index + 1
	d.banner = d.spec.Banner(d.spec.Scenes[d.next])
	d.transition = d.spec.TransitionDelay
	log.Printf("[campaign] %s cleared, next %s", complete.Scene, d.spec.Scenes[d.next])
}

func (d *Director) enter(index int) error {
	name := d.spec.Scenes[index]
	spec, err := d.loadScene(name)
	if err != nil {
		return fmt.Errorf("campaign: load %s: %w", name, err)
	}

	engine, err := scene.New(spec, d.library, d.sceneOpts...)
	if err != nil {
		return fmt.Errorf("campaign: build %s: %w", name, err)
	}
	engine.Events().SubscribeAll(d)

	d.engine = engine
	d.index = index
	d.transition = 0
	d.banner = ""
	d.won = false
	d.err = nil
	return nil
}
