// Package scene runs one arena: it builds the world from a scene spec,
// schedules the dialogue cues and drives the systems each frame.
package scene

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/crimsonsky/dialogue"
	"github.com/milk9111/crimsonsky/ecs"
	"github.com/milk9111/crimsonsky/ecs/component"
	"github.com/milk9111/crimsonsky/ecs/entity"
	"github.com/milk9111/crimsonsky/ecs/system"
	"github.com/milk9111/crimsonsky/event"
	"github.com/milk9111/crimsonsky/prefabs"
)

// Engine owns the world of one scene. It is not safe for concurrent use;
// hosts call Update from their game loop.
type Engine struct {
	spec    *prefabs.SceneSpec
	library *dialogue.Library
	world   *ecs.World
	events  *event.Dispatcher
	state   *State
	input   *system.InputSystem
	roll    system.Roller
	keys    system.KeySource

	lead      ecs.Entity
	companion ecs.Entity
	boss      ecs.Entity

	pending []func()
}

type Option func(*Engine)

// WithRoller sets the random source used for contact damage and embers.
func WithRoller(r system.Roller) Option {
	return func(e *Engine) { e.roll = r }
}

// WithKeySource sets where the lead's input comes from.
func WithKeySource(k system.KeySource) Option {
	return func(e *Engine) { e.keys = k }
}

// New builds the scene described by spec. Dialogue keys it names
// must exist in lib.
func New(spec *prefabs.SceneSpec, lib *dialogue.Library, opts ...Option) (*Engine, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene: nil spec")
	}
	for _, key := range dialogueKeys(spec) {
		if !lib.Has(key) {
			return nil, fmt.Errorf("scene %s: %w: %q", spec.Name, dialogue.ErrUnknownScript, key)
		}
	}

	e := &Engine{
		spec:    spec,
		library: lib,
		world:   ecs.NewWorld(),
		events:  event.NewDispatcher(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.roll == nil {
		e.roll = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.state = newState(spec.Name, e.RemainingEnemies, e.onCleared)
	e.events.Subscribe(event.EnemyDefeated, event.ListenerFunc(e.onEnemyDefeated))

	if err := e.build(); err != nil {
		return nil, err
	}
	e.installSystems()
	e.scheduleCues()

	log.Printf("[scene] %s: built with %d enemies", spec.Name, e.RemainingEnemies())
	return e, nil
}

func (e *Engine) build() error {
	w := e.world
	spec := e.spec

	if _, err := entity.NewArena(w, spec); err != nil {
		return fmt.Errorf("scene %s: %w", spec.Name, err)
	}
	if _, err := entity.NewBackground(w, spec, e.roll); err != nil {
		return fmt.Errorf("scene %s: %w", spec.Name, err)
	}

	lead, err := entity.NewLead(w, spec)
	if err != nil {
		return fmt.Errorf("scene %s: %w", spec.Name, err)
	}
	e.lead = lead

	companion, err := entity.NewCompanion(w, spec)
	if err != nil {
		return fmt.Errorf("scene %s: %w", spec.Name, err)
	}
	e.companion = companion

	for _, enemySpec := range spec.Enemies {
		enemy, err := entity.NewEnemy(w, spec, enemySpec)
		if err != nil {
			return fmt.Errorf("scene %s: %w", spec.Name, err)
		}
		if enemySpec.Role == prefabs.RoleBoss {
			e.boss = enemy
		}
	}

	return nil
}

func (e *Engine) installSystems() {
	spec := e.spec
	fx := system.Feedback{
		HitTint:        spec.Feedback.HitTint,
		NumberColor:    spec.Feedback.NumberColor,
		PlayerTint:     spec.Feedback.PlayerTint,
		DeathSparks:    spec.Feedback.DeathSparks,
		ImpactSparks:   spec.Feedback.ImpactSparks,
		DeathWindow:    spec.Window().Seconds(),
		ShakeSeconds:   spec.Feedback.BossShake.Duration.Seconds(),
		ShakeIntensity: spec.Feedback.BossShake.Intensity,
	}
	damage := system.NewDamager(fx, e.events)
	gate := system.Gate(e.state.EnemiesActive)
	e.input = system.NewInputSystem(e.keys)

	for _, s := range []ecs.System{
		&completionSystem{engine: e},
		e.input,
		system.NewPlayerControllerSystem(spec.Party.Speed),
		system.NewCombatSystem(system.Melee{
			Range:       spec.Party.Melee.Range,
			Cooldown:    spec.Party.Melee.Cooldown,
			SlashOffset: spec.Party.Melee.Offset(),
		}, damage, e.events),
		system.NewAISystem(spec.EnemySpeed, e.roll, gate, damage),
		system.NewBossSystem(gate),
		system.NewProjectileSystem(damage, e.events),
		system.NewCompanionSystem(spec.Party.Speed, spec.Party.Companion.FollowDistance, spec.Party.Companion.SpeedFactor),
		system.NewCooldownSystem(),
		system.NewDyingSystem(),
		&progressSystem{state: e.state},
		system.NewHealthReportSystem(e.events),
	} {
		e.world.AddSystem(s)
	}
}

func (e *Engine) scheduleCues() {
	spec := e.spec
	timers := e.world.Timers()

	timers.After(spec.Dialogue.ReadyDelay, func() {
		e.events.Emit(event.SceneReadied, event.SceneReady{Scene: spec.Name})
	})

	timers.After(spec.Dialogue.IntroDelay, func() {
		if spec.Dialogue.Intro == "" {
			e.state.introDone()
			return
		}
		e.showDialogue(spec.Dialogue.Intro, e.state.introDone)
	})

	for _, cue := range spec.Dialogue.Timed {
		key := cue.Key
		timers.After(cue.Delay, func() {
			e.showDialogue(key, nil)
		})
	}
}

// showDialogue emits a request for key. then runs inside a later Update once
// the consumer completes the request.
func (e *Engine) showDialogue(key string, then func()) {
	script, err := e.library.Script(key)
	if err != nil {
		log.Printf("[scene] %s: %v", e.spec.Name, err)
		return
	}

	var onComplete func()
	if then != nil {
		onComplete = func() { e.pending = append(e.pending, then) }
	}
	e.events.Emit(event.DialogueShown, event.ShowDialogue{Request: dialogue.NewRequest(script, onComplete)})
}

func (e *Engine) onEnemyDefeated(ev event.Event) {
	defeat, ok := ev.Data.(event.Defeat)
	if !ok || !defeat.Boss {
		return
	}
	if !e.state.bossDown() {
		return
	}
	e.showDialogue(e.spec.Dialogue.Victory, e.state.victoryDialogueDone)
}

func (e *Engine) onCleared() {
	e.events.Emit(event.SceneCompleted, event.SceneComplete{Scene: e.spec.Name})
	if e.spec.Final {
		e.events.Emit(event.GameWon, event.Victory{})
	}
}

// Update advances the scene by dt, clamped to the scene's max frame delta.
func (e *Engine) Update(dt time.Duration) {
	if limit := e.spec.MaxFrameDelta; limit > 0 && dt > limit {
		dt = limit
	}
	e.world.Update(dt)
}

// SetKeySource swaps the lead's input source.
func (e *Engine) SetKeySource(k system.KeySource) {
	e.keys = k
	e.input.SetKeySource(k)
}

func (e *Engine) Events() *event.Dispatcher { return e.events }

func (e *Engine) World() *ecs.World { return e.world }

func (e *Engine) State() *State { return e.state }

func (e *Engine) Spec() *prefabs.SceneSpec { return e.spec }

func (e *Engine) Name() string { return e.spec.Name }

func (e *Engine) Lead() ecs.Entity { return e.lead }

func (e *Engine) Companion() ecs.Entity { return e.companion }

func (e *Engine) Boss() ecs.Entity { return e.boss }

// RemainingEnemies counts enemy entities not yet destroyed.
func (e *Engine) RemainingEnemies() int {
	return e.world.Count(component.EnemyTagComponent.Kind())
}

func dialogueKeys(spec *prefabs.SceneSpec) []string {
	keys := make([]string, 0, 2+len(spec.Dialogue.Timed))
	if spec.Dialogue.Intro != "" {
		keys = append(keys, spec.Dialogue.Intro)
	}
	keys = append(keys, spec.Dialogue.Victory)
	for _, t := range spec.Dialogue.Timed {
		keys = append(keys, t.Key)
	}
	return keys
}

// completionSystem applies dialogue completions queued since the last frame.
type completionSystem struct {
	engine *Engine
}

func (s *completionSystem) Update(w *ecs.World) {
	pending := s.engine.pending
	s.engine.pending = nil
	for _, fn := range pending {
		fn()
	}
}

// progressSystem attempts the clear transition after removals.
type progressSystem struct {
	state *State
}

func (s *progressSystem) Update(w *ecs.World) {
	s.state.check()
}
