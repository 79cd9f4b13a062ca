package scene

import (
	"context"
	"errors"
	"log"

	"github.com/looplab/fsm"
)

const (
	StateIntro        = "intro"
	StateActive       = "active"
	StateBossDefeated = "boss_defeated"
	StateCleared      = "cleared"
)

const (
	eventIntroDone = "intro_done"
	eventBossDown  = "boss_down"
	eventClear     = "clear"
)

// State is the combat progress of one scene. BossDefeated and cleared are
// terminal once reached.
type State struct {
	BossDefeated        bool
	IntroShown          bool
	VictoryDialogueDone bool

	fsm       *fsm.FSM
	remaining func() int
	onCleared func()
}

func newState(name string, remaining func() int, onCleared func()) *State {
	s := &State{remaining: remaining, onCleared: onCleared}
	s.fsm = fsm.NewFSM(
		StateIntro,
		fsm.Events{
			{Name: eventIntroDone, Src: []string{StateIntro}, Dst: StateActive},
			{Name: eventBossDown, Src: []string{StateIntro, StateActive}, Dst: StateBossDefeated},
			{Name: eventClear, Src: []string{StateBossDefeated}, Dst: StateCleared},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Printf("[scene] %s: %s -> %s", name, e.Src, e.Dst)
			},
			"enter_" + StateCleared: func(_ context.Context, e *fsm.Event) {
				if s.onCleared != nil {
					s.onCleared()
				}
			},
		},
	)
	return s
}

// Current returns the state machine's state name.
func (s *State) Current() string {
	return s.fsm.Current()
}

// RemainingEnemies counts enemies not yet destroyed, including those still in
// their death window.
func (s *State) RemainingEnemies() int {
	if s.remaining == nil {
		return 0
	}
	return s.remaining()
}

// Cleared reports whether the scene has completed.
func (s *State) Cleared() bool {
	return s.fsm.Is(StateCleared)
}

// EnemiesActive reports whether enemies may move, touch or shoot.
func (s *State) EnemiesActive() bool {
	return s.IntroShown
}

func (s *State) introDone() {
	if s.IntroShown {
		return
	}
	s.IntroShown = true
	s.fire(eventIntroDone)
}

// bossDown returns true the first time it is called.
func (s *State) bossDown() bool {
	if s.BossDefeated {
		return false
	}
	s.BossDefeated = true
	s.fire(eventBossDown)
	return true
}

func (s *State) victoryDialogueDone() {
	s.VictoryDialogueDone = true
}

// check attempts the clear transition once every condition holds.
func (s *State) check() {
	if !s.BossDefeated || !s.VictoryDialogueDone || s.RemainingEnemies() > 0 {
		return
	}
	if !s.fsm.Can(eventClear) {
		return
	}
	s.fire(eventClear)
}

func (s *State) fire(event string) {
	err := s.fsm.Event(context.Background(), event)
	if err == nil {
		return
	}
	var invalid fsm.InvalidEventError
	if errors.As(err, &invalid) {
		return
	}
	log.Printf("[scene] event %s: %v", event, err)
}
