// Package dialogue holds the scripted conversations and the request handed to
// the presentation layer when one should be shown.
package dialogue

import (
	"errors"
	"fmt"
)

type Speaker string

const (
	SpeakerSoad     Speaker = "Soad"
	SpeakerGurbaaz  Speaker = "Gurbaaz"
	SpeakerEnemy    Speaker = "Enemy"
	SpeakerBoss     Speaker = "Boss"
	SpeakerNarrator Speaker = "Narrator"
)

// Valid reports whether s is one of the known speakers.
func (s Speaker) Valid() bool {
	switch s {
	case SpeakerSoad, SpeakerGurbaaz, SpeakerEnemy, SpeakerBoss, SpeakerNarrator:
		return true
	}
	return false
}

type Line struct {
	Speaker Speaker
	Text    string
}

// Script is an immutable, ordered list of lines.
type Script struct {
	Key   string
	lines []Line
}

func NewScript(key string, lines []Line) Script {
	return Script{Key: key, lines: append([]Line(nil), lines...)}
}

func (s Script) Len() int { return len(s.lines) }

// Line returns the i-th line.
func (s Script) Line(i int) (Line, bool) {
	if i < 0 || i >= len(s.lines) {
		return Line{}, false
	}
	return s.lines[i], true
}

var ErrUnknownScript = errors.New("dialogue: unknown script")

// Library maps script keys to scripts.
type Library struct {
	scripts map[string]Script
}

func NewLibrary(scripts ...Script) *Library {
	lib := &Library{scripts: make(map[string]Script, len(scripts))}
	for _, s := range scripts {
		lib.scripts[s.Key] = s
	}
	return lib
}

func (l *Library) Script(key string) (Script, error) {
	if l == nil {
		return Script{}, fmt.Errorf("%w: %q", ErrUnknownScript, key)
	}
	s, ok := l.scripts[key]
	if !ok {
		return Script{}, fmt.Errorf("%w: %q", ErrUnknownScript, key)
	}
	return s, nil
}

func (l *Library) Has(key string) bool {
	if l == nil {
		return false
	}
	_, ok := l.scripts[key]
	return ok
}

func (l *Library) Keys() []string {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(l.scripts))
	for k := range l.scripts {
		keys = append(keys, k)
	}
	return keys
}
