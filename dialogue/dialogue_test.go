package dialogue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLines() Script {
	return NewScript("intro", []Line{
		{Speaker: SpeakerSoad, Text: "Hi"},
		{Speaker: SpeakerGurbaaz, Text: "Yo!"},
	})
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary(twoLines())

	s, err := lib.Script("intro")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = lib.Script("missing")
	assert.True(t, errors.Is(err, ErrUnknownScript))
	assert.True(t, lib.Has("intro"))
	assert.False(t, lib.Has("missing"))

	var nilLib *Library
	_, err = nilLib.Script("intro")
	assert.ErrorIs(t, err, ErrUnknownScript)
}

func TestScriptIsImmutable(t *testing.T) {
	lines := []Line{{Speaker: SpeakerBoss, Text: "Who dares"}}
	s := NewScript("boss", lines)
	lines[0].Text = "changed"

	line, ok := s.Line(0)
	require.True(t, ok)
	assert.Equal(t, "Who dares", line.Text)

	_, ok = s.Line(1)
	assert.False(t, ok)
}

func TestSpeakerValid(t *testing.T) {
	tests := []struct {
		speaker Speaker
		want    bool
	}{
		{SpeakerSoad, true},
		{SpeakerGurbaaz, true},
		{SpeakerEnemy, true},
		{SpeakerBoss, true},
		{SpeakerNarrator, true},
		{"Villager", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.speaker.Valid(), "speaker %q", tc.speaker)
	}
}

func TestRequestCompletesOnce(t *testing.T) {
	calls := 0
	r := NewRequest(twoLines(), func() { calls++ })

	line, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, SpeakerSoad, line.Speaker)

	assert.True(t, r.Advance())
	assert.Equal(t, 1, r.Index())
	assert.False(t, r.Advance())
	assert.True(t, r.Completed())

	r.Complete()
	assert.False(t, r.Advance())
	assert.Equal(t, 1, calls)

	_, ok = r.Current()
	assert.False(t, ok)
}

func TestBoxRevealsAndAdvances(t *testing.T) {
	done := 0
	box := NewBox()
	box.CharDelay = 10 * time.Millisecond
	box.Push(NewRequest(twoLines(), func() { done++ }))
	require.True(t, box.Active())

	speaker, text := box.Text()
	assert.Equal(t, SpeakerSoad, speaker)
	assert.Equal(t, "", text)

	box.Update(10 * time.Millisecond)
	_, text = box.Text()
	assert.Equal(t, "H", text)
	assert.True(t, box.Typing())

	// First press finishes the reveal, second moves on.
	box.Press()
	_, text = box.Text()
	assert.Equal(t, "Hi", text)
	assert.False(t, box.Typing())

	box.Press()
	speaker, text = box.Text()
	assert.Equal(t, SpeakerGurbaaz, speaker)
	assert.Equal(t, "", text)

	box.Update(time.Second)
	_, text = box.Text()
	assert.Equal(t, "Yo!", text)

	box.Press()
	assert.False(t, box.Active())
	assert.Equal(t, 1, done)

	box.Press()
	assert.Equal(t, 1, done)
}

func TestBoxQueuesRequests(t *testing.T) {
	var order []string
	box := NewBox()
	box.CharDelay = 0

	first := NewScript("a", []Line{{Speaker: SpeakerNarrator, Text: "one"}})
	second := NewScript("b", []Line{{Speaker: SpeakerNarrator, Text: "two"}})
	box.Push(NewRequest(first, func() { order = append(order, "a") }))
	box.Push(NewRequest(second, func() { order = append(order, "b") }))

	assert.Equal(t, "a", box.Request().Key())
	box.Update(time.Millisecond)
	box.Press()
	assert.Equal(t, "b", box.Request().Key())
	box.Update(time.Millisecond)
	box.Press()

	assert.Equal(t, []string{"a", "b"}, order)
	assert.False(t, box.Active())
}

func TestBoxCompletesEmptyScriptImmediately(t *testing.T) {
	done := false
	box := NewBox()
	box.Push(NewRequest(NewScript("empty", nil), func() { done = true }))

	assert.True(t, done)
	assert.False(t, box.Active())
}

func TestBoxClearDropsWithoutCompleting(t *testing.T) {
	done := false
	box := NewBox()
	box.Push(NewRequest(twoLines(), func() { done = true }))
	box.Clear()

	assert.False(t, box.Active())
	assert.False(t, done)
}
