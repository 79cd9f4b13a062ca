package dialogue

import "time"

// DefaultCharDelay is the reveal speed of the dialogue box.
const DefaultCharDelay = 30 * time.Millisecond

// Box plays queued requests one at a time, revealing each line character by
// character. Press either finishes the reveal or moves to the next line.
type Box struct {
	CharDelay time.Duration

	queue    []*Request
	current  *Request
	revealed int
	elapsed  time.Duration
}

func NewBox() *Box {
	return &Box{CharDelay: DefaultCharDelay}
}

// Push queues r behind any request already playing.
func (b *Box) Push(r *Request) {
	if r == nil {
		return
	}
	if b.current == nil {
		b.start(r)
		return
	}
	b.queue = append(b.queue, r)
}

// Active reports whether a request is on screen.
func (b *Box) Active() bool {
	return b.current != nil
}

// Request returns the request on screen.
func (b *Box) Request() *Request {
	return b.current
}

// Update advances the reveal.
func (b *Box) Update(dt time.Duration) {
	line, ok := b.current.Current()
	if !ok {
		return
	}
	total := len([]rune(line.Text))
	if b.revealed >= total {
		return
	}
	b.elapsed += dt
	delay := b.CharDelay
	if delay <= 0 {
		b.revealed = total
		return
	}
	for b.elapsed >= delay && b.revealed < total {
		b.elapsed -= delay
		b.revealed++
	}
}

// Text returns the speaker and the revealed part of the current line.
func (b *Box) Text() (Speaker, string) {
	line, ok := b.current.Current()
	if !ok {
		return "", ""
	}
	runes := []rune(line.Text)
	n := b.revealed
	if n > len(runes) {
		n = len(runes)
	}
	return line.Speaker, string(runes[:n])
}

// Typing reports whether the current line is still being revealed.
func (b *Box) Typing() bool {
	line, ok := b.current.Current()
	if !ok {
		return false
	}
	return b.revealed < len([]rune(line.Text))
}

// Press finishes the reveal of the current line, or advances. After the last
// line the request completes and the next queued one starts.
func (b *Box) Press() {
	if b.current == nil {
		return
	}
	if b.Typing() {
		line, _ := b.current.Current()
		b.revealed = len([]rune(line.Text))
		return
	}
	if b.current.Advance() {
		b.revealed = 0
		b.elapsed = 0
		return
	}
	b.next()
}

// Clear drops every request without completing it.
func (b *Box) Clear() {
	b.queue = nil
	b.current = nil
	b.revealed = 0
	b.elapsed = 0
}

func (b *Box) next() {
	b.current = nil
	if len(b.queue) == 0 {
		return
	}
	r := b.queue[0]
	b.queue = b.queue[1:]
	b.start(r)
}

func (b *Box) start(r *Request) {
	b.current = r
	b.revealed = 0
	b.elapsed = 0
	if r.Completed() || r.Script.Len() == 0 {
		r.Complete()
		b.next()
	}
}
