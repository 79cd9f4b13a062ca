package dialogue

// Request is one "show this script" order. The consumer walks the lines with
// Advance and the completion callback runs at most once, on the first call to
// Complete (Advance calls it after the last line).
type Request struct {
	Script Script

	index      int
	completed  bool
	onComplete func()
}

func NewRequest(script Script, onComplete func()) *Request {
	return &Request{Script: script, onComplete: onComplete}
}

// Key returns the script key.
func (r *Request) Key() string { return r.Script.Key }

// Current returns the line being shown.
func (r *Request) Current() (Line, bool) {
	if r == nil || r.completed {
		return Line{}, false
	}
	return r.Script.Line(r.index)
}

// Index returns the position of the current line.
func (r *Request) Index() int { return r.index }

// Advance moves to the next line. Past the last line it completes the
// request and returns false.
func (r *Request) Advance() bool {
	if r == nil || r.completed {
		return false
	}
	if r.index+1 < r.Script.Len() {
		r.index++
		return true
	}
	r.Complete()
	return false
}

// Complete finishes the request. Extra calls do nothing.
func (r *Request) Complete() {
	if r == nil || r.completed {
		return
	}
	r.completed = true
	if r.onComplete != nil {
		r.onComplete()
	}
}

func (r *Request) Completed() bool {
	return r != nil && r.completed
}
