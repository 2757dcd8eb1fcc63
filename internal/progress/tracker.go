// Package progress counts copied bytes and reports whole-percent steps.
package progress

// Scope identifies what a tracker measures
type Scope string

const (
	ScopeOverall Scope = "overall" // whole archive or extraction
	ScopeItem    Scope = "item"    // a single entry
)

// Event is emitted once per whole percentage point crossed. Finish emits a
// single terminal event with Done set, which is a completion signal rather
// than another step.
type Event struct {
	Scope   Scope
	Label   string
	Percent int
	Done    bool
}

// Callback receives progress events synchronously on the copying goroutine,
// so it must return quickly
type Callback func(Event)

// Tracker keeps a byte counter for one scope. A Tracker is not safe for
// concurrent use.
type Tracker struct {
	scope    Scope
	label    string
	total    int64
	complete int64
	reported int
	finished bool
	callback Callback
}

// New creates a tracker for total bytes. A tracker with nothing to count
// finishes immediately.
func New(scope Scope, label string, total int64, cb Callback) *Tracker {
	t := &Tracker{
		scope:    scope,
		label:    label,
		total:    total,
		callback: cb,
	}
	if total <= 0 {
		t.Finish()
	}
	return t
}

// Advance adds n bytes and emits one event for every whole percentage point
// crossed since the last report
func (t *Tracker) Advance(n int64) {
	if t.finished || n <= 0 {
		return
	}

	t.complete += n
	if t.complete > t.total {
		t.complete = t.total
	}

	percent := int(t.complete * 100 / t.total)
	for t.reported < percent {
		t.reported++
		t.emit(false)
	}
}

// Finish forces the tracker to 100% and marks it terminal. Calling Finish
// more than once has no further effect.
func (t *Tracker) Finish() {
	if t.finished {
		return
	}
	t.finished = true
	t.reported = 100
	t.emit(true)
}

// Percent returns the last reported whole percent
func (t *Tracker) Percent() int {
	return t.reported
}

// Complete returns the number of bytes counted so far
func (t *Tracker) Complete() int64 {
	return t.complete
}

// Total returns the number of bytes the tracker expects
func (t *Tracker) Total() int64 {
	return t.total
}

// Finished reports whether Finish has been called
func (t *Tracker) Finished() bool {
	return t.finished
}

// Label returns the tracker label
func (t *Tracker) Label() string {
	return t.label
}

func (t *Tracker) emit(done bool) {
	if t.callback == nil {
		return
	}
	t.callback(Event{
		Scope:   t.scope,
		Label:   t.label,
		Percent: t.reported,
		Done:    done,
	})
}
