// Package stats accumulates keystroke outcomes for a typing round and
// reduces them to the usual summary figures.
package stats

import "time"

// Tracker counts keystrokes for one round. The clock starts on the
// first recorded keystroke, not when the words appear, so reading time
// does not count against the typist.
type Tracker struct {
	started time.Time
	typed   int
	wrong   int

	now func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Record notes a single typed character. Backspaced-and-retyped
// characters count every attempt.
func (t *Tracker) Record(correct bool) {
	if t.started.IsZero() {
		t.started = t.now()
	}
	t.typed++
	if !correct {
		t.wrong++
	}
}

// Typed reports the number of recorded keystrokes.
func (t *Tracker) Typed() int { return t.typed }

// Results is the summary of a finished round.
type Results struct {
	WPM      float64
	Accuracy float64
	Duration time.Duration
}

// Finish computes the round summary. chars is the length of the text
// that was completed; a word is the conventional five characters.
func (t *Tracker) Finish(chars int) Results {
	r := Results{}
	if !t.started.IsZero() {
		r.Duration = t.now().Sub(t.started)
	}
	if mins := r.Duration.Minutes(); mins > 0 {
		r.WPM = float64(chars) / 5 / mins
	}
	if t.typed > 0 {
		r.Accuracy = float64(t.typed-t.wrong) / float64(t.typed) * 100
	}
	return r
}

// Reset clears the tracker for another round.
func (t *Tracker) Reset() {
	t.started = time.Time{}
	t.typed = 0
	t.wrong = 0
}
