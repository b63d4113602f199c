// Package engine drives a single pass over a word source, recording one color per word.
//
// An Engine moves through three phases: start, selecting and result. Choose, Skip and Drop
// record a selection for the word under the cursor and advance it; choosing on the last word
// completes the run and emits the colored words. Restart is the only way back to start.
// An Engine is owned by one caller and is not safe for concurrent use.
package engine

import (
	"errors"

	"hueareyou/internal/models"
	"hueareyou/internal/palette"
	"hueareyou/internal/words"
)

var (
	ErrNotSelecting = errors.New("no run in progress")
	ErrNotAtStart   = errors.New("run already started")
)

// Phase is the screen-level state of a run
type Phase int

const (
	PhaseStart Phase = iota
	PhaseSelecting
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseSelecting:
		return "selecting"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Engine owns the assignments of one run and the cursor over them
type Engine struct {
	words       []string
	assignments []models.Assignment
	cursor      int
	phase       Phase
	result      models.Choices
	events      *Dispatcher
}

// New creates an engine in the start phase
func New(src *words.Source) *Engine {
	e := &Engine{
		words:  src.Words(),
		events: NewDispatcher(),
	}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.assignments = make([]models.Assignment, len(e.words))
	for i, w := range e.words {
		e.assignments[i] = models.Assignment{Word: w}
	}
	e.cursor = 0
	e.result = nil
}

// Events returns the dispatcher that announces start, completion and restart
func (e *Engine) Events() *Dispatcher {
	return e.events
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// Len returns the number of words in a run
func (e *Engine) Len() int {
	return len(e.words)
}

// Cursor returns the index of the word being classified
func (e *Engine) Cursor() int {
	return e.cursor
}

// Current returns the assignment under the cursor while selecting
func (e *Engine) Current() (models.Assignment, bool) {
	if e.phase != PhaseSelecting {
		return models.Assignment{}, false
	}
	return e.assignments[e.cursor], true
}

// Assignments returns a copy of every assignment in presentation order
func (e *Engine) Assignments() []models.Assignment {
	out := make([]models.Assignment, len(e.assignments))
	copy(out, e.assignments)
	return out
}

// Result returns the emitted choices once the run is complete
func (e *Engine) Result() (models.Choices, bool) {
	if e.phase != PhaseResult {
		return nil, false
	}
	out := make(models.Choices, len(e.result))
	copy(out, e.result)
	return out, true
}

// Start begins a run with every word uncolored
func (e *Engine) Start() error {
	if e.phase != PhaseStart {
		return ErrNotAtStart
	}
	e.reset()
	e.phase = PhaseSelecting
	e.events.publish(Event{Kind: EventStarted})
	return nil
}

// Choose assigns c to the word under the cursor and advances
func (e *Engine) Choose(c palette.Color) error {
	if e.phase != PhaseSelecting {
		return ErrNotSelecting
	}
	if !c.Valid() {
		return palette.ErrUnknownColor
	}
	e.record(palette.Some(c))
	return nil
}

// Skip keeps whatever was chosen for the current word, if anything, and advances
func (e *Engine) Skip() error {
	if e.phase != PhaseSelecting {
		return ErrNotSelecting
	}
	e.record(e.assignments[e.cursor].Selection)
	return nil
}

// Drop is the drag-and-drop form of Choose. A drop is honored only when word is the word under
// the cursor; a stale drop returns false and changes nothing.
func (e *Engine) Drop(word string, c palette.Color) (bool, error) {
	if e.phase != PhaseSelecting {
		return false, ErrNotSelecting
	}
	if word != e.assignments[e.cursor].Word {
		return false, nil
	}
	if err := e.Choose(c); err != nil {
		return false, err
	}
	return true, nil
}

// Previous moves the cursor back one word, keeping its selection. It reports whether the cursor moved.
func (e *Engine) Previous() bool {
	if e.phase != PhaseSelecting || e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// Restart discards the run and returns to the start phase
func (e *Engine) Restart() {
	e.reset()
	e.phase = PhaseStart
	e.events.publish(Event{Kind: EventRestarted})
}

func (e *Engine) record(sel palette.Selection) {
	e.assignments[e.cursor].Selection = sel
	if e.cursor < len(e.assignments)-1 {
		e.cursor++
		return
	}
	e.complete()
}

func (e *Engine) complete() {
	choices := make(models.Choices, 0, len(e.assignments))
	for _, a := range e.assignments {
		if c, ok := a.Selection.Get(); ok {
			choices = append(choices, models.ChoiceEntry{Word: a.Word, Color: c})
		}
	}
	e.result = choices
	e.phase = PhaseResult

	emitted := make(models.Choices, len(choices))
	copy(emitted, choices)
	e.events.publish(Event{Kind: EventCompleted, Choices: emitted})
}
