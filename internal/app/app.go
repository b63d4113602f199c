// Package app composes a run, the session and the persistence client into the flow a front end drives.
package app

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"hueareyou/internal/engine"
	"hueareyou/internal/models"
	"hueareyou/internal/results"
	"hueareyou/internal/session"
	"hueareyou/internal/validation"
)

var (
	// ErrNothingToSave is returned when the run has no colored word. No request is issued.
	ErrNothingToSave    = errors.New("nothing to save")
	ErrNotAuthenticated = errors.New("login required")
	ErrSaveInProgress   = errors.New("save already in progress")
)

// Store persists completed runs
type Store interface {
	SaveResult(ctx context.Context, s models.Session, record models.Record) error
}

// Flow owns one engine and one session manager for a single user
type Flow struct {
	engine  *engine.Engine
	session *session.Manager
	store   Store
	logger  *zap.Logger

	saving atomic.Bool
	saved  atomic.Bool

	unsubscribe func()
}

// New creates a flow over eng and sess that saves through store
func New(eng *engine.Engine, sess *session.Manager, store Store, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Flow{
		engine:  eng,
		session: sess,
		store:   store,
		logger:  logger,
	}
	f.unsubscribe = eng.Events().Subscribe(f.onEvent)
	return f
}

func (f *Flow) onEvent(ev engine.Event) {
	switch ev.Kind {
	case engine.EventStarted, engine.EventRestarted:
		f.saved.Store(false)
	case engine.EventCompleted:
		f.logger.Debug("run completed", zap.Int("colored", ev.Choices.Len()))
	}
}

// Close detaches the flow from its engine
func (f *Flow) Close() {
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
}

func (f *Flow) Engine() *engine.Engine {
	return f.engine
}

func (f *Flow) Session() *session.Manager {
	return f.session
}

// Summary returns the grouped result of a completed run
func (f *Flow) Summary() (results.Summary, bool) {
	choices, ok := f.engine.Result()
	if !ok {
		return results.Summary{}, false
	}
	return results.Aggregate(choices), true
}

// Saving reports whether a save request is in flight
func (f *Flow) Saving() bool {
	return f.saving.Load()
}

// Saved reports whether the current result has been stored
func (f *Flow) Saved() bool {
	return f.saved.Load()
}

// Save stores the completed run under name. Only one save may be in flight; a failed or
// cancelled save leaves the flow as it was and may be retried.
func (f *Flow) Save(ctx context.Context, name string) error {
	choices, ok := f.engine.Result()
	if !ok || choices.Len() == 0 {
		return ErrNothingToSave
	}

	name = strings.TrimSpace(name)
	if err := validation.Required("name", name); err != nil {
		return err
	}
	if err := validation.ValidateDisplayName(name); err != nil {
		return err
	}

	s, ok := f.session.Current()
	if !ok {
		return ErrNotAuthenticated
	}

	if !f.saving.CompareAndSwap(false, true) {
		return ErrSaveInProgress
	}
	defer f.saving.Store(false)

	record := models.Record{Name: name, Choice: choices.Map()}
	if err := f.store.SaveResult(ctx, s, record); err != nil {
		f.logger.Debug("save failed", zap.String("name", name), zap.Error(err))
		return err
	}

	f.saved.Store(true)
	f.logger.Debug("result saved", zap.String("name", name), zap.Int("words", len(record.Choice)))
	return nil
}
