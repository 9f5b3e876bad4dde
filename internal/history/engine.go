/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package history is the stroke history engine: it turns pointer input into
// committed strokes, keeps them in paint order and provides undo/redo over them.
//
// An Engine is not safe for concurrent use. Hosts that call it from more than
// one goroutine wrap it in a Locked.
package history

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	applog "drawpad/internal/log"
	"drawpad/internal/stroke"
)

// Protocol errors. Neither is fatal and neither changes engine state.
var (
	// ErrStrokeAlreadyInProgress is returned by BeginStroke while a stroke is being drawn.
	// The in-progress stroke is left untouched; callers may CancelStroke and begin again.
	ErrStrokeAlreadyInProgress = errors.New("history: stroke already in progress")
	// ErrNoActiveStroke is returned by ExtendStroke and EndStroke when nothing is being drawn.
	ErrNoActiveStroke = errors.New("history: no active stroke")
)

// State is the drag state of the engine.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Engine owns the committed strokes, the in-progress path, the live pen style
// and the redo stack.
type Engine struct {
	committed []stroke.Stroke
	redo      []stroke.Stroke // most recently undone last

	current stroke.Path
	drawing bool
	style   stroke.PathStyle

	newID func() uuid.UUID
	log   *slog.Logger
	subs  subscribers
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithStyle sets the initial pen instead of stroke.DefaultStyle.
func WithStyle(s stroke.PathStyle) Option { return func(e *Engine) { e.style = s } }

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithIDFunc replaces the stroke ID generator (uuid.New by default).
func WithIDFunc(f func() uuid.UUID) Option {
	return func(e *Engine) {
		if f != nil {
			e.newID = f
		}
	}
}

// New returns an idle engine with empty history and the default pen.
func New(opts ...Option) *Engine {
	e := &Engine{style: stroke.DefaultStyle(), newID: uuid.New}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		e.log = applog.WithComponent("history")
	}
	return e
}

// State reports whether a stroke is in progress.
func (e *Engine) State() State {
	if e.drawing {
		return Drawing
	}
	return Idle
}

// BeginStroke starts a new in-progress path at p. It is the only Idle to Drawing transition.
func (e *Engine) BeginStroke(p stroke.Point) error {
	if e.drawing {
		e.log.Warn("begin while drawing", slog.Int("points", e.current.Len()))
		return ErrStrokeAlreadyInProgress
	}
	e.current = stroke.NewPath(p)
	e.drawing = true
	e.notify(Change{Kind: ChangeBegin, Point: p})
	return nil
}

// ExtendStroke appends p to the in-progress path.
func (e *Engine) ExtendStroke(p stroke.Point) error {
	if !e.drawing {
		e.log.Debug("extend ignored", slog.String("reason", ErrNoActiveStroke.Error()))
		return ErrNoActiveStroke
	}
	e.current.Append(p)
	e.notify(Change{Kind: ChangeExtend, Point: p})
	return nil
}

// EndStroke commits the in-progress path with a copy of the live style,
// clears the redo stack and returns to Idle. A one-point path is committed as is.
func (e *Engine) EndStroke() (stroke.Stroke, error) {
	if !e.drawing {
		e.log.Debug("end ignored", slog.String("reason", ErrNoActiveStroke.Error()))
		return stroke.Stroke{}, ErrNoActiveStroke
	}
	s := stroke.New(e.newID(), e.current, e.style.Copy())
	e.committed = append(e.committed, s)
	dropped := len(e.redo)
	e.redo = nil
	e.current = stroke.Path{}
	e.drawing = false
	e.log.Debug("stroke committed",
		slog.String("id", s.ID.String()),
		slog.Int("points", s.Path.Len()),
		slog.Int("committed", len(e.committed)),
		slog.Int("redo_dropped", dropped))
	e.notify(Change{Kind: ChangeCommit, Stroke: s})
	return s, nil
}

// CancelStroke drops the in-progress path without committing. It reports
// whether there was anything to drop.
func (e *Engine) CancelStroke() bool {
	if !e.drawing {
		return false
	}
	n := e.current.Len()
	e.current = stroke.Path{}
	e.drawing = false
	e.log.Debug("stroke cancelled", slog.Int("points", n))
	e.notify(Change{Kind: ChangeCancel})
	return true
}

// Style returns the live pen.
func (e *Engine) Style() stroke.PathStyle { return e.style }

// SetStyle replaces the live pen. Committed strokes are not affected.
func (e *Engine) SetStyle(s stroke.PathStyle) {
	e.style = s
	e.notify(Change{Kind: ChangeStyle, Style: s})
}

// SetWidth stores w as the pen width without validation.
func (e *Engine) SetWidth(w float32) { e.SetStyle(e.style.WithWidth(w)) }

// SetColor stores c as the pen color.
func (e *Engine) SetColor(c stroke.Color) { e.SetStyle(e.style.WithColor(c)) }

// SetAlpha stores a as the pen opacity without validation.
func (e *Engine) SetAlpha(a float32) { e.SetStyle(e.style.WithAlpha(a)) }

// Undo moves the most recently committed stroke onto the redo stack.
// It returns false with no effect when there is nothing to undo.
func (e *Engine) Undo() (stroke.Stroke, bool) {
	n := len(e.committed)
	if n == 0 {
		return stroke.Stroke{}, false
	}
	s := e.committed[n-1]
	e.committed[n-1] = stroke.Stroke{}
	e.committed = e.committed[:n-1]
	e.redo = append(e.redo, s)
	e.notify(Change{Kind: ChangeUndo, Stroke: s})
	return s, true
}

// Redo appends the most recently undone stroke back onto the committed list.
// Since every commit clears the redo stack, appending restores the original order.
func (e *Engine) Redo() (stroke.Stroke, bool) {
	n := len(e.redo)
	if n == 0 {
		return stroke.Stroke{}, false
	}
	s := e.redo[n-1]
	e.redo = e.redo[:n-1]
	e.committed = append(e.committed, s)
	e.notify(Change{Kind: ChangeRedo, Stroke: s})
	return s, true
}

func (e *Engine) CanUndo() bool { return len(e.committed) > 0 }
func (e *Engine) CanRedo() bool { return len(e.redo) > 0 }

// Committed returns the committed strokes in paint order. The slice is a copy.
func (e *Engine) Committed() []stroke.Stroke { return cloneStrokes(e.committed) }

// Redoable returns the redo stack, most recently undone last. The slice is a copy.
func (e *Engine) Redoable() []stroke.Stroke { return cloneStrokes(e.redo) }

// InProgress returns a frozen copy of the path being drawn and whether a stroke is in progress.
func (e *Engine) InProgress() (stroke.Path, bool) {
	if !e.drawing {
		return stroke.Path{}, false
	}
	return e.current.Freeze(), true
}

// Stats summarises the engine for diagnostics and crash reports.
type Stats struct {
	Committed int
	Redoable  int
	Drawing   bool
	Points    int // points in the in-progress path
}

func (e *Engine) Stats() Stats {
	return Stats{Committed: len(e.committed), Redoable: len(e.redo), Drawing: e.drawing, Points: e.current.Len()}
}

func cloneStrokes(in []stroke.Stroke) []stroke.Stroke {
	if len(in) == 0 {
		return nil
	}
	out := make([]stroke.Stroke, len(in))
	copy(out, in)
	return out
}
