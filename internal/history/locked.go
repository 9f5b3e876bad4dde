/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package history

import (
	"sync"

	"drawpad/internal/stroke"
)

// Locked serialises every call to an Engine behind a single mutex. Subscribers
// registered through Locked are notified after the lock is released, so they
// may call back into it (for example to take a Snapshot).
//
// Changes are delivered in the order the mutations happened. While one
// goroutine is delivering, changes made by others (or by a subscriber) are
// queued and delivered by that goroutine once it reaches them.
type Locked struct {
	mu         sync.Mutex
	e          *Engine
	pending    []Change
	delivering bool

	subMu sync.Mutex
	subs  subscribers
}

// NewLocked wraps e. The engine must not be used directly afterwards.
func NewLocked(e *Engine) *Locked {
	l := &Locked{e: e}
	e.Subscribe(func(c Change) { l.pending = append(l.pending, c) })
	return l
}

func (l *Locked) do(fn func(e *Engine)) {
	if l.apply(fn) {
		l.drain()
	}
}

// apply runs fn under the lock and reports whether the caller must deliver
// the queued changes. The lock is released even if fn panics.
func (l *Locked) apply(fn func(e *Engine)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.e)
	if l.delivering || len(l.pending) == 0 {
		return false
	}
	l.delivering = true
	return true
}

// drain delivers queued changes until the queue is empty.
func (l *Locked) drain() {
	defer func() {
		if r := recover(); r != nil {
			l.mu.Lock()
			l.delivering = false
			l.mu.Unlock()
			panic(r)
		}
	}()
	for {
		l.mu.Lock()
		out := l.pending
		l.pending = nil
		if len(out) == 0 {
			l.delivering = false
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()

		l.subMu.Lock()
		subs := l.subs.list[:len(l.subs.list):len(l.subs.list)]
		l.subMu.Unlock()
		for _, c := range out {
			for _, s := range subs {
				s.fn(c)
			}
		}
	}
}

// Subscribe registers fn for changes made through l.
func (l *Locked) Subscribe(fn func(Change)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	l.subMu.Lock()
	id := l.subs.add(fn)
	l.subMu.Unlock()
	return func() {
		l.subMu.Lock()
		l.subs.remove(id)
		l.subMu.Unlock()
	}
}

func (l *Locked) BeginStroke(p stroke.Point) (err error) {
	l.do(func(e *Engine) { err = e.BeginStroke(p) })
	return err
}

func (l *Locked) ExtendStroke(p stroke.Point) (err error) {
	l.do(func(e *Engine) { err = e.ExtendStroke(p) })
	return err
}

func (l *Locked) EndStroke() (s stroke.Stroke, err error) {
	l.do(func(e *Engine) { s, err = e.EndStroke() })
	return s, err
}

func (l *Locked) CancelStroke() (ok bool) {
	l.do(func(e *Engine) { ok = e.CancelStroke() })
	return ok
}

func (l *Locked) SetStyle(s stroke.PathStyle) { l.do(func(e *Engine) { e.SetStyle(s) }) }
func (l *Locked) SetWidth(w float32)          { l.do(func(e *Engine) { e.SetWidth(w) }) }
func (l *Locked) SetColor(c stroke.Color)     { l.do(func(e *Engine) { e.SetColor(c) }) }
func (l *Locked) SetAlpha(a float32)          { l.do(func(e *Engine) { e.SetAlpha(a) }) }

func (l *Locked) Undo() (s stroke.Stroke, ok bool) {
	l.do(func(e *Engine) { s, ok = e.Undo() })
	return s, ok
}

func (l *Locked) Redo() (s stroke.Stroke, ok bool) {
	l.do(func(e *Engine) { s, ok = e.Redo() })
	return s, ok
}

func (l *Locked) Style() (s stroke.PathStyle) {
	l.do(func(e *Engine) { s = e.Style() })
	return s
}

func (l *Locked) State() (st State) {
	l.do(func(e *Engine) { st = e.State() })
	return st
}

func (l *Locked) CanUndo() (ok bool) {
	l.do(func(e *Engine) { ok = e.CanUndo() })
	return ok
}

func (l *Locked) CanRedo() (ok bool) {
	l.do(func(e *Engine) { ok = e.CanRedo() })
	return ok
}

func (l *Locked) Snapshot() (f Frame) {
	l.do(func(e *Engine) { f = e.Snapshot() })
	return f
}

func (l *Locked) Stats() (s Stats) {
	l.do(func(e *Engine) { s = e.Stats() })
	return s
}
