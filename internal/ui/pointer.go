/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"log/slog"

	"drawpad/internal/history"
	applog "drawpad/internal/log"
	"drawpad/internal/stroke"
)

// Pointer adapts toolkit drag events to a drawing surface. Toolkits report a
// drag as a stream of moves followed by an end; Pointer turns that into one
// Begin, many Extends and one End per gesture.
type Pointer struct {
	s        history.Surface
	log      *slog.Logger
	dragging bool
}

func NewPointer(s history.Surface) *Pointer {
	return &Pointer{s: s, log: applog.WithComponent("pointer")}
}

// Dragging reports whether a gesture is in progress.
func (p *Pointer) Dragging() bool { return p.dragging }

// DragStart begins a gesture at pt. A stroke left open by a lost end event is
// dropped first so the new gesture always starts cleanly.
func (p *Pointer) DragStart(pt stroke.Point) {
	if p.s.State() == history.Drawing {
		p.log.Debug("dropping unterminated stroke")
		p.s.CancelStroke()
	}
	if err := p.s.BeginStroke(pt); err != nil {
		p.log.Debug("drag start rejected", slog.Any("err", err))
		return
	}
	p.dragging = true
}

// DragMove extends the current gesture. Moves outside a gesture are ignored.
func (p *Pointer) DragMove(pt stroke.Point) {
	if !p.dragging {
		return
	}
	if err := p.s.ExtendStroke(pt); err != nil {
		p.log.Debug("drag move rejected", slog.Any("err", err))
		p.dragging = false
	}
}

// Dragged handles a toolkit drag callback carrying the current position and
// the delta since the previous callback. The first callback of a gesture
// starts the stroke at pos-delta.
func (p *Pointer) Dragged(pos, delta stroke.Point) {
	if !p.dragging {
		p.DragStart(pos.Sub(delta))
	}
	p.DragMove(pos)
}

// DragEnd commits the gesture.
func (p *Pointer) DragEnd() (stroke.Stroke, bool) {
	if !p.dragging {
		return stroke.Stroke{}, false
	}
	p.dragging = false
	s, err := p.s.EndStroke()
	if err != nil {
		p.log.Debug("drag end rejected", slog.Any("err", err))
		return stroke.Stroke{}, false
	}
	return s, true
}

// DragCancel abandons the gesture without committing.
func (p *Pointer) DragCancel() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.s.CancelStroke()
}
