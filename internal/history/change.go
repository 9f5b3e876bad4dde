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

import "drawpad/internal/stroke"

// ChangeKind names the mutation a Change reports.
type ChangeKind int

const (
	ChangeBegin ChangeKind = iota + 1
	ChangeExtend
	ChangeCommit
	ChangeCancel
	ChangeStyle
	ChangeUndo
	ChangeRedo
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeBegin:
		return "begin"
	case ChangeExtend:
		return "extend"
	case ChangeCommit:
		return "commit"
	case ChangeCancel:
		return "cancel"
	case ChangeStyle:
		return "style"
	case ChangeUndo:
		return "undo"
	case ChangeRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after a mutation has been applied.
// Point is set for begin/extend, Stroke for commit/undo/redo, Style for style.
type Change struct {
	Kind   ChangeKind
	Point  stroke.Point
	Stroke stroke.Stroke
	Style  stroke.PathStyle
}

type subscriber struct {
	id int
	fn func(Change)
}

// subscribers keeps registration order so notification order is deterministic.
type subscribers struct {
	next int
	list []subscriber
}

func (s *subscribers) add(fn func(Change)) int {
	s.next++
	s.list = append(s.list, subscriber{id: s.next, fn: fn})
	return s.next
}

func (s *subscribers) remove(id int) {
	for i, sub := range s.list {
		if sub.id == id {
			s.list = append(s.list[:i:i], s.list[i+1:]...)
			return
		}
	}
}

func (s *subscribers) each(c Change) {
	// iterate over the current registrations; a callback may cancel itself
	for _, sub := range s.list[:len(s.list):len(s.list)] {
		sub.fn(c)
	}
}

// Subscribe registers fn to be called synchronously after every state change.
// Rejected and no-op calls do not notify. The returned func cancels the subscription.
func (e *Engine) Subscribe(fn func(Change)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	id := e.subs.add(fn)
	return func() { e.subs.remove(id) }
}

func (e *Engine) notify(c Change) { e.subs.each(c) }
