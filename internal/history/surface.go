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

// Surface is the drawing API shared by Engine and Locked. Input and render
// collaborators accept a Surface so hosts can choose either.
type Surface interface {
	BeginStroke(p stroke.Point) error
	ExtendStroke(p stroke.Point) error
	EndStroke() (stroke.Stroke, error)
	CancelStroke() bool

	Style() stroke.PathStyle
	SetStyle(s stroke.PathStyle)
	SetWidth(w float32)
	SetColor(c stroke.Color)
	SetAlpha(a float32)

	Undo() (stroke.Stroke, bool)
	Redo() (stroke.Stroke, bool)
	CanUndo() bool
	CanRedo() bool

	State() State
	Snapshot() Frame
	Stats() Stats
	Subscribe(fn func(Change)) (cancel func())
}

var (
	_ Surface = (*Engine)(nil)
	_ Surface = (*Locked)(nil)
)
