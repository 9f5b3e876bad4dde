/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package stroke defines the drawing data model: points, polyline paths, pen
// styles and committed strokes. It carries no behavior beyond value semantics.
package stroke

import "github.com/google/uuid"

// Stroke is one committed drag gesture: a frozen path and the pen it was drawn with.
// The ID is assigned once at commit and survives undo/redo.
type Stroke struct {
	ID    uuid.UUID
	Path  Path
	Style PathStyle
}

// New builds a stroke from a path and a style snapshot. The path is frozen.
func New(id uuid.UUID, p Path, s PathStyle) Stroke {
	return Stroke{ID: id, Path: p.Freeze(), Style: s.Copy()}
}

// Renderable reports whether the stroke has at least one segment.
func (s Stroke) Renderable() bool { return s.Path.Len() >= 2 }
