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

// Frame is what a renderer paints: the committed strokes in order, then the
// in-progress path with the live style.
type Frame struct {
	Strokes      []stroke.Stroke
	Preview      stroke.Path
	PreviewStyle stroke.PathStyle
	Drawing      bool
}

// HasPreview reports whether the in-progress path has a segment to paint.
func (f Frame) HasPreview() bool { return f.Drawing && f.Preview.Len() >= 2 }

// Snapshot returns the current frame. It is a pure read; the caller owns the
// returned slice and paths are frozen.
func (e *Engine) Snapshot() Frame {
	f := Frame{Strokes: cloneStrokes(e.committed), PreviewStyle: e.style, Drawing: e.drawing}
	if e.drawing {
		f.Preview = e.current.Freeze()
	}
	return f
}
