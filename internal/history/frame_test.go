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
	"testing"

	"drawpad/internal/stroke"
)

func TestSnapshotIncludesPreviewWhileDrawing(t *testing.T) {
	e := newTestEngine()
	draw(t, e, stroke.Pt(0, 0), stroke.Pt(1, 0))
	e.SetColor(stroke.Magenta)
	_ = e.BeginStroke(stroke.Pt(5, 5))

	f := e.Snapshot()
	if !f.Drawing || f.HasPreview() {
		t.Fatalf("one-point preview has nothing to paint")
	}
	_ = e.ExtendStroke(stroke.Pt(6, 6))
	f = e.Snapshot()
	if !f.HasPreview() || f.Preview.Len() != 2 {
		t.Fatalf("expected a two-point preview")
	}
	if f.PreviewStyle.Color != stroke.Magenta {
		t.Fatalf("preview must use the live style")
	}
	if len(f.Strokes) != 1 || f.Strokes[0].Style.Color != stroke.Black {
		t.Fatalf("committed strokes must keep their own style")
	}
}

func TestSnapshotIsIsolatedFromLaterMutations(t *testing.T) {
	e := newTestEngine()
	draw(t, e, stroke.Pt(0, 0), stroke.Pt(1, 0))
	_ = e.BeginStroke(stroke.Pt(2, 2))
	_ = e.ExtendStroke(stroke.Pt(3, 3))
	f := e.Snapshot()

	_ = e.ExtendStroke(stroke.Pt(4, 4))
	_, _ = e.EndStroke()
	e.Undo()
	e.Undo()

	if len(f.Strokes) != 1 || f.Preview.Len() != 2 {
		t.Fatalf("snapshot changed after mutation: strokes=%d preview=%d", len(f.Strokes), f.Preview.Len())
	}
	f.Strokes[0] = stroke.Stroke{}
	if len(e.Snapshot().Strokes) != 0 {
		t.Fatalf("expected empty history after two undos")
	}
}

func TestSnapshotDoesNotMutate(t *testing.T) {
	e := newTestEngine()
	draw(t, e, stroke.Pt(0, 0), stroke.Pt(1, 0))
	before := e.Stats()
	for i := 0; i < 3; i++ {
		e.Snapshot()
	}
	if e.Stats() != before {
		t.Fatalf("snapshot mutated engine")
	}
}

func TestPreviewAppendDoesNotAliasEngine(t *testing.T) {
	e := newTestEngine()
	_ = e.BeginStroke(stroke.Pt(0, 0))
	_ = e.ExtendStroke(stroke.Pt(1, 1))
	f := e.Snapshot()
	f.Preview.Append(stroke.Pt(99, 99))
	_ = e.ExtendStroke(stroke.Pt(2, 2))
	s, _ := e.EndStroke()
	if s.Path.At(2) != stroke.Pt(2, 2) {
		t.Fatalf("engine path was overwritten through a snapshot")
	}
	if f.Preview.At(2) != stroke.Pt(99, 99) {
		t.Fatalf("snapshot path was overwritten by the engine")
	}
}
