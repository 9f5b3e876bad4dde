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
	"testing"

	"drawpad/internal/stroke"
)

func TestControlsClampSliderValues(t *testing.T) {
	e := newSurface()
	c := NewControls(e)
	if w := c.SetWidth(100); w != stroke.MaxWidth || e.Style().Width != stroke.MaxWidth {
		t.Fatalf("width not clamped: %v", w)
	}
	if w := c.SetWidth(0.2); w != stroke.MinWidth {
		t.Fatalf("width not clamped: %v", w)
	}
	if a := c.SetAlpha(-1); a != 0 || e.Style().Alpha != 0 {
		t.Fatalf("alpha not clamped: %v", a)
	}
	if a := c.SetAlpha(0.3); a != 0.3 {
		t.Fatalf("in range alpha changed: %v", a)
	}
}

func TestControlsSwatches(t *testing.T) {
	e := newSurface()
	c := NewControls(e)
	sw := c.Swatches()
	if len(sw) != 6 || sw[0].Color != stroke.Black {
		t.Fatalf("unexpected palette %+v", sw)
	}
	if err := c.SelectSwatch(3); err != nil {
		t.Fatal(err)
	}
	if e.Style().Color != stroke.Blue || c.State().Swatch != 3 {
		t.Fatalf("swatch 3 should select blue")
	}
	if err := c.SelectSwatch(6); err == nil {
		t.Fatalf("expected out of range error")
	}
	e.SetColor(stroke.Color{R: 1, G: 2, B: 3, A: 255})
	if c.State().Swatch != -1 {
		t.Fatalf("custom color should not match a swatch")
	}
}

func TestControlsUndoRedoState(t *testing.T) {
	e := newSurface()
	c := NewControls(e)
	if st := c.State(); st.CanUndo || st.CanRedo || st.Swatch != 0 {
		t.Fatalf("unexpected initial state %+v", st)
	}
	if c.Undo() || c.Redo() {
		t.Fatalf("undo/redo on empty history should report false")
	}
	_ = e.BeginStroke(stroke.Pt(0, 0))
	_, _ = e.EndStroke()
	if !c.State().CanUndo {
		t.Fatalf("expected undo to be enabled")
	}
	if !c.Undo() || !c.State().CanRedo || c.State().CanUndo {
		t.Fatalf("unexpected state after undo %+v", c.State())
	}
	if !c.Redo() || c.State().CanRedo {
		t.Fatalf("unexpected state after redo %+v", c.State())
	}
}
