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
	"fmt"

	"drawpad/internal/history"
	"drawpad/internal/stroke"
)

// Controls backs the pen sliders, the palette row and the undo/redo buttons.
// Slider values are clamped to the pen ranges before reaching the surface.
type Controls struct {
	s        history.Surface
	swatches []stroke.Swatch
}

func NewControls(s history.Surface) *Controls {
	return &Controls{s: s, swatches: stroke.Palette()}
}

// ControlState is what the control row displays.
type ControlState struct {
	Style   stroke.PathStyle
	Swatch  int // index of the selected swatch, -1 for a custom color
	CanUndo bool
	CanRedo bool
}

func (c *Controls) Swatches() []stroke.Swatch { return append([]stroke.Swatch(nil), c.swatches...) }

// SetWidth applies a slider value and returns the width actually set.
func (c *Controls) SetWidth(v float64) float32 {
	w := stroke.ClampWidth(float32(v))
	c.s.SetWidth(w)
	return w
}

// SetAlpha applies a slider value and returns the opacity actually set.
func (c *Controls) SetAlpha(v float64) float32 {
	a := stroke.ClampAlpha(float32(v))
	c.s.SetAlpha(a)
	return a
}

// SelectSwatch sets the pen color to the i-th palette entry.
func (c *Controls) SelectSwatch(i int) error {
	if i < 0 || i >= len(c.swatches) {
		return fmt.Errorf("ui: swatch %d out of range [0,%d)", i, len(c.swatches))
	}
	c.s.SetColor(c.swatches[i].Color)
	return nil
}

func (c *Controls) Undo() bool {
	_, ok := c.s.Undo()
	return ok
}

func (c *Controls) Redo() bool {
	_, ok := c.s.Redo()
	return ok
}

func (c *Controls) State() ControlState {
	st := ControlState{Style: c.s.Style(), Swatch: -1, CanUndo: c.s.CanUndo(), CanRedo: c.s.CanRedo()}
	for i, sw := range c.swatches {
		if sw.Color == st.Style.Color {
			st.Swatch = i
			break
		}
	}
	return st
}
