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
	"image"
	"sync"

	"drawpad/internal/history"
	applog "drawpad/internal/log"
	"drawpad/internal/render"
	"drawpad/internal/stroke"
)

// View paints the surface at whatever size the toolkit asks for. The renderer
// is rebuilt only when that size changes.
type View struct {
	s          history.Surface
	background stroke.Color

	mu    sync.Mutex
	r     *render.Renderer
	w, h  int
	scale float64
}

func NewView(s history.Surface, background stroke.Color) *View {
	return &View{s: s, background: background}
}

// Image renders the current frame for a pw x ph pixel area whose logical
// size is the pixel size divided by scale. On failure it returns a blank image
// so the toolkit always has something to show.
func (v *View) Image(pw, ph int, scale float64) image.Image {
	pw, ph = max(pw, 1), max(ph, 1)
	if scale <= 0 {
		scale = 1
	}
	w, h := max(1, int(float64(pw)/scale+0.5)), max(1, int(float64(ph)/scale+0.5))
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.r == nil || v.w != w || v.h != h || v.scale != scale {
		r, err := render.New(render.Options{Width: w, Height: h, Background: v.background, RoundCaps: true, Scale: scale})
		if err != nil {
			applog.WithComponent("ui").Warn("renderer unavailable", "w", w, "h", h, "err", err)
			return image.NewRGBA(image.Rect(0, 0, pw, ph))
		}
		v.r, v.w, v.h, v.scale = r, w, h, scale
	}
	img, err := v.r.Render(v.s.Snapshot())
	if err != nil {
		applog.WithComponent("ui").Warn("render failed", "err", err)
		return image.NewRGBA(image.Rect(0, 0, pw, ph))
	}
	return img
}
