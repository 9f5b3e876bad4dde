/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package stroke

import (
	"fmt"
	"strconv"
	"strings"
)

// Styles and pen colors.

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Magenta     = Color{255, 0, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Transparent = Color{0, 0, 0, 0}
)

// Swatch is a named palette entry.
type Swatch struct {
	Name  string
	Color Color
}

var palette = []Swatch{
	{"black", Black},
	{"red", Red},
	{"green", Green},
	{"blue", Blue},
	{"magenta", Magenta},
	{"yellow", Yellow},
}

// Palette returns the default swatch row in display order. The palette is a UI
// affordance only; any Color is accepted by the engine.
func Palette() []Swatch {
	out := make([]Swatch, len(palette))
	copy(out, palette)
	return out
}

// ParseColor accepts a palette name (plus "white" and "transparent") or a hex
// literal in #rrggbb or #rrggbbaa form.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	switch v {
	case "white":
		return White, nil
	case "transparent":
		return Transparent, nil
	}
	for _, sw := range palette {
		if sw.Name == v {
			return sw.Color, nil
		}
	}
	if !strings.HasPrefix(v, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	hex := v[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("bad hex color %q: want #rrggbb or #rrggbbaa", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, nil
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// Hex formats c as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Pen ranges exposed by the slider controls. The engine stores whatever it is
// given; callers standing in for a slider clamp with ClampWidth and ClampAlpha.
const (
	MinWidth     float32 = 1
	MaxWidth     float32 = 30
	DefaultWidth float32 = 10
	MinAlpha     float32 = 0
	MaxAlpha     float32 = 1
	DefaultAlpha float32 = 1
)

// PathStyle is the pen snapshot a stroke is drawn with.
// It holds no references, so plain assignment and Copy both yield independent values.
type PathStyle struct {
	Width float32
	Color Color
	Alpha float32
}

// DefaultStyle returns the initial pen: 10 wide, black, opaque.
func DefaultStyle() PathStyle {
	return PathStyle{Width: DefaultWidth, Color: Black, Alpha: DefaultAlpha}
}

// Copy returns an independent copy of s.
func (s PathStyle) Copy() PathStyle { return s }

// WithWidth returns a copy of the style with the given width.
func (s PathStyle) WithWidth(w float32) PathStyle {
	s.Width = w
	return s
}

// WithColor returns a copy of the style with the given color.
func (s PathStyle) WithColor(c Color) PathStyle {
	s.Color = c
	return s
}

// WithAlpha returns a copy of the style with the given opacity.
func (s PathStyle) WithAlpha(a float32) PathStyle {
	s.Alpha = a
	return s
}

// EffectiveAlpha combines the style opacity with the color's own alpha channel, in [0,1].
func (s PathStyle) EffectiveAlpha() float32 {
	return ClampAlpha(s.Alpha) * float32(s.Color.A) / 255
}

func (s PathStyle) String() string {
	return fmt.Sprintf("width=%g color=%s alpha=%g", s.Width, s.Color.Hex(), s.Alpha)
}

func ClampWidth(w float32) float32 { return clamp(w, MinWidth, MaxWidth) }

func ClampAlpha(a float32) float32 { return clamp(a, MinAlpha, MaxAlpha) }

func clamp(v, lo, hi float32) float32 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
