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
	"testing"

	"drawpad/internal/stroke"
)

func TestViewRendersCurrentFrame(t *testing.T) {
	e := newSurface()
	v := NewView(e, stroke.White)
	img := v.Image(40, 20, 1)
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	e.SetColor(stroke.Red)
	_ = e.BeginStroke(stroke.Pt(0, 10))
	_ = e.ExtendStroke(stroke.Pt(40, 10))
	rgba, ok := v.Image(40, 20, 1).(*image.RGBA)
	if !ok {
		t.Fatalf("expected *image.RGBA")
	}
	if c := rgba.RGBAAt(20, 10); c.R < 200 || c.G > 60 {
		t.Fatalf("expected the preview to be painted, got %+v", c)
	}
}

func TestViewScalesLogicalCoordinates(t *testing.T) {
	e := newSurface()
	_ = e.BeginStroke(stroke.Pt(0, 10))
	_ = e.ExtendStroke(stroke.Pt(20, 10))
	_, _ = e.EndStroke()
	v := NewView(e, stroke.White)
	img := v.Image(40, 40, 2).(*image.RGBA)
	if img.Bounds().Dx() != 40 {
		t.Fatalf("unexpected width %d", img.Bounds().Dx())
	}
	if c := img.RGBAAt(20, 20); c.R > 60 {
		t.Fatalf("expected black at the scaled stroke, got %+v", c)
	}
}

func TestViewToleratesDegenerateSizes(t *testing.T) {
	v := NewView(newSurface(), stroke.White)
	if img := v.Image(0, -5, 0); img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}
