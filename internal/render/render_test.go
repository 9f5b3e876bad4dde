/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"drawpad/internal/history"
	applog "drawpad/internal/log"
	"drawpad/internal/stroke"
)

func newRenderer(t *testing.T, w, h int) *Renderer {
	t.Helper()
	r, err := New(Options{Width: w, Height: h, Background: stroke.White})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func frameOf(t *testing.T, build func(e *history.Engine)) history.Frame {
	t.Helper()
	e := history.New(history.WithLogger(applog.Discard()))
	build(e)
	return e.Snapshot()
}

func line(e *history.Engine, a, b stroke.Point) {
	_ = e.BeginStroke(a)
	_ = e.ExtendStroke(b)
	_, _ = e.EndStroke()
}

func rgbAt(img *image.RGBA, x, y int) (uint8, uint8, uint8) {
	c := img.RGBAAt(x, y)
	return c.R, c.G, c.B
}

func near(a uint8, b int) bool { d := int(a) - b; return d >= -12 && d <= 12 }

func TestNewRejectsBadSizes(t *testing.T) {
	for _, o := range []Options{{Width: 0, Height: 10}, {Width: 10, Height: -1}, {Width: MaxSide + 1, Height: 1}, {Width: 10000, Height: 10, Scale: 2}} {
		if _, err := New(o); !errors.Is(err, ErrBadSize) {
			t.Fatalf("%+v: expected ErrBadSize, got %v", o, err)
		}
	}
}

func TestRenderEmptyFrameIsBackground(t *testing.T) {
	r := newRenderer(t, 20, 10)
	img, err := r.Render(history.Frame{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if r, g, b := rgbAt(img, 5, 5); r != 255 || g != 255 || b != 255 {
		t.Fatalf("expected white background, got %d,%d,%d", r, g, b)
	}
}

func TestRenderCommittedStroke(t *testing.T) {
	f := frameOf(t, func(e *history.Engine) {
		e.SetColor(stroke.Red)
		line(e, stroke.Pt(10, 50), stroke.Pt(90, 50))
	})
	img, err := newRenderer(t, 100, 100).Render(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b := rgbAt(img, 50, 50); !near(r, 255) || !near(g, 0) || !near(b, 0) {
		t.Fatalf("expected red on the line, got %d,%d,%d", r, g, b)
	}
	if r, g, b := rgbAt(img, 50, 20); r != 255 || g != 255 || b != 255 {
		t.Fatalf("expected white away from the line, got %d,%d,%d", r, g, b)
	}
	// width 10 covers y in [45,55]
	if r, g, b := rgbAt(img, 50, 53); !near(r, 255) || !near(g, 0) || !near(b, 0) {
		t.Fatalf("expected the stroke width to be honoured, got %d,%d,%d", r, g, b)
	}
}

func TestRenderHonoursAlpha(t *testing.T) {
	f := frameOf(t, func(e *history.Engine) {
		e.SetAlpha(0.5)
		line(e, stroke.Pt(0, 10), stroke.Pt(40, 10))
	})
	img, err := newRenderer(t, 40, 20).Render(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b := rgbAt(img, 20, 10); !near(r, 128) || !near(g, 128) || !near(b, 128) {
		t.Fatalf("expected mid grey for half transparent black, got %d,%d,%d", r, g, b)
	}
}

func TestRenderPaintOrder(t *testing.T) {
	f := frameOf(t, func(e *history.Engine) {
		e.SetColor(stroke.Blue)
		line(e, stroke.Pt(0, 10), stroke.Pt(40, 10))
		e.SetColor(stroke.Green)
		line(e, stroke.Pt(20, 0), stroke.Pt(20, 20))
	})
	img, err := newRenderer(t, 40, 20).Render(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b := rgbAt(img, 20, 10); !near(r, 0) || !near(g, 255) || !near(b, 0) {
		t.Fatalf("later stroke should be on top, got %d,%d,%d", r, g, b)
	}
}

func TestRenderSkipsUnpaintablePaths(t *testing.T) {
	f := frameOf(t, func(e *history.Engine) {
		_ = e.BeginStroke(stroke.Pt(10, 10))
		_, _ = e.EndStroke()
		e.SetWidth(0)
		line(e, stroke.Pt(0, 10), stroke.Pt(20, 10))
		e.SetWidth(5)
		e.SetAlpha(0)
		line(e, stroke.Pt(0, 10), stroke.Pt(20, 10))
	})
	if len(f.Strokes) != 3 {
		t.Fatalf("expected 3 committed strokes")
	}
	img, err := newRenderer(t, 20, 20).Render(f)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []int{5, 10, 15} {
		if r, g, b := rgbAt(img, x, 10); r != 255 || g != 255 || b != 255 {
			t.Fatalf("nothing should be painted at %d,10: %d,%d,%d", x, r, g, b)
		}
	}
}

func TestRenderPreviewUsesLiveStyle(t *testing.T) {
	f := frameOf(t, func(e *history.Engine) {
		e.SetColor(stroke.Magenta)
		_ = e.BeginStroke(stroke.Pt(0, 10))
		_ = e.ExtendStroke(stroke.Pt(40, 10))
	})
	img, err := newRenderer(t, 40, 20).Render(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b := rgbAt(img, 20, 10); !near(r, 255) || !near(g, 0) || !near(b, 255) {
		t.Fatalf("expected magenta preview, got %d,%d,%d", r, g, b)
	}
}

func TestScaleMultipliesOutput(t *testing.T) {
	r, err := New(Options{Width: 30, Height: 20, Background: stroke.White, Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	w, h := r.Size()
	if w != 60 || h != 40 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	f := frameOf(t, func(e *history.Engine) { line(e, stroke.Pt(0, 10), stroke.Pt(30, 10)) })
	img, err := r.Render(f)
	if err != nil {
		t.Fatal(err)
	}
	if rr, _, _ := rgbAt(img, 30, 20); !near(rr, 0) {
		t.Fatalf("expected black at the scaled position, got r=%d", rr)
	}
}

func TestWritePNGAndSave(t *testing.T) {
	r := newRenderer(t, 16, 8)
	var buf bytes.Buffer
	if err := r.WritePNG(&buf, history.Frame{}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Fatalf("unexpected width %d", img.Bounds().Dx())
	}
	path := filepath.Join(t.TempDir(), "sub", "thumb.png")
	if err := SavePNG(path, Thumbnail(img, 4, 4)); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}

func TestThumbnailKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	th := Thumbnail(src, 50, 50)
	if th.Bounds().Dx() != 50 || th.Bounds().Dy() != 25 {
		t.Fatalf("unexpected thumbnail size %v", th.Bounds())
	}
	if small := Thumbnail(src, 400, 400); small.Bounds().Dx() != 200 {
		t.Fatalf("images that fit must not be scaled")
	}
	if empty := Thumbnail(src, 0, 10); !empty.Bounds().Empty() {
		t.Fatalf("expected empty thumbnail")
	}
}

func TestStrokeCullsOffCanvasPaths(t *testing.T) {
	r := newRenderer(t, 40, 40)
	dc, err := r.paint(history.Frame{})
	if err != nil {
		t.Fatalf("paint: %v", err)
	}
	defer func() { _ = dc.Close() }()
	st := stroke.DefaultStyle().WithWidth(2)
	if ok, _ := r.stroke(dc, stroke.NewPath(stroke.Pt(500, 500), stroke.Pt(600, 600)), st); ok {
		t.Fatalf("off-canvas path should be culled")
	}
	// A wide pen just outside the edge still reaches into the canvas.
	wide := st.WithWidth(20)
	if ok, err := r.stroke(dc, stroke.NewPath(stroke.Pt(45, 0), stroke.Pt(45, 40)), wide); !ok || err != nil {
		t.Fatalf("wide stroke near the edge should paint: ok=%v err=%v", ok, err)
	}
}
