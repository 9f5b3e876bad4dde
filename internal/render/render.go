/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package render rasterises history frames with github.com/gogpu/gg. Each
// stroke is painted as one connected polyline so overlapping segments of a
// translucent stroke do not darken each other.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"drawpad/internal/history"
	applog "drawpad/internal/log"
	"drawpad/internal/stroke"
)

// ErrBadSize is returned for non-positive or oversized canvases.
var ErrBadSize = errors.New("render: bad canvas size")

// MaxSide bounds either canvas dimension.
const MaxSide = 16384

// Options configures a Renderer.
type Options struct {
	Width, Height int
	Background    stroke.Color
	// RoundCaps uses round caps and joins instead of butt caps and miter joins.
	RoundCaps bool
	// Scale multiplies coordinates and widths, for high density output.
	Scale float64
}

// Renderer paints frames at a fixed size. It is safe for concurrent use.
type Renderer struct {
	opts Options
	log  *slog.Logger
}

var ggLogOnce sync.Once

// New validates opts and returns a Renderer. The gg library logger is routed
// to the application logger on first use.
func New(opts Options) (*Renderer, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	w, h := int(float64(opts.Width)*opts.Scale), int(float64(opts.Height)*opts.Scale)
	if opts.Width <= 0 || opts.Height <= 0 || w > MaxSide || h > MaxSide {
		return nil, fmt.Errorf("%w: %dx%d at scale %g", ErrBadSize, opts.Width, opts.Height, opts.Scale)
	}
	ggLogOnce.Do(func() { gg.SetLogger(applog.WithComponent("gg")) })
	return &Renderer{opts: opts, log: applog.WithComponent("render")}, nil
}

// Size returns the output size in pixels.
func (r *Renderer) Size() (int, int) {
	return int(float64(r.opts.Width) * r.opts.Scale), int(float64(r.opts.Height) * r.opts.Scale)
}

// Render paints the background, the committed strokes in order and then the
// preview with the live style.
func (r *Renderer) Render(f history.Frame) (*image.RGBA, error) {
	dc, err := r.paint(f)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dc.Close() }()
	return toRGBA(dc.Image()), nil
}

// WritePNG renders f and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, f history.Frame) error {
	dc, err := r.paint(f)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()
	return dc.EncodePNG(w)
}

func (r *Renderer) paint(f history.Frame) (*gg.Context, error) {
	w, h := r.Size()
	dc := gg.NewContext(w, h)
	bg := r.opts.Background
	dc.ClearWithColor(gg.RGBA{R: unit(bg.R), G: unit(bg.G), B: unit(bg.B), A: unit(bg.A)})
	if r.opts.RoundCaps {
		dc.SetLineCap(gg.LineCapRound)
		dc.SetLineJoin(gg.LineJoinRound)
	} else {
		dc.SetLineCap(gg.LineCapButt)
		dc.SetLineJoin(gg.LineJoinMiter)
	}

	painted := 0
	for i, s := range f.Strokes {
		ok, err := r.stroke(dc, s.Path, s.Style)
		if err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("render: stroke %d (%s): %w", i, s.ID, err)
		}
		if ok {
			painted++
		}
	}
	if f.HasPreview() {
		if _, err := r.stroke(dc, f.Preview, f.PreviewStyle); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("render: preview: %w", err)
		}
	}
	r.log.Debug("frame painted",
		slog.Int("strokes", len(f.Strokes)),
		slog.Int("painted", painted),
		slog.Bool("preview", f.HasPreview()))
	return dc, nil
}

// stroke paints p and reports whether anything was drawn. Paths with fewer
// than two points, non-positive widths and fully transparent pens draw nothing.
func (r *Renderer) stroke(dc *gg.Context, p stroke.Path, st stroke.PathStyle) (bool, error) {
	if p.Len() < 2 || !(st.Width > 0) {
		return false, nil
	}
	a := float64(st.EffectiveAlpha())
	if a == 0 {
		return false, nil
	}
	k := r.opts.Scale
	if !p.Bounds().Inset(-st.Width * miterReach).Overlaps(r.view()) {
		return false, nil
	}
	dc.SetRGBA(unit(st.Color.R), unit(st.Color.G), unit(st.Color.B), a)
	dc.SetLineWidth(float64(st.Width) * k)
	first := p.At(0)
	dc.MoveTo(float64(first.X)*k, float64(first.Y)*k)
	for i := 1; i < p.Len(); i++ {
		pt := p.At(i)
		dc.LineTo(float64(pt.X)*k, float64(pt.Y)*k)
	}
	return true, dc.Stroke()
}

// miterReach bounds how far a joint can poke past the path, in stroke widths.
// gg's default miter limit is 10, so a spike reaches at most 5 widths.
const miterReach = 5

// view is the canvas in logical coordinates.
func (r *Renderer) view() stroke.Rect {
	return stroke.Rect{W: float32(r.opts.Width), H: float32(r.opts.Height)}
}

func unit(v uint8) float64 { return float64(v) / 255 }

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Thumbnail scales img to fit within maxW x maxH keeping its aspect ratio.
// Images that already fit are copied unscaled.
func Thumbnail(img image.Image, maxW, maxH int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxW <= 0 || maxH <= 0 || w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	if w <= maxW && h <= maxH {
		return toRGBA(img)
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	tw, th := max(1, int(float64(w)*scale+0.5)), max(1, int(float64(h)*scale+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// SavePNG encodes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodePNG(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return f.Close()
}
