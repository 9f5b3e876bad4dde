//go:build fyne && cgo

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
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"drawpad/internal/crash"
	"drawpad/internal/history"
	applog "drawpad/internal/log"
	"drawpad/internal/script"
	"drawpad/internal/stroke"
	"drawpad/internal/version"
)

// Run opens the drawing window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")

	pen, err := opts.Config.PenStyle()
	if err != nil {
		l.Warn("pen color from config ignored", slog.Any("err", err))
	}
	surface := history.NewLocked(history.New(history.WithStyle(pen)))
	defer crash.Recover(crash.Options{Source: surface})

	var rec *script.Recorder
	if opts.Record != "" {
		rec = script.Record(surface)
	}
	if opts.Replay != "" {
		if err := replayFile(surface, opts.Replay); err != nil {
			return err
		}
	}

	l.Info("starting UI", slog.String("version", version.String()))
	fyneApp := app.NewWithID("drawpad")
	w := fyneApp.NewWindow("Drawpad")
	prefs := fyneApp.Preferences()
	w.Resize(fyne.NewSize(
		float32(max(prefs.IntWithFallback("window.width", opts.Config.Canvas.Width), 400)),
		float32(max(prefs.IntWithFallback("window.height", opts.Config.Canvas.Height+80), 300)),
	))

	board := newDrawCanvas(surface, opts.Config.Background())
	controls := NewControls(surface)
	bar := newControlBar(controls)
	status := widget.NewLabel("")

	refresh := func() {
		st := surface.Stats()
		status.SetText(fmt.Sprintf("%d strokes, %d undone", st.Committed, st.Redoable))
		bar.sync()
		board.Refresh()
	}
	surface.Subscribe(func(c history.Change) {
		// extends only need the canvas repainted
		if c.Kind == history.ChangeExtend {
			fyne.Do(board.Refresh)
			return
		}
		fyne.Do(refresh)
	})
	refresh()

	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		controls.Undo()
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}, func(fyne.Shortcut) {
		controls.Redo()
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		controls.Redo()
	})
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			board.pointer.DragCancel()
		}
	})

	w.SetContent(container.NewBorder(nil, container.NewVBox(bar.root, status), nil, nil, board))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		if rec == nil {
			return
		}
		rec.Stop()
		data := script.Format(rec.Script("drawpad session " + version.String()))
		if err := os.WriteFile(opts.Record, []byte(data), 0o644); err != nil {
			l.Error("save recording failed", slog.String("path", opts.Record), slog.Any("err", err))
			return
		}
		l.Info("session recorded", slog.String("path", opts.Record))
	})
	if opts.Replay != "" {
		w.SetTitle("Drawpad - " + opts.Replay)
	}
	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

func replayFile(s history.Surface, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: replay: %w", err)
	}
	sc, errs := script.Parse(string(data))
	if len(errs) > 0 {
		return fmt.Errorf("ui: replay %s: %w", path, errs[0])
	}
	sc.Name = path
	rep, err := script.Play(context.Background(), s, sc)
	if err != nil {
		return err
	}
	applog.WithComponent("ui").Info("replayed", slog.String("path", path), slog.Int("commits", rep.Commits), slog.Int("rejected", len(rep.Diagnostics)))
	return nil
}

func toColor(c stroke.Color) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// drawCanvas shows the rendered frame and feeds drags to a Pointer.
type drawCanvas struct {
	widget.BaseWidget
	pointer *Pointer
	view    *View
	raster  *canvas.Raster
}

var _ fyne.Draggable = (*drawCanvas)(nil)

func newDrawCanvas(s history.Surface, bg stroke.Color) *drawCanvas {
	d := &drawCanvas{pointer: NewPointer(s), view: NewView(s, bg)}
	d.raster = canvas.NewRaster(func(pw, ph int) image.Image {
		scale := 1.0
		if sz := d.Size(); sz.Width > 0 {
			scale = float64(pw) / float64(sz.Width)
		}
		return d.view.Image(pw, ph, scale)
	})
	d.ExtendBaseWidget(d)
	return d
}

func (d *drawCanvas) CreateRenderer() fyne.WidgetRenderer { return widget.NewSimpleRenderer(d.raster) }

func (d *drawCanvas) MinSize() fyne.Size { return fyne.NewSize(200, 150) }

func (d *drawCanvas) Dragged(e *fyne.DragEvent) {
	d.pointer.Dragged(stroke.Pt(e.Position.X, e.Position.Y), stroke.Pt(e.Dragged.DX, e.Dragged.DY))
}

func (d *drawCanvas) DragEnd() { d.pointer.DragEnd() }

// swatch is a tappable color chip.
type swatch struct {
	widget.BaseWidget
	rect  *canvas.Rectangle
	onTap func()
}

func newSwatch(c stroke.Color, onTap func()) *swatch {
	r := canvas.NewRectangle(toColor(c))
	r.SetMinSize(fyne.NewSize(28, 28))
	r.CornerRadius = 4
	s := &swatch{rect: r, onTap: onTap}
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer { return widget.NewSimpleRenderer(s.rect) }

func (s *swatch) Tapped(*fyne.PointEvent) { s.onTap() }

func (s *swatch) setSelected(on bool) {
	if on {
		s.rect.StrokeColor = theme.Color(theme.ColorNamePrimary)
		s.rect.StrokeWidth = 3
	} else {
		s.rect.StrokeWidth = 0
	}
	s.rect.Refresh()
}

// controlBar holds the width and alpha sliders, the palette and undo/redo.
type controlBar struct {
	c        *Controls
	root     fyne.CanvasObject
	width    *widget.Slider
	alpha    *widget.Slider
	swatches []*swatch
	undo     *widget.Button
	redo     *widget.Button
	syncing  bool
}

func newControlBar(c *Controls) *controlBar {
	b := &controlBar{c: c}

	b.width = widget.NewSlider(float64(stroke.MinWidth), float64(stroke.MaxWidth))
	b.width.Step = 0.5
	b.width.OnChanged = func(v float64) {
		if !b.syncing {
			c.SetWidth(v)
		}
	}
	b.alpha = widget.NewSlider(float64(stroke.MinAlpha), float64(stroke.MaxAlpha))
	b.alpha.Step = 0.01
	b.alpha.OnChanged = func(v float64) {
		if !b.syncing {
			c.SetAlpha(v)
		}
	}

	palette := container.NewHBox()
	for i, sw := range c.Swatches() {
		chip := newSwatch(sw.Color, func() { _ = c.SelectSwatch(i) })
		b.swatches = append(b.swatches, chip)
		palette.Add(chip)
	}

	b.undo = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), func() { c.Undo() })
	b.redo = widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), func() { c.Redo() })

	sliders := container.NewGridWithColumns(2,
		container.NewBorder(nil, nil, widget.NewLabel("Width"), nil, b.width),
		container.NewBorder(nil, nil, widget.NewLabel("Alpha"), nil, b.alpha),
	)
	b.root = container.NewVBox(sliders, container.NewHBox(palette, layout.NewSpacer(), b.undo, b.redo))
	return b
}

// sync copies the surface state into the widgets without echoing it back.
func (b *controlBar) sync() {
	st := b.c.State()
	b.syncing = true
	b.width.SetValue(float64(stroke.ClampWidth(st.Style.Width)))
	b.alpha.SetValue(float64(stroke.ClampAlpha(st.Style.Alpha)))
	b.syncing = false
	for i, s := range b.swatches {
		s.setSelected(i == st.Swatch)
	}
	if st.CanUndo {
		b.undo.Enable()
	} else {
		b.undo.Disable()
	}
	if st.CanRedo {
		b.redo.Enable()
	} else {
		b.redo.Disable()
	}
}
