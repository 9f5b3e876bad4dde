/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"drawpad/internal/history"
	applog "drawpad/internal/log"
)

// Diagnostic records a command the surface rejected.
type Diagnostic struct {
	Line int
	Op   Op
	Err  error
}

func (d Diagnostic) Error() string { return fmt.Sprintf("line %d: %s: %v", d.Line, d.Op, d.Err) }

func (d Diagnostic) Unwrap() error { return d.Err }

// Report summarises a playback.
type Report struct {
	Applied     int // commands that changed or queried the surface without error
	Commits     int
	Undos       int // successful undos
	Redos       int // successful redos
	Noops       int // undo/redo/cancel with nothing to act on
	Diagnostics []Diagnostic
}

// Err joins the diagnostics, nil when there were none.
func (r Report) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	errs := make([]error, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		errs[i] = d
	}
	return errors.Join(errs...)
}

// Play applies sc to s in order. Protocol errors from the surface are
// collected in the report and playback continues. The returned error is
// non-nil only when ctx ends before the script does.
func Play(ctx context.Context, s history.Surface, sc Script) (Report, error) {
	var rep Report
	if sc.Name != "" {
		ctx = applog.ContextWith(ctx, slog.String("script", sc.Name))
	}
	log := applog.WithOperation(applog.WithComponent("script"), "play")
	log.DebugContext(ctx, "playback start", slog.Int("commands", len(sc.Commands)))

	for _, c := range sc.Commands {
		if err := ctx.Err(); err != nil {
			log.InfoContext(ctx, "playback interrupted", slog.Int("line", c.LineNo), slog.Any("err", err))
			return rep, err
		}
		var err error
		switch c.Op {
		case OpDown:
			err = s.BeginStroke(c.Point)
		case OpMove:
			err = s.ExtendStroke(c.Point)
		case OpUp:
			if _, err = s.EndStroke(); err == nil {
				rep.Commits++
			}
		case OpCancel:
			if !s.CancelStroke() {
				rep.Noops++
				continue
			}
		case OpWidth:
			s.SetWidth(c.Value)
		case OpColor:
			s.SetColor(c.Color)
		case OpAlpha:
			s.SetAlpha(c.Value)
		case OpUndo:
			if _, ok := s.Undo(); !ok {
				rep.Noops++
				continue
			}
			rep.Undos++
		case OpRedo:
			if _, ok := s.Redo(); !ok {
				rep.Noops++
				continue
			}
			rep.Redos++
		default:
			err = fmt.Errorf("unsupported op %s", c.Op)
		}
		if err != nil {
			log.DebugContext(ctx, "command rejected", slog.Int("line", c.LineNo), slog.String("op", c.Op.String()), slog.Any("err", err))
			rep.Diagnostics = append(rep.Diagnostics, Diagnostic{Line: c.LineNo, Op: c.Op, Err: err})
			continue
		}
		rep.Applied++
	}
	log.DebugContext(ctx, "playback done",
		slog.Int("applied", rep.Applied),
		slog.Int("commits", rep.Commits),
		slog.Int("rejected", len(rep.Diagnostics)))
	return rep, nil
}
