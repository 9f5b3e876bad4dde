/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a report file and a replayable dump of the
// drawing, then exits with a non-zero status.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"drawpad/internal/history"
	applog "drawpad/internal/log"
	"drawpad/internal/script"
	"drawpad/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Source is the drawing state a crash report describes. history.Engine and
// history.Locked both satisfy it.
type Source interface {
	Snapshot() history.Frame
	Stats() history.Stats
}

// Options says where reports go. Dir defaults to the system temp dir.
type Options struct {
	Dir    string
	Source Source
}

// Recover captures a panic, logs it with the stack, writes a report and,
// when a source is given, a gesture script that redraws the committed strokes.
//
// Usage: defer crash.Recover(crash.Options{Source: engine})
func Recover(opts Options) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(opts, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if opts.Source != nil {
		if path, err := writeDump(opts); err != nil {
			l.Error("drawing dump failed", slog.Any("err", err))
		} else if path != "" {
			l.Info("drawing dump written", slog.String("path", path))
			_, _ = fmt.Fprintf(os.Stderr, "Your drawing was saved to %s (replay it with: drawpad replay %s)\n", path, path)
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

func reportDir(opts Options) string {
	if opts.Dir == "" {
		return os.TempDir()
	}
	_ = os.MkdirAll(opts.Dir, 0o755)
	return opts.Dir
}

func stamp() string { return time.Now().Format("20060102-150405") }

func writeReport(opts Options, panicVal any, stack []byte) (string, error) {
	path := filepath.Join(reportDir(opts), fmt.Sprintf("crash-%s.log", stamp()))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Drawpad Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if opts.Source != nil {
		st := opts.Source.Stats()
		_, _ = fmt.Fprintf(&buf, "Strokes: %d committed, %d redoable\n", st.Committed, st.Redoable)
		_, _ = fmt.Fprintf(&buf, "Drawing: %t (%d points)\n", st.Drawing, st.Points)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}

// writeDump saves the committed strokes as a gesture script. Nothing is
// written for an empty drawing.
func writeDump(opts Options) (string, error) {
	f := opts.Source.Snapshot()
	if len(f.Strokes) == 0 {
		return "", nil
	}
	path := filepath.Join(reportDir(opts), fmt.Sprintf("crash-%s.draw", stamp()))
	sc := script.FromStrokes("recovered "+time.Now().Format(time.RFC3339), f.Strokes)
	return path, os.WriteFile(path, []byte(script.Format(sc)), 0o644)
}
