/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"

	"drawpad/internal/config"
	"drawpad/internal/crash"
	"drawpad/internal/history"
	applog "drawpad/internal/log"
	"drawpad/internal/render"
	"drawpad/internal/script"
	"drawpad/internal/ui"
	"drawpad/internal/version"
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Drawpad, a freehand drawing pad with undo/redo")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  drawpad version|-v|--version                       Show version")
	_, _ = fmt.Fprintln(w, "  drawpad replay <script> [-o out.png] [-thumb t.png] [-size 128] [-strict] [-round] [-v]")
	_, _ = fmt.Fprintln(w, "                                                     Play a gesture script and render the result")
	_, _ = fmt.Fprintln(w, "  drawpad check <script>                             Parse a gesture script and report errors")
	_, _ = fmt.Fprintln(w, "  drawpad config [show|path|init]                    Show, locate or create the user config")
	_, _ = fmt.Fprintln(w, "  drawpad ui [-record out.draw] [-replay in.draw]    Launch the desktop UI (build with -tags fyne)")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Warning:", err)
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
		Output:    stderr,
	})
	l := applog.WithComponent("cli")
	l.Debug("start", slog.Int("args", len(args)))

	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	switch args[0] {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(stdout, version.String())
		return 0
	case "replay":
		return cmdReplay(cfg, args[1:], stdout, stderr)
	case "check":
		return cmdCheck(args[1:], stdout, stderr)
	case "config":
		return cmdConfig(cfg, args[1:], stdout, stderr)
	case "ui":
		fs := flag.NewFlagSet("ui", flag.ContinueOnError)
		fs.SetOutput(stderr)
		record := fs.String("record", "", "save the session as a gesture script on exit")
		replay := fs.String("replay", "", "gesture script to apply before the window opens")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if err := ui.Run(ui.Options{Config: cfg, Record: *record, Replay: *replay}); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	}
	_, _ = fmt.Fprintf(stderr, "unknown command %q\n", args[0])
	usage(stderr)
	return 2
}

// splitPositional lets flags follow the positional argument: "replay a.draw -o x.png".
func splitPositional(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func loadScript(path string, stderr io.Writer) (script.Script, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return script.Script{}, false
	}
	sc, errs := script.Parse(string(data))
	for _, e := range errs {
		_, _ = fmt.Fprintf(stderr, "%s:%s\n", path, e.Error())
	}
	sc.Name = path
	return sc, len(errs) == 0
}

func cmdCheck(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		_, _ = fmt.Fprintln(stderr, "check requires <script>")
		return 2
	}
	sc, ok := loadScript(args[0], stderr)
	if !ok {
		return 1
	}
	_, _ = fmt.Fprintf(stdout, "%s: %d commands OK\n", args[0], len(sc.Commands))
	return 0
}

func cmdReplay(cfg config.AppConfig, args []string, stdout, stderr io.Writer) int {
	path, rest := splitPositional(args)
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "write the final frame as PNG")
	thumb := fs.String("thumb", "", "write a thumbnail PNG")
	size := fs.Int("size", 128, "thumbnail bounding box in pixels")
	strict := fs.Bool("strict", false, "fail when the surface rejects a command")
	round := fs.Bool("round", false, "round caps and joins")
	verbose := fs.Bool("v", false, "log playback at debug level")
	if err := fs.Parse(rest); err != nil {
		return 2
	}
	if *verbose {
		applog.SetLevel("debug")
	}
	if path == "" {
		path = fs.Arg(0)
	}
	if path == "" {
		_, _ = fmt.Fprintln(stderr, "replay requires <script>")
		return 2
	}
	l := applog.WithOperation(applog.WithComponent("cli"), "replay")

	sc, ok := loadScript(path, stderr)
	if !ok {
		return 1
	}
	pen, err := cfg.PenStyle()
	if err != nil {
		l.Warn("pen color from config ignored", slog.Any("err", err))
	}
	e := history.New(history.WithStyle(pen))
	defer crash.Recover(crash.Options{Source: e})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rep, err := script.Play(ctx, e, sc)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	for _, d := range rep.Diagnostics {
		_, _ = fmt.Fprintf(stderr, "%s:%s\n", path, d.Error())
	}
	st := e.Stats()
	_, _ = fmt.Fprintf(stdout, "%s: %d commands, %d strokes (%d undone), %d rejected\n",
		path, len(sc.Commands), st.Committed, st.Redoable, len(rep.Diagnostics))

	if *out != "" || *thumb != "" {
		r, err := render.New(render.Options{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height, Background: cfg.Background(), RoundCaps: *round})
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		img, err := r.Render(e.Snapshot())
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		if *out != "" {
			if err := render.SavePNG(*out, img); err != nil {
				_, _ = fmt.Fprintln(stderr, "Error:", err)
				return 1
			}
			l.Info("frame written", slog.String("path", *out))
		}
		if *thumb != "" {
			if err := render.SavePNG(*thumb, render.Thumbnail(img, *size, *size)); err != nil {
				_, _ = fmt.Fprintln(stderr, "Error:", err)
				return 1
			}
			l.Info("thumbnail written", slog.String("path", *thumb))
		}
	}
	if *strict && rep.Err() != nil {
		return 1
	}
	return 0
}

func cmdConfig(cfg config.AppConfig, args []string, stdout, stderr io.Writer) int {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "path":
		p, err := config.ConfigPath()
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		_, _ = fmt.Fprintln(stdout, p)
	case "init":
		p, err := config.ConfigPath()
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		if _, err := os.Stat(p); err == nil {
			_, _ = fmt.Fprintln(stderr, "config already exists:", p)
			return 1
		}
		if _, err := config.Save(config.Defaults()); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		_, _ = fmt.Fprintln(stdout, "Created", p)
	case "show":
		data, err := config.Marshal(cfg)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		_, _ = stdout.Write(data)
		ov := config.Overrides()
		keys := make([]string, 0, len(ov))
		for k := range ov {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(stdout, "# %s overridden by %s\n", k, ov[k])
		}
	default:
		_, _ = fmt.Fprintf(stderr, "unknown config command %q\n", sub)
		return 2
	}
	return 0
}
