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

import "drawpad/internal/stroke"

// FromStrokes builds a script that redraws strokes, in order. The full pen is
// written before the first stroke so the result does not depend on the pen the
// replaying engine starts with; after that only changed fields are written.
func FromStrokes(name string, strokes []stroke.Stroke) Script {
	sc := Script{Name: name}
	var pen stroke.PathStyle
	first := true
	for _, s := range strokes {
		if s.Path.Empty() {
			continue
		}
		sc.Commands = append(sc.Commands, penCommands(pen, s.Style, first)...)
		pen, first = s.Style, false
		sc.Commands = append(sc.Commands, Command{Op: OpDown, Point: s.Path.At(0)})
		for i := 1; i < s.Path.Len(); i++ {
			sc.Commands = append(sc.Commands, Command{Op: OpMove, Point: s.Path.At(i)})
		}
		sc.Commands = append(sc.Commands, Command{Op: OpUp})
	}
	return sc
}

// penCommands returns the setters that turn prev into next, or all three when full is set.
func penCommands(prev, next stroke.PathStyle, full bool) []Command {
	var out []Command
	if full || next.Width != prev.Width {
		out = append(out, Command{Op: OpWidth, Value: next.Width})
	}
	if full || next.Color != prev.Color {
		out = append(out, Command{Op: OpColor, Color: next.Color})
	}
	if full || next.Alpha != prev.Alpha {
		out = append(out, Command{Op: OpAlpha, Value: next.Alpha})
	}
	return out
}
