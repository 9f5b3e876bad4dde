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
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"drawpad/internal/stroke"
)

var (
	reCommand = regexp.MustCompile(`^([A-Za-z]+)(?:\s+(.*))?$`)
	reArgSep  = regexp.MustCompile(`[\s,]+`)
)

var keywords = map[string]Op{
	"down": OpDown, "begin": OpDown, "start": OpDown,
	"move": OpMove, "drag": OpMove, "to": OpMove,
	"up": OpUp, "end": OpUp,
	"cancel": OpCancel,
	"width":  OpWidth,
	"color":  OpColor, "colour": OpColor,
	"alpha": OpAlpha,
	"undo":  OpUndo,
	"redo":  OpRedo,
}

// Parse parses gesture script text.
// Syntax, one command per line, keywords case-insensitive:
//
//	down X Y        (also begin, start)
//	move X Y        (also drag, to)
//	up              (also end)
//	cancel
//	width W
//	color NAME|#RRGGBB|#RRGGBBAA
//	alpha A
//	undo
//	redo
//
// Coordinates may be separated by a comma. ';' starts a comment anywhere on a
// line. '#' starts one at the beginning of a line or when followed by a blank,
// so hex colors such as #ff0000 are kept. Parsing continues
// past bad lines and every problem is returned with its position.
func Parse(input string) (Script, []Error) {
	var s Script
	var errs []Error

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		trim := strings.TrimSpace(stripComment(raw))
		if trim == "" {
			continue
		}
		indent := strings.Index(raw, trim) + 1

		m := reCommand.FindStringSubmatch(trim)
		if m == nil {
			errs = append(errs, Error{Line: lineNo, Column: indent, Message: fmt.Sprintf("cannot parse %q", trim)})
			continue
		}
		op, ok := keywords[strings.ToLower(m[1])]
		if !ok {
			errs = append(errs, Error{Line: lineNo, Column: indent, Message: fmt.Sprintf("unknown command %q", m[1])})
			continue
		}
		argCol := indent + len(m[1]) + 1
		if m[2] != "" {
			argCol = indent + strings.Index(trim[len(m[1]):], m[2]) + len(m[1])
		}
		cmd, err := parseArgs(op, strings.TrimSpace(m[2]))
		if err != nil {
			errs = append(errs, Error{Line: lineNo, Column: argCol, Message: fmt.Sprintf("%s: %v", op, err)})
			continue
		}
		cmd.LineNo = lineNo
		s.Commands = append(s.Commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Column: 1, Message: err.Error()})
	}
	return s, errs
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if strings.TrimSpace(line[:i]) == "" || i+1 == len(line) || line[i+1] == ' ' || line[i+1] == '\t' {
			return line[:i]
		}
	}
	return line
}

func parseArgs(op Op, rest string) (Command, error) {
	var args []string
	if rest != "" {
		args = reArgSep.Split(rest, -1)
	}
	c := Command{Op: op}
	switch op {
	case OpDown, OpMove:
		if len(args) != 2 {
			return c, fmt.Errorf("want X Y, got %d argument(s)", len(args))
		}
		x, err := parseFloat(args[0])
		if err != nil {
			return c, err
		}
		y, err := parseFloat(args[1])
		if err != nil {
			return c, err
		}
		c.Point = stroke.Pt(x, y)
	case OpWidth, OpAlpha:
		if len(args) != 1 {
			return c, fmt.Errorf("want one number, got %d argument(s)", len(args))
		}
		v, err := parseFloat(args[0])
		if err != nil {
			return c, err
		}
		c.Value = v
	case OpColor:
		if len(args) != 1 {
			return c, fmt.Errorf("want one color, got %d argument(s)", len(args))
		}
		col, err := stroke.ParseColor(args[0])
		if err != nil {
			return c, err
		}
		c.Color = col
	default:
		if len(args) != 0 {
			return c, fmt.Errorf("takes no arguments")
		}
	}
	return c, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return float32(f), nil
}

// Format renders s in the text form accepted by Parse.
func Format(s Script) string {
	var b strings.Builder
	if s.Name != "" {
		fmt.Fprintf(&b, "# %s\n", s.Name)
	}
	for _, c := range s.Commands {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (c Command) String() string {
	num := func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
	switch c.Op {
	case OpDown, OpMove:
		return c.Op.String() + " " + num(c.Point.X) + " " + num(c.Point.Y)
	case OpWidth, OpAlpha:
		return c.Op.String() + " " + num(c.Value)
	case OpColor:
		return "color " + c.Color.Hex()
	default:
		return c.Op.String()
	}
}
