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
	"fmt"

	"drawpad/internal/stroke"
)

// Script is a parsed gesture script: pointer and pen commands in the order
// they are applied to a drawing surface.
// The text form is one command per line, see Parse.

type Script struct {
	Name     string
	Commands []Command
}

// Op identifies a command.
type Op int

const (
	OpDown   Op = iota + 1 // begin a stroke at Point
	OpMove                 // extend the stroke to Point
	OpUp                   // commit the stroke
	OpCancel               // drop the stroke
	OpWidth                // pen width = Value
	OpColor                // pen color = Color
	OpAlpha                // pen opacity = Value
	OpUndo
	OpRedo
)

var opNames = map[Op]string{
	OpDown: "down", OpMove: "move", OpUp: "up", OpCancel: "cancel",
	OpWidth: "width", OpColor: "color", OpAlpha: "alpha",
	OpUndo: "undo", OpRedo: "redo",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Command is one parsed line. Only the field matching Op is meaningful.
type Command struct {
	Op     Op
	Point  stroke.Point
	Value  float32
	Color  stroke.Color
	LineNo int // 1-based source line, 0 for recorded commands
}

// Error represents a parse error with position context.

type Error struct {
	Line    int
	Column  int
	Message string
}

func (e Error) Error() string { return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message) }
