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
	"sync"

	"drawpad/internal/history"
	"drawpad/internal/stroke"
)

// Recorder turns the changes of a surface back into script commands, so an
// interactive session can be saved and replayed.
type Recorder struct {
	mu     sync.Mutex
	cmds   []Command
	style  stroke.PathStyle
	cancel func()
}

// Record starts recording changes made to s from now on. The live pen is
// written first in full, so the script replays the same on any engine.
func Record(s history.Surface) *Recorder {
	st := s.Style()
	r := &Recorder{style: st, cmds: penCommands(st, st, true)}
	r.cancel = s.Subscribe(r.observe)
	return r
}

func (r *Recorder) observe(c history.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch c.Kind {
	case history.ChangeBegin:
		r.cmds = append(r.cmds, Command{Op: OpDown, Point: c.Point})
	case history.ChangeExtend:
		r.cmds = append(r.cmds, Command{Op: OpMove, Point: c.Point})
	case history.ChangeCommit:
		r.cmds = append(r.cmds, Command{Op: OpUp})
	case history.ChangeCancel:
		r.cmds = append(r.cmds, Command{Op: OpCancel})
	case history.ChangeUndo:
		r.cmds = append(r.cmds, Command{Op: OpUndo})
	case history.ChangeRedo:
		r.cmds = append(r.cmds, Command{Op: OpRedo})
	case history.ChangeStyle:
		r.cmds = append(r.cmds, penCommands(r.style, c.Style, false)...)
		r.style = c.Style
	}
}

// Stop detaches the recorder. It is safe to call more than once.
func (r *Recorder) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Script returns what has been recorded so far.
func (r *Recorder) Script(name string) Script {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Script{Name: name, Commands: append([]Command(nil), r.cmds...)}
}
