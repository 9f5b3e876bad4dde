/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package history

import (
	"sync"
	"testing"

	"drawpad/internal/stroke"
)

func TestLockedDelegates(t *testing.T) {
	l := NewLocked(newTestEngine())
	if err := l.BeginStroke(stroke.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	_ = l.ExtendStroke(stroke.Pt(1, 0))
	if _, err := l.EndStroke(); err != nil {
		t.Fatal(err)
	}
	if !l.CanUndo() || l.CanRedo() {
		t.Fatalf("unexpected undo/redo flags")
	}
	l.Undo()
	if !l.CanRedo() {
		t.Fatalf("expected redo after undo")
	}
	l.Redo()
	if st := l.Stats(); st.Committed != 1 || st.Redoable != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
	l.SetColor(stroke.Blue)
	if l.Style().Color != stroke.Blue || l.State() != Idle {
		t.Fatalf("unexpected style/state")
	}
	_ = l.BeginStroke(stroke.Pt(0, 0))
	if !l.CancelStroke() {
		t.Fatalf("cancel should report true")
	}
}

func TestLockedSubscriberMaySnapshot(t *testing.T) {
	l := NewLocked(newTestEngine())
	var frames []Frame
	l.Subscribe(func(c Change) {
		if c.Kind == ChangeCommit {
			frames = append(frames, l.Snapshot())
		}
	})
	_ = l.BeginStroke(stroke.Pt(0, 0))
	_ = l.ExtendStroke(stroke.Pt(1, 1))
	_, _ = l.EndStroke()
	if len(frames) != 1 || len(frames[0].Strokes) != 1 {
		t.Fatalf("expected one frame with one stroke, got %d", len(frames))
	}
}

func TestLockedConcurrentUse(t *testing.T) {
	l := NewLocked(newTestEngine())
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				// protocol errors are expected when goroutines interleave
				if l.BeginStroke(stroke.Pt(float32(g), float32(i))) == nil {
					_ = l.ExtendStroke(stroke.Pt(float32(g), float32(i+1)))
					_, _ = l.EndStroke()
				}
				if i%7 == 0 {
					l.Undo()
				}
				_ = l.Snapshot()
			}
		}(g)
	}
	wg.Wait()
	st := l.Stats()
	if st.Drawing {
		t.Fatalf("all strokes should have ended")
	}
}

func TestLockedReleasesLockWhenEnginePanics(t *testing.T) {
	e := newTestEngine()
	armed := true
	e.Subscribe(func(c Change) {
		if armed && c.Kind == ChangeStyle {
			panic("subscriber failure")
		}
	})
	l := NewLocked(e)
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected the panic to propagate")
			}
		}()
		l.SetWidth(3)
	}()
	armed = false
	if l.Style().Width != 3 {
		t.Fatalf("lock not released or state lost after panic")
	}
}

func TestLockedDeliversInMutationOrder(t *testing.T) {
	l := NewLocked(newTestEngine())
	var mu sync.Mutex
	var got []ChangeKind
	entered := make(chan struct{})
	release := make(chan struct{})
	l.Subscribe(func(c Change) {
		if c.Kind == ChangeBegin {
			close(entered)
			<-release
		}
		mu.Lock()
		got = append(got, c.Kind)
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		_ = l.BeginStroke(stroke.Pt(0, 0))
		close(done)
	}()
	<-entered
	// The first goroutine is still delivering; this change queues behind it.
	l.SetWidth(4)
	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != ChangeBegin || got[1] != ChangeStyle {
		t.Fatalf("changes delivered out of order: %v", got)
	}
}

func TestLockedSubscriberMayMutate(t *testing.T) {
	l := NewLocked(newTestEngine())
	var got []ChangeKind
	l.Subscribe(func(c Change) {
		got = append(got, c.Kind)
		if c.Kind == ChangeCommit {
			l.SetAlpha(0.5)
		}
	})
	_ = l.BeginStroke(stroke.Pt(0, 0))
	_ = l.ExtendStroke(stroke.Pt(1, 0))
	_, _ = l.EndStroke()
	want := []ChangeKind{ChangeBegin, ChangeExtend, ChangeCommit, ChangeStyle}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if l.Style().Alpha != 0.5 {
		t.Fatalf("mutation from subscriber lost")
	}
}

func TestLockedKeepsDeliveringAfterSubscriberPanic(t *testing.T) {
	l := NewLocked(newTestEngine())
	armed := true
	n := 0
	l.Subscribe(func(c Change) {
		n++
		if armed {
			panic("subscriber failure")
		}
	})
	func() {
		defer func() { _ = recover() }()
		l.SetWidth(2)
	}()
	armed = false
	l.SetWidth(3)
	if n != 2 {
		t.Fatalf("expected delivery to resume after a panic, got %d calls", n)
	}
}
