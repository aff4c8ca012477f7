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

// These tests exercise the fyne canvas widget. They are gated behind the
// "fyne" build tag so headless CI does not need a display:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"

	"mathcanvas/internal/domain"
	"mathcanvas/internal/editor"
	applog "mathcanvas/internal/log"
)

func newTestCanvas(t *testing.T) (*MathCanvas, *editor.Editor, *int) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	ed := editor.New(editor.Options{Logger: applog.Discard()})
	calls := 0
	mc := NewMathCanvas(ed, NewView(13), func() { calls++ })
	mc.Resize(fyne.NewSize(640, 420))
	return mc, ed, &calls
}

func TestMathCanvasRendersElements(t *testing.T) {
	mc, ed, _ := newTestCanvas(t)
	ed.InsertText("x", domain.Position{X: 10, Y: 10})
	ed.Insert(domain.Fraction("1", "2"), domain.Position{X: 60, Y: 10})
	r := test.WidgetRenderer(mc)
	r.Refresh()
	var texts, lines int
	for _, o := range r.Objects() {
		switch o.(type) {
		case *canvas.Text:
			texts++
		case *canvas.Line:
			lines++
		}
	}
	if texts != 3 || lines != 1 {
		t.Fatalf("got %d texts and %d lines, want 3 and 1", texts, lines)
	}
}

func TestMathCanvasTapTogglesSelection(t *testing.T) {
	mc, ed, calls := newTestCanvas(t)
	id := ed.InsertText("x", domain.Position{X: 10, Y: 10})
	mc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(12, 15)})
	if !ed.IsSelected(id) {
		t.Fatalf("tap should select the element")
	}
	mc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(300, 300)})
	if ed.IsSelected(id) {
		t.Fatalf("tapping the background should clear the selection")
	}
	if *calls != 2 {
		t.Fatalf("expected 2 change notifications, got %d", *calls)
	}
}

func TestMathCanvasDragMovesElementWithOneSnapshot(t *testing.T) {
	mc, ed, _ := newTestCanvas(t)
	id := ed.InsertText("x", domain.Position{X: 10, Y: 10})
	before, _ := ed.Stats()
	for i := 0; i < 3; i++ {
		mc.Dragged(&fyne.DragEvent{
			PointEvent: fyne.PointEvent{Position: fyne.NewPos(float32(12+5*(i+1)), 15)},
			Dragged:    fyne.Delta{DX: 5},
		})
	}
	mc.DragEnd()
	el, _ := ed.Get(id)
	if el.Position.X != 25 {
		t.Fatalf("got x=%v want 25", el.Position.X)
	}
	if after, _ := ed.Stats(); after != before+1 {
		t.Fatalf("drag should add one snapshot: %d -> %d", before, after)
	}
}

func TestMathCanvasBackgroundDragPans(t *testing.T) {
	mc, ed, _ := newTestCanvas(t)
	ed.InsertText("x", domain.Position{X: 10, Y: 10})
	before, _ := ed.Stats()
	mc.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(400, 300)}, Dragged: fyne.Delta{DX: 20, DY: 10}})
	mc.DragEnd()
	if v := mc.View(); v.OffsetX != 20 || v.OffsetY != 10 {
		t.Fatalf("unexpected offset %v,%v", v.OffsetX, v.OffsetY)
	}
	if after, _ := ed.Stats(); after != before {
		t.Fatalf("panning must not touch history")
	}
}

func TestMathCanvasScrollZooms(t *testing.T) {
	mc, _, _ := newTestCanvas(t)
	mc.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 1}})
	if z := mc.View().Zoom; !almostEqual(z, 1.1, 1e-9) {
		t.Fatalf("got zoom %v", z)
	}
}
