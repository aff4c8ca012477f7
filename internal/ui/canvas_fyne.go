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
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"mathcanvas/internal/domain"
	"mathcanvas/internal/editor"
	"mathcanvas/internal/vector"
)

var (
	colBackground = color.RGBA{R: 250, G: 250, B: 247, A: 255}
	colInk        = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colSelection  = color.RGBA{R: 0, G: 170, B: 255, A: 255}
	colGuide      = color.RGBA{R: 255, G: 0, B: 170, A: 200}
)

// MathCanvas draws the document and turns pointer input into editor calls.
// Tap toggles selection, dragging an element drags the selection (or just
// that element when it is not selected), dragging the background pans and
// the wheel zooms.
type MathCanvas struct {
	widget.BaseWidget
	ed   *editor.Editor
	view View

	guides  []vector.GuideLine
	mode    dragMode
	changed func()
}

type dragMode int

const (
	dragNone dragMode = iota
	dragPan
	dragMove
)

// NewMathCanvas returns a canvas over ed. onChange runs after every
// mutation or view change, on the UI goroutine.
func NewMathCanvas(ed *editor.Editor, view View, onChange func()) *MathCanvas {
	mc := &MathCanvas{ed: ed, view: view, changed: onChange}
	mc.ExtendBaseWidget(mc)
	return mc
}

func (m *MathCanvas) View() View { return m.view }

func (m *MathCanvas) SetView(v View) {
	m.view = v
	m.Update()
}

// Update redraws and notifies the owner.
func (m *MathCanvas) Update() {
	m.Refresh()
	if m.changed != nil {
		m.changed()
	}
}

// CenterDoc is the document point at the middle of the visible area.
func (m *MathCanvas) CenterDoc() domain.Position {
	sz := m.Size()
	return m.view.ToDoc(vector.Pt{X: float64(sz.Width) / 2, Y: float64(sz.Height) / 2})
}

func (m *MathCanvas) MinSize() fyne.Size { return fyne.NewSize(640, 420) }

func (m *MathCanvas) Tapped(e *fyne.PointEvent) {
	if id, ok := m.view.HitTest(m.ed.Elements(), ptOf(e.Position)); ok {
		m.ed.Toggle(id)
	} else {
		m.ed.ClearSelection()
	}
	m.Update()
}

func (m *MathCanvas) Dragged(e *fyne.DragEvent) {
	if m.mode == dragNone {
		m.mode = dragPan
		start := vector.Pt{X: float64(e.Position.X - e.Dragged.DX), Y: float64(e.Position.Y - e.Dragged.DY)}
		if id, ok := m.view.HitTest(m.ed.Elements(), start); ok {
			ids := []domain.ID{id}
			if m.ed.IsSelected(id) {
				ids = m.ed.Selected()
			}
			if m.ed.BeginDrag(ids...) {
				m.mode = dragMove
			}
		}
	}
	switch m.mode {
	case dragMove:
		dx, dy := m.view.ToDocDelta(float64(e.Dragged.DX), float64(e.Dragged.DY))
		m.guides = m.ed.DragBy(dx, dy)
		m.Refresh()
	case dragPan:
		m.view.Pan(float64(e.Dragged.DX), float64(e.Dragged.DY))
		m.Refresh()
	}
}

func (m *MathCanvas) DragEnd() {
	if m.mode == dragMove {
		m.ed.EndDrag()
	}
	m.mode = dragNone
	m.guides = nil
	m.Update()
}

// Scrolled zooms; fyne does not report modifiers on scroll events.
func (m *MathCanvas) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY > 0 {
		m.view.ZoomIn()
	} else if e.Scrolled.DY < 0 {
		m.view.ZoomOut()
	}
	m.Update()
}

func (m *MathCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &mathCanvasRenderer{mc: m, bg: canvas.NewRectangle(colBackground)}
	r.rebuild()
	return r
}

func ptOf(p fyne.Position) vector.Pt { return vector.Pt{X: float64(p.X), Y: float64(p.Y)} }

func posOf(p vector.Pt) fyne.Position { return fyne.NewPos(float32(p.X), float32(p.Y)) }

type mathCanvasRenderer struct {
	mc      *MathCanvas
	bg      *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *mathCanvasRenderer) Destroy()                     {}
func (r *mathCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *mathCanvasRenderer) MinSize() fyne.Size           { return r.mc.MinSize() }

func (r *mathCanvasRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.mc.Size())
	canvas.Refresh(r.mc)
}

func (r *mathCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
}

// rebuild recreates the drawables from the document; element counts are
// small enough that diffing is not worth it.
func (r *mathCanvasRenderer) rebuild() {
	m := r.mc
	v := m.view
	objs := []fyne.CanvasObject{r.bg}
	for _, el := range m.ed.Elements() {
		origin := v.ToScreen(el.Position)
		box := v.Box(el.Kind).Scale(v.Zoom)
		for _, run := range box.Runs {
			t := canvas.NewText(run.Text, colInk)
			t.TextSize = float32(v.FontSize * v.Zoom)
			// canvas.Text is positioned by its top-left corner, runs by baseline
			t.Move(fyne.NewPos(float32(origin.X+run.X), float32(origin.Y+run.Y)-t.TextSize))
			objs = append(objs, t)
		}
		for _, s := range box.Segments {
			ln := canvas.NewLine(colInk)
			ln.StrokeWidth = 1
			ln.Position1 = fyne.NewPos(float32(origin.X+s.X0), float32(origin.Y+s.Y0))
			ln.Position2 = fyne.NewPos(float32(origin.X+s.X1), float32(origin.Y+s.Y1))
			objs = append(objs, ln)
		}
		if m.ed.IsSelected(el.ID) {
			rc := v.Rect(el)
			sel := canvas.NewRectangle(color.Transparent)
			sel.StrokeColor = colSelection
			sel.StrokeWidth = 1
			sel.Move(posOf(v.ToScreen(domain.Position{X: rc.X - 2, Y: rc.Y - 2})))
			sel.Resize(fyne.NewSize(float32((rc.W+4)*v.Zoom), float32((rc.H+4)*v.Zoom)))
			objs = append(objs, sel)
		}
	}
	for _, g := range m.guides {
		ln := canvas.NewLine(colGuide)
		ln.StrokeWidth = 1
		ln.Position1 = posOf(v.ToScreen(g.From.Position()))
		ln.Position2 = posOf(v.ToScreen(g.To.Position()))
		objs = append(objs, ln)
	}
	r.objects = objs
}
