/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui is the desktop front end. The fyne window lives behind the
// "fyne" build tag; this file holds the presentation state it drives so the
// geometry and prompt sequencing stay testable headless.
package ui

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"mathcanvas/internal/config"
	"mathcanvas/internal/domain"
	"mathcanvas/internal/editor"
	"mathcanvas/internal/textlayout"
	"mathcanvas/internal/vector"
)

// Options configures Run.
type Options struct {
	Config config.AppConfig
	Logger *slog.Logger
}

// Zoom limits. Zoom is presentation state only and never enters history.
const (
	MinZoom  = 0.25
	MaxZoom  = 4.0
	ZoomStep = 0.1
)

// View maps document space to screen space: screen = doc*Zoom + Offset.
type View struct {
	Zoom             float64
	OffsetX, OffsetY float64
	FontSize         float64 // text size in document units
}

func NewView(fontSize float64) View {
	if fontSize <= 0 {
		fontSize = 18
	}
	return View{Zoom: 1, FontSize: fontSize}
}

// SetZoom clamps z to [MinZoom, MaxZoom] and rounds it to the step grid.
func (v *View) SetZoom(z float64) {
	z = math.Round(z/ZoomStep) * ZoomStep
	v.Zoom = math.Min(MaxZoom, math.Max(MinZoom, z))
}

func (v *View) ZoomIn()    { v.SetZoom(v.Zoom + ZoomStep) }
func (v *View) ZoomOut()   { v.SetZoom(v.Zoom - ZoomStep) }
func (v *View) ResetZoom() { v.Zoom = 1 }

// Pan shifts the view by a screen space delta.
func (v *View) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

func (v View) ToScreen(p domain.Position) vector.Pt {
	return vector.Pt{X: p.X*v.Zoom + v.OffsetX, Y: p.Y*v.Zoom + v.OffsetY}
}

func (v View) ToDoc(p vector.Pt) domain.Position {
	return domain.Position{X: (p.X - v.OffsetX) / v.Zoom, Y: (p.Y - v.OffsetY) / v.Zoom}
}

// ToDocDelta converts a screen drag delta to document units.
func (v View) ToDocDelta(dx, dy float64) (float64, float64) { return dx / v.Zoom, dy / v.Zoom }

// Box lays out an element in document units.
func (v View) Box(k domain.Kind) textlayout.Box {
	p := textlayout.BasicProvider{}
	_, met := p.Resolve(textlayout.FontSpec{})
	return textlayout.Layout(p, textlayout.FontSpec{}, k).Scale(v.FontSize / met.LineHeight())
}

// Rect is the element's document space extent.
func (v View) Rect(el domain.Element) vector.Rect {
	b := v.Box(el.Kind)
	return vector.R(el.Position.X, el.Position.Y, math.Max(b.W, v.FontSize/2), b.H)
}

// HitTest returns the top-most element under a screen point; later ids are
// drawn on top.
func (v View) HitTest(elems []domain.Element, screen vector.Pt) (domain.ID, bool) {
	doc := vector.PtOf(v.ToDoc(screen))
	for i := len(elems) - 1; i >= 0; i-- {
		if v.Rect(elems[i]).Contains(doc) {
			return elems[i].ID, true
		}
	}
	return 0, false
}

// PaletteGroup is one row of insertable symbols.
type PaletteGroup struct {
	Name    string
	Symbols []string
}

// Palette lists the symbols offered for insertion.
var Palette = []PaletteGroup{
	{"Digits", strings.Split("0 1 2 3 4 5 6 7 8 9 .", " ")},
	{"Operators", []string{"+", "−", "×", "÷", "=", "^2", "√", "±", "%"}},
	{"Greek", []string{"α", "β", "γ", "δ", "θ", "λ", "μ", "π", "σ", "ω"}},
	{"Relations", []string{"≠", "≈", "≤", "≥", "<", ">"}},
	{"Calculus", []string{"∑", "∫", "∂", "∞", "lim", "dx"}},
	{"Variables", []string{"x", "y", "z", "n", "a", "b"}},
}

// Brackets offered by the wrap buttons.
var Brackets = []string{"(", "[", "{", "⟨", "|", "‖"}

// StatusLine summarises the editor for the status bar.
func StatusLine(ed *editor.Editor, v View) string {
	n, cur := ed.Stats()
	return fmt.Sprintf("Elements: %d  Selected: %d  History: %d/%d  Zoom: %d%%",
		ed.Len(), len(ed.Selected()), cur+1, n, int(math.Round(v.Zoom*100)))
}

// Builder names the prompt sequences the UI collects before running an
// editor builder.
type Builder int

const (
	BuildFraction Builder = iota
	BuildMatrix
)

// NextPrompt returns the label of the next question for b given the answers
// so far, or ok=false when the builder has everything it will ask for. The
// labels match the ones the editor builders use. A blank required answer or
// an unusable dimension ends the sequence early; the builder then reports
// the cancellation or dimension error itself.
func NextPrompt(b Builder, answers []string) (label string, ok bool) {
	for i, a := range answers {
		if strings.TrimSpace(a) == "" && (b == BuildFraction || i < 2) {
			return "", false
		}
	}
	switch b {
	case BuildFraction:
		labels := []string{"Numerator", "Denominator"}
		if len(answers) < len(labels) {
			return labels[len(answers)], true
		}
		return "", false
	case BuildMatrix:
		switch len(answers) {
		case 0:
			return "Rows", true
		case 1:
			return "Columns", true
		}
		rows, err1 := strconv.Atoi(strings.TrimSpace(answers[0]))
		cols, err2 := strconv.Atoi(strings.TrimSpace(answers[1]))
		if err1 != nil || err2 != nil || rows < 1 || cols < 1 || rows > editor.MaxMatrixDim || cols > editor.MaxMatrixDim {
			return "", false
		}
		cell := len(answers) - 2
		if cell >= rows*cols {
			return "", false
		}
		return fmt.Sprintf("Row %d, column %d", cell/cols+1, cell%cols+1), true
	}
	return "", false
}
