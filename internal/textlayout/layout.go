/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package textlayout measures element content and lays out the parts of
// compound elements (fraction lines, matrix cells and brackets) so that
// exporters can draw them without knowing about element kinds.
package textlayout

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"mathcanvas/internal/domain"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string
	SizePt float64
}

// Metrics are font metrics in pixels for a resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// LineHeight is ascent plus descent.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent }

// Provider maps a FontSpec to a concrete face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider always returns basicfont.Face7x13. It ignores the size and
// gives deterministic measurements.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	return f, metricsOf(f)
}

func metricsOf(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float64(m.Ascent.Round()),
		Descent: float64(m.Descent.Round()),
		LineGap: float64(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Measure returns the advance width and line height of text.
func Measure(p Provider, spec FontSpec, text string) (w, h float64) {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(spec)
	d := &font.Drawer{Face: face}
	return advance(d, text), met.LineHeight()
}

func advance(d *font.Drawer, s string) float64 {
	return float64(d.MeasureString(s)) / 64
}

// Run is text drawn with its baseline at (X, Y), relative to the box origin.
type Run struct {
	Text string
	X, Y float64
}

// Segment is a straight stroke relative to the box origin.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Box is the laid out content of one element. The origin is the element's
// top-left corner.
type Box struct {
	W, H     float64
	Runs     []Run
	Segments []Segment
}

// Scale returns a copy of b with every coordinate multiplied by s.
func (b Box) Scale(s float64) Box {
	out := Box{W: b.W * s, H: b.H * s}
	out.Runs = make([]Run, len(b.Runs))
	for i, r := range b.Runs {
		out.Runs[i] = Run{Text: r.Text, X: r.X * s, Y: r.Y * s}
	}
	out.Segments = make([]Segment, len(b.Segments))
	for i, sg := range b.Segments {
		out.Segments[i] = Segment{X0: sg.X0 * s, Y0: sg.Y0 * s, X1: sg.X1 * s, Y1: sg.Y1 * s}
	}
	return out
}

// Spacing between the parts of compound elements, in face pixels.
const (
	fracGap    = 2.0 // between a fraction line and its text
	fracPad    = 2.0 // fraction line overhang
	cellGap    = 8.0 // between matrix columns
	rowGap     = 2.0 // between matrix rows
	bracketPad = 4.0 // between matrix brackets and cells
	bracketArm = 3.0 // length of bracket serifs
)

// Layout lays out one element kind with the face resolved for spec.
func Layout(p Provider, spec FontSpec, k domain.Kind) Box {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(spec)
	d := &font.Drawer{Face: face}
	lineH := met.LineHeight()

	switch k.Type {
	case domain.KindFraction:
		nw, dw := advance(d, k.Numerator), advance(d, k.Denominator)
		w := math.Max(nw, dw) + 2*fracPad
		barY := lineH + fracGap
		return Box{
			W: w,
			H: 2*lineH + 2*fracGap,
			Runs: []Run{
				{Text: k.Numerator, X: (w - nw) / 2, Y: met.Ascent},
				{Text: k.Denominator, X: (w - dw) / 2, Y: barY + fracGap + met.Ascent},
			},
			Segments: []Segment{{X0: 0, Y0: barY, X1: w, Y1: barY}},
		}
	case domain.KindMatrix:
		return layoutMatrix(d, met, k.Rows)
	default:
		return Box{W: advance(d, k.Text), H: lineH, Runs: []Run{{Text: k.Text, X: 0, Y: met.Ascent}}}
	}
}

func layoutMatrix(d *font.Drawer, met Metrics, rows [][]string) Box {
	lineH := met.LineHeight()
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	colW := make([]float64, cols)
	for _, r := range rows {
		for c := 0; c < cols && c < len(r); c++ {
			colW[c] = math.Max(colW[c], advance(d, r[c]))
		}
	}
	inner := 0.0
	for c, w := range colW {
		if c > 0 {
			inner += cellGap
		}
		inner += w
	}
	h := float64(len(rows))*lineH + float64(max(len(rows)-1, 0))*rowGap
	w := inner + 2*bracketPad

	var b Box
	b.W, b.H = w, h
	y := 0.0
	for _, r := range rows {
		x := bracketPad
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(r) {
				cell = r[c]
			}
			cw := advance(d, cell)
			b.Runs = append(b.Runs, Run{Text: cell, X: x + (colW[c]-cw)/2, Y: y + met.Ascent})
			x += colW[c] + cellGap
		}
		y += lineH + rowGap
	}
	b.Segments = []Segment{
		{X0: 0, Y0: 0, X1: 0, Y1: h},
		{X0: 0, Y0: 0, X1: bracketArm, Y1: 0},
		{X0: 0, Y0: h, X1: bracketArm, Y1: h},
		{X0: w, Y0: 0, X1: w, Y1: h},
		{X0: w - bracketArm, Y0: 0, X1: w, Y1: 0},
		{X0: w - bracketArm, Y0: h, X1: w, Y1: h},
	}
	return b
}
