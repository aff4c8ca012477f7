/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry in document space. Values are float64 so document
// positions round-trip without loss.

import (
	"math"

	"mathcanvas/internal/domain"
)

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// PtOf converts a document position.
func PtOf(p domain.Position) Pt { return Pt{X: p.X, Y: p.Y} }

// Position converts back to document space.
func (p Pt) Position() domain.Position { return domain.Position{X: p.X, Y: p.Y} }

// Centroid is the arithmetic mean of the element positions.
// ok is false for an empty slice; callers must not use the point then.
func Centroid(elems []domain.Element) (c Pt, ok bool) {
	if len(elems) == 0 {
		return Pt{}, false
	}
	for _, e := range elems {
		c.X += e.Position.X
		c.Y += e.Position.Y
	}
	n := float64(len(elems))
	return Pt{X: c.X / n, Y: c.Y / n}, true
}

// Bounds is the min/max reduction over element positions. Elements are
// points here; renderers add their own glyph extents.
func Bounds(elems []domain.Element) (Rect, bool) {
	if len(elems) == 0 {
		return Rect{}, false
	}
	minX, minY := elems[0].Position.X, elems[0].Position.Y
	maxX, maxY := minX, minY
	for _, e := range elems[1:] {
		minX = math.Min(minX, e.Position.X)
		minY = math.Min(minY, e.Position.Y)
		maxX = math.Max(maxX, e.Position.X)
		maxY = math.Max(maxY, e.Position.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
