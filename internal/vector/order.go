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

import (
	"math"

	"mathcanvas/internal/domain"
)

// RowBand is the vertical tolerance within which two elements read as the
// same visual line.
const RowBand = 20.0

// CompareReading orders a before b (negative), after b (positive) or equal (0).
// Elements whose tops differ by less than RowBand compare by left coordinate,
// all others by top. The relation is not transitive across a chain of
// elements spanning more than one band.
func CompareReading(a, b domain.Position) float64 {
	if math.Abs(a.Y-b.Y) < RowBand {
		return a.X - b.X
	}
	return a.Y - b.Y
}

// OrderForReading returns a copy of elems in reading order. The result
// depends on the input order whenever the comparator is not transitive, so
// callers pass elements in selection order. The sort extends the leading
// natural run with binary insertion at every size, so chained row bands
// resolve the same way however many other elements are present.
func OrderForReading(elems []domain.Element) []domain.Element {
	out := make([]domain.Element, len(elems))
	copy(out, elems)
	n := len(out)
	if n < 2 {
		return out
	}
	cmp := func(a, b domain.Element) float64 { return CompareReading(a.Position, b.Position) }
	run := makeRun(out, cmp)
	binaryInsertion(out, run, cmp)
	return out
}

// makeRun finds the leading ascending (or strictly descending, then reversed) run.
func makeRun(a []domain.Element, cmp func(a, b domain.Element) float64) int {
	run := 2
	descending := cmp(a[1], a[0]) < 0
	prev := a[1]
	for i := 2; i < len(a); i++ {
		order := cmp(a[i], prev)
		if descending {
			if order >= 0 {
				break
			}
		} else if order < 0 {
			break
		}
		prev = a[i]
		run++
	}
	if descending {
		for i, j := 0, run-1; i < j; i, j = i+1, j-1 {
			a[i], a[j] = a[j], a[i]
		}
	}
	return run
}

// binaryInsertion inserts a[start:] into the sorted prefix a[:start].
// Equal elements go after existing ones, which keeps the sort stable.
func binaryInsertion(a []domain.Element, start int, cmp func(a, b domain.Element) float64) {
	for ; start < len(a); start++ {
		pivot := a[start]
		left, right := 0, start
		for left < right {
			mid := left + (right-left)/2
			if cmp(pivot, a[mid]) < 0 {
				right = mid
			} else {
				left = mid + 1
			}
		}
		copy(a[left+1:start+1], a[left:start])
		a[left] = pivot
	}
}

// AlignMode selects how Align moves elements.
type AlignMode string

const (
	AlignLeft   AlignMode = "left"   // x := min x
	AlignCenter AlignMode = "center" // x := mean x
	AlignTop    AlignMode = "top"    // y := min y
	AlignMiddle AlignMode = "middle" // y := mean y
)

// ParseAlignMode accepts the mode names above.
func ParseAlignMode(s string) (AlignMode, bool) {
	switch m := AlignMode(s); m {
	case AlignLeft, AlignCenter, AlignTop, AlignMiddle:
		return m, true
	}
	return "", false
}

// Align returns copies of elems with positions aligned per mode.
// An empty input or unknown mode yields nil.
func Align(elems []domain.Element, mode AlignMode) []domain.Element {
	b, ok := Bounds(elems)
	if !ok {
		return nil
	}
	c, _ := Centroid(elems)
	out := make([]domain.Element, len(elems))
	for i, e := range elems {
		e = e.Clone()
		switch mode {
		case AlignLeft:
			e.Position.X = b.X
		case AlignCenter:
			e.Position.X = c.X
		case AlignTop:
			e.Position.Y = b.Y
		case AlignMiddle:
			e.Position.Y = c.Y
		default:
			return nil
		}
		out[i] = e
	}
	return out
}
