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
	"testing"

	"mathcanvas/internal/domain"
)

func ids(elems []domain.Element) []domain.ID {
	out := make([]domain.ID, len(elems))
	for i, e := range elems {
		out[i] = e.ID
	}
	return out
}

func sameIDs(a []domain.ID, b ...domain.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOrderForReading_RowBand(t *testing.T) {
	cases := []struct {
		name string
		in   []domain.Element
		want []domain.ID
	}{
		{"within band orders by left", []domain.Element{el(1, 50, 100), el(2, 10, 115)}, []domain.ID{2, 1}},
		{"outside band orders by top", []domain.Element{el(1, 10, 125), el(2, 50, 100)}, []domain.ID{2, 1}},
		{"exactly band apart orders by top", []domain.Element{el(1, 10, 30), el(2, 10, 10)}, []domain.ID{2, 1}},
		{"two rows", []domain.Element{el(1, 30, 0), el(2, 10, 0), el(3, 0, 50), el(4, 20, 5)}, []domain.ID{2, 4, 1, 3}},
		{"single", []domain.Element{el(9, 0, 0)}, []domain.ID{9}},
	}
	for _, tc := range cases {
		got := ids(OrderForReading(tc.in))
		if !sameIDs(got, tc.want...) {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

// A chain of overlapping bands makes the comparator cyclic; the result then
// depends on the input order and must stay reproducible.
func TestOrderForReading_ChainedBandsDependOnInputOrder(t *testing.T) {
	a, b, c := el(1, 100, 0), el(2, 50, 15), el(3, 0, 30)
	if got := ids(OrderForReading([]domain.Element{a, b, c})); !sameIDs(got, 3, 2, 1) {
		t.Fatalf("a,b,c: got %v", got)
	}
	if got := ids(OrderForReading([]domain.Element{a, c, b})); !sameIDs(got, 1, 3, 2) {
		t.Fatalf("a,c,b: got %v", got)
	}
}

func TestOrderForReading_ChainedBandsIgnoreInputSize(t *testing.T) {
	a, b, c := el(1, 100, 0), el(2, 50, 15), el(3, 0, 30)
	pad := func(head ...domain.Element) []domain.Element {
		in := append([]domain.Element(nil), head...)
		for i := 0; i < 70; i++ {
			in = append(in, el(10+i, 0, float64(1000+i*40)))
		}
		return in
	}
	if got := ids(OrderForReading(pad(a, b, c)))[:3]; !sameIDs(got, 3, 2, 1) {
		t.Fatalf("a,b,c: got %v", got)
	}
	if got := ids(OrderForReading(pad(a, c, b)))[:3]; !sameIDs(got, 1, 3, 2) {
		t.Fatalf("a,c,b: got %v", got)
	}
}

func TestOrderForReading_DoesNotMutateInput(t *testing.T) {
	in := []domain.Element{el(1, 50, 0), el(2, 10, 0)}
	_ = OrderForReading(in)
	if in[0].ID != 1 || in[1].ID != 2 {
		t.Fatalf("input slice reordered")
	}
}

func TestOrderForReading_LargeInputIsRowMajor(t *testing.T) {
	var in []domain.Element
	id := 1
	for row := 4; row >= 0; row-- {
		for col := 19; col >= 0; col-- {
			in = append(in, el(id, float64(col*10), float64(row*40)))
			id++
		}
	}
	out := OrderForReading(in)
	for i := 1; i < len(out); i++ {
		if CompareReading(out[i-1].Position, out[i].Position) > 0 {
			t.Fatalf("out of order at %d: %+v before %+v", i, out[i-1].Position, out[i].Position)
		}
	}
}

func TestAlign(t *testing.T) {
	in := []domain.Element{el(1, 10, 0), el(2, 30, 40), el(3, 50, 80)}
	check := func(mode AlignMode, want func(e domain.Element) bool) {
		t.Helper()
		out := Align(in, mode)
		if len(out) != len(in) {
			t.Fatalf("%s: got %d elements", mode, len(out))
		}
		for _, e := range out {
			if !want(e) {
				t.Fatalf("%s: unexpected position %+v", mode, e.Position)
			}
		}
	}
	check(AlignLeft, func(e domain.Element) bool { return e.Position.X == 10 })
	check(AlignCenter, func(e domain.Element) bool { return e.Position.X == 30 })
	check(AlignTop, func(e domain.Element) bool { return e.Position.Y == 0 })
	check(AlignMiddle, func(e domain.Element) bool { return e.Position.Y == 40 })
	if Align(in, "diagonal") != nil {
		t.Fatalf("unknown mode should yield nil")
	}
	if _, ok := ParseAlignMode("center"); !ok {
		t.Fatalf("center should parse")
	}
}
