/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"mathcanvas/internal/domain"
)

func TestMeasure_Deterministic(t *testing.T) {
	w, h := Measure(BasicProvider{}, FontSpec{}, "abc")
	if w != 21 || h != 13 {
		t.Fatalf("Measure = %v x %v, want 21 x 13", w, h)
	}
	if w2, _ := Measure(nil, FontSpec{}, "αβγ"); w2 != w {
		t.Fatalf("basic face should be monospace across scripts: %v vs %v", w2, w)
	}
}

func TestLayoutPlain(t *testing.T) {
	b := Layout(BasicProvider{}, FontSpec{}, domain.Plain("x+1"))
	if b.W != 21 || b.H != 13 || len(b.Runs) != 1 || b.Runs[0].Y != 11 || len(b.Segments) != 0 {
		t.Fatalf("unexpected box %+v", b)
	}
}

func TestLayoutFraction(t *testing.T) {
	b := Layout(BasicProvider{}, FontSpec{}, domain.Fraction("1", "22"))
	if b.W != 18 || b.H != 30 {
		t.Fatalf("box size = %v x %v", b.W, b.H)
	}
	if b.Runs[0].X != 5.5 || b.Runs[1].X != 2 {
		t.Fatalf("runs not centred: %+v", b.Runs)
	}
	if len(b.Segments) != 1 || b.Segments[0].Y0 != 15 || b.Segments[0].X1 != 18 {
		t.Fatalf("fraction line = %+v", b.Segments)
	}
	if b.Runs[1].Y <= b.Segments[0].Y0 {
		t.Fatalf("denominator baseline above the line")
	}
}

func TestLayoutMatrix(t *testing.T) {
	b := Layout(BasicProvider{}, FontSpec{}, domain.Matrix([][]string{{"a", "bb"}, {"c", "d"}}))
	if b.W != 37 || b.H != 28 {
		t.Fatalf("box size = %v x %v, want 37 x 28", b.W, b.H)
	}
	if len(b.Runs) != 4 || len(b.Segments) != 6 {
		t.Fatalf("runs=%d segments=%d", len(b.Runs), len(b.Segments))
	}
	if b.Runs[2].Y != b.Runs[0].Y+15 {
		t.Fatalf("second row baseline = %v", b.Runs[2].Y)
	}
}

func TestBoxScale(t *testing.T) {
	b := Layout(BasicProvider{}, FontSpec{}, domain.Fraction("1", "2")).Scale(2)
	if b.W != 22 || b.H != 60 || b.Segments[0].Y0 != 30 {
		t.Fatalf("scaled box %+v", b)
	}
}

func TestOTProvider(t *testing.T) {
	lib := NewFontLibrary()
	if err := lib.Load("Go", goregular.TTF); err != nil {
		t.Fatalf("load font: %v", err)
	}
	_, met := OTProvider{Lib: lib}.Resolve(FontSpec{Family: "Go", SizePt: 24})
	if met.LineHeight() <= 20 {
		t.Fatalf("24pt line height too small: %+v", met)
	}
	// unknown family falls back to the first loaded font
	_, met2 := OTProvider{Lib: lib}.Resolve(FontSpec{Family: "Nope", SizePt: 24})
	if met2 != met {
		t.Fatalf("fallback family metrics differ: %+v vs %+v", met2, met)
	}
	_, basic := OTProvider{}.Resolve(FontSpec{SizePt: 24})
	if basic.LineHeight() != 13 {
		t.Fatalf("empty library should fall back to the basic face: %+v", basic)
	}
	if err := lib.Load("bad", []byte("not a font")); err == nil {
		t.Fatalf("expected parse error")
	}
}
