/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"strings"

	"mathcanvas/internal/calc"
	"mathcanvas/internal/domain"
	"mathcanvas/internal/mathtext"
	"mathcanvas/internal/vector"
)

// Composition operations consume the selection and replace it with one new
// element placed at the centroid of what was consumed. Each returns the new
// id and true, or false when its precondition does not hold; a false result
// leaves document, selection and history untouched.

// Merge joins the selected texts in reading order with sep. Needs two or more.
func (e *Editor) Merge(sep string) (domain.ID, bool) {
	elems := e.selected()
	if len(elems) < 2 {
		return 0, false
	}
	ordered := vector.OrderForReading(elems)
	return e.replace("merge", elems, domain.Plain(joinTexts(ordered, sep)), centroid(ordered)), true
}

// WrapInBrackets encloses the reading-order text of the selection in the
// bracket pair ch belongs to. Either side of a pair may be given.
func (e *Editor) WrapInBrackets(ch string) (domain.ID, bool) {
	open, closing, ok := mathtext.BracketPair(ch)
	if !ok {
		return 0, false
	}
	elems := e.selected()
	if len(elems) == 0 {
		return 0, false
	}
	ordered := vector.OrderForReading(elems)
	text := open + joinTexts(ordered, "") + closing
	return e.replace("wrap", elems, domain.Plain(text), centroid(ordered)), true
}

// BuildFraction inserts a fraction at pos.
func (e *Editor) BuildFraction(num, den string, pos domain.Position) domain.ID {
	id := e.store.Insert(domain.Fraction(num, den), pos)
	e.commit("fraction", 1)
	return id
}

// FractionFromSelection turns exactly two selected elements into a fraction.
// The one with the smaller y becomes the numerator; on a tie the first
// selected does. The fraction sits at the first selected element's x and
// halfway between the two y values.
func (e *Editor) FractionFromSelection() (domain.ID, bool) {
	elems := e.selected()
	if len(elems) != 2 {
		return 0, false
	}
	first, second := elems[0], elems[1]
	num, den := first, second
	if second.Position.Y < first.Position.Y {
		num, den = second, first
	}
	pos := domain.Position{X: first.Position.X, Y: (first.Position.Y + second.Position.Y) / 2}
	return e.replace("fraction", elems, domain.Fraction(num.Text(), den.Text()), pos), true
}

// BuildMatrix inserts a matrix of cells at pos. The column count is taken
// from the first row; cells is stored as given.
func (e *Editor) BuildMatrix(cells [][]string, pos domain.Position) (domain.ID, bool) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return 0, false
	}
	id := e.store.Insert(domain.Matrix(cells), pos)
	e.log.Debug("matrix", slog.Int("rows", len(cells)), slog.Int("cols", len(cells[0])))
	e.commit("matrix", 1)
	return id, true
}

// Evaluate computes the arithmetic value of the selection in reading order
// and replaces the selection with the result. When the text does not
// evaluate, the selection is merged as text with a trailing "=" instead.
func (e *Editor) Evaluate() (domain.ID, bool) {
	elems := e.selected()
	if len(elems) == 0 {
		return 0, false
	}
	ordered := vector.OrderForReading(elems)
	text := joinTexts(ordered, "")
	pos := centroid(ordered)
	v, err := e.eval.Eval(mathtext.ToArithmetic(text))
	if err != nil {
		e.log.Info("evaluation failed, merging as text", slog.String("expr", text), slog.Any("err", err))
		return e.replace("evaluate_fallback", elems, domain.Plain(text+"="), pos), true
	}
	return e.replace("evaluate", elems, domain.Plain(calc.FormatNumber(v)), pos), true
}

// InsertManual parses typed text (\frac{a}{b}, \matrix{a,b;c,d} or math
// text) and inserts the result at pos. Blank text is a no-op.
func (e *Editor) InsertManual(text string, pos domain.Position) (domain.ID, bool) {
	kind, ok := mathtext.ParseManual(text)
	if !ok {
		return 0, false
	}
	id := e.store.Insert(kind, pos)
	e.commit("manual", 1)
	return id, true
}

// replace removes consumed, inserts kind at pos and commits once.
func (e *Editor) replace(op string, consumed []domain.Element, kind domain.Kind, pos domain.Position) domain.ID {
	for _, el := range consumed {
		e.store.Remove(el.ID)
		e.sel.Deselect(el.ID)
	}
	id := e.store.Insert(kind, pos)
	e.commit(op, len(consumed))
	return id
}

func joinTexts(elems []domain.Element, sep string) string {
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = el.Text()
	}
	return strings.Join(parts, sep)
}

func centroid(elems []domain.Element) domain.Position {
	c, _ := vector.Centroid(elems)
	return c.Position()
}
