/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the document model of the math canvas: positioned symbol
// elements and the detached snapshots the history log keeps of them.

import (
	"strings"
	"time"
)

// ID identifies an element. IDs are assigned monotonically and never reused.
type ID int

// Position is a point in document space. No canvas clamp applies.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p shifted by dx,dy.
func (p Position) Add(dx, dy float64) Position { return Position{X: p.X + dx, Y: p.Y + dy} }

const (
	KindPlain    = "plain"
	KindFraction = "fraction"
	KindMatrix   = "matrix"
)

// Kind is the content variant of an element. Only the fields relevant to Type are set.
type Kind struct {
	Type        string     `json:"type"` // plain, fraction, matrix
	Text        string     `json:"text,omitempty"`
	Numerator   string     `json:"numerator,omitempty"`
	Denominator string     `json:"denominator,omitempty"`
	Rows        [][]string `json:"rows,omitempty"`
}

func Plain(text string) Kind { return Kind{Type: KindPlain, Text: text} }

func Fraction(num, den string) Kind {
	return Kind{Type: KindFraction, Numerator: num, Denominator: den}
}

// Matrix copies rows so the caller can keep mutating its slices.
func Matrix(rows [][]string) Kind { return Kind{Type: KindMatrix, Rows: copyRows(rows)} }

// Clone returns a deep copy.
func (k Kind) Clone() Kind {
	k.Rows = copyRows(k.Rows)
	return k
}

// Flatten renders the content as a single line of text. Compound kinds keep
// enough structure for the text to read (and evaluate) sensibly:
// a fraction becomes "(num)/(den)", a matrix "[a,b;c,d]".
func (k Kind) Flatten() string {
	switch k.Type {
	case KindFraction:
		return "(" + k.Numerator + ")/(" + k.Denominator + ")"
	case KindMatrix:
		rows := make([]string, len(k.Rows))
		for i, r := range k.Rows {
			rows[i] = strings.Join(r, ",")
		}
		return "[" + strings.Join(rows, ";") + "]"
	default:
		return k.Text
	}
}

// Equal compares kinds by value.
func (k Kind) Equal(o Kind) bool {
	if k.Type != o.Type || k.Text != o.Text || k.Numerator != o.Numerator || k.Denominator != o.Denominator {
		return false
	}
	if len(k.Rows) != len(o.Rows) {
		return false
	}
	for i := range k.Rows {
		if len(k.Rows[i]) != len(o.Rows[i]) {
			return false
		}
		for j := range k.Rows[i] {
			if k.Rows[i][j] != o.Rows[i][j] {
				return false
			}
		}
	}
	return true
}

// Element is one placed symbol or compound unit.
type Element struct {
	ID       ID       `json:"id"`
	Kind     Kind     `json:"content"`
	Position Position `json:"position"`
}

// Text is the flattened text content of the element.
func (e Element) Text() string { return e.Kind.Flatten() }

func (e Element) Clone() Element {
	e.Kind = e.Kind.Clone()
	return e
}

func (e Element) Equal(o Element) bool {
	return e.ID == o.ID && e.Position == o.Position && e.Kind.Equal(o.Kind)
}

// Snapshot is an immutable, detached copy of a document at one instant.
// It never shares slices with the live store.
type Snapshot struct {
	elements []Element
	TS       time.Time
}

// NewSnapshot deep-copies elems.
func NewSnapshot(elems []Element, ts time.Time) Snapshot {
	return Snapshot{elements: cloneAll(elems), TS: ts}
}

// Elements returns a fresh copy of the captured elements.
func (s Snapshot) Elements() []Element { return cloneAll(s.elements) }

func (s Snapshot) Len() int { return len(s.elements) }

// Equal reports whether both snapshots hold the same elements in the same order.
// Timestamps are ignored.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.elements) != len(o.elements) {
		return false
	}
	for i := range s.elements {
		if !s.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}

func cloneAll(elems []Element) []Element {
	if elems == nil {
		return nil
	}
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}

func copyRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
