/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package mathtext

import (
	"regexp"
	"strings"

	"mathcanvas/internal/domain"
)

var (
	reFrac   = regexp.MustCompile(`^\\frac\{([^{}]*)\}\{([^{}]*)\}$`)
	reMatrix = regexp.MustCompile(`^\\matrix\{(.*)\}$`)
)

// ParseManual interprets text typed into the manual input:
//   - \frac{A}{B}             -> fraction A over B
//   - \matrix{a,b;c,d}        -> matrix, rows split on ';', cells on ','
//   - anything else           -> Format(text) as plain content
//
// Matrix rows are padded or cut to the width of the first row so the result
// is always rectangular. ok is false for blank input.
func ParseManual(text string) (kind domain.Kind, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Kind{}, false
	}
	if m := reFrac.FindStringSubmatch(text); m != nil {
		return domain.Fraction(strings.TrimSpace(m[1]), strings.TrimSpace(m[2])), true
	}
	if m := reMatrix.FindStringSubmatch(text); m != nil {
		if rows := parseRows(m[1]); len(rows) > 0 {
			return domain.Matrix(rows), true
		}
	}
	return domain.Plain(Format(text)), true
}

// ParseRows reads "a,b;c,d" cell notation into a rectangular grid.
func ParseRows(s string) [][]string { return parseRows(s) }

func parseRows(s string) [][]string {
	var rows [][]string
	for _, r := range strings.Split(s, ";") {
		if strings.TrimSpace(r) == "" {
			continue
		}
		cells := strings.Split(r, ",")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil
	}
	cols := len(rows[0])
	for i, r := range rows {
		switch {
		case len(r) > cols:
			rows[i] = r[:cols]
		case len(r) < cols:
			rows[i] = append(r, make([]string, cols-len(r))...)
		}
	}
	return rows
}

var brackets = [][2]string{
	{"(", ")"},
	{"[", "]"},
	{"{", "}"},
	{"⟨", "⟩"},
	{"|", "|"},
	{"‖", "‖"},
}

// BracketPair resolves either side of a bracket to its open/close pair.
func BracketPair(ch string) (open, close string, ok bool) {
	for _, p := range brackets {
		if ch == p[0] || ch == p[1] {
			return p[0], p[1], true
		}
	}
	return "", "", false
}

var (
	arithmeticSymbols = strings.NewReplacer("×", "*", "÷", "/", "−", "-")
	reDigitPower      = regexp.MustCompile(`\^(\d+)`)
)

// ToArithmetic rewrites display symbols into evaluator syntax:
// × -> *, ÷ -> /, − -> -, and ^N -> **N for digit exponents.
func ToArithmetic(text string) string {
	text = arithmeticSymbols.Replace(text)
	return reDigitPower.ReplaceAllString(text, "**$1")
}
