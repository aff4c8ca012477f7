/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package mathtext turns typed text into math notation: named-token
// substitution, super/subscripts, the manual insertion grammar, the bracket
// table and the arithmetic normalisation used before evaluation.
package mathtext

import (
	"regexp"
	"strings"
)

// tokens is applied in order with plain replacement. Tokens that are a
// prefix of another (\in of \int and \infty) come after it.
var tokens = []struct{ from, to string }{
	{`\alpha`, "α"},
	{`\beta`, "β"},
	{`\gamma`, "γ"},
	{`\delta`, "δ"},
	{`\epsilon`, "ε"},
	{`\theta`, "θ"},
	{`\lambda`, "λ"},
	{`\mu`, "μ"},
	{`\pi`, "π"},
	{`\sigma`, "σ"},
	{`\phi`, "φ"},
	{`\omega`, "ω"},
	{`\Gamma`, "Γ"},
	{`\Delta`, "Δ"},
	{`\Sigma`, "Σ"},
	{`\Pi`, "Π"},
	{`\Omega`, "Ω"},
	{`\infty`, "∞"},
	{`\sum`, "∑"},
	{`\prod`, "∏"},
	{`\int`, "∫"},
	{`\sqrt`, "√"},
	{`\partial`, "∂"},
	{`\nabla`, "∇"},
	{`\pm`, "±"},
	{`\times`, "×"},
	{`\div`, "÷"},
	{`\cdot`, "·"},
	{`\leq`, "≤"},
	{`\geq`, "≥"},
	{`\neq`, "≠"},
	{`\approx`, "≈"},
	{`\notin`, "∉"},
	{`\in`, "∈"},
	{`\subseteq`, "⊆"},
	{`\subset`, "⊂"},
	{`\cup`, "∪"},
	{`\cap`, "∩"},
	{`\emptyset`, "∅"},
	{`\forall`, "∀"},
	{`\exists`, "∃"},
	{`\rightarrow`, "→"},
	{`\leftarrow`, "←"},
	{`\Rightarrow`, "⇒"},
	{`\Leftrightarrow`, "⇔"},
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'a': 'ᵃ', 'b': 'ᵇ', 'c': 'ᶜ', 'd': 'ᵈ', 'e': 'ᵉ', 'f': 'ᶠ', 'g': 'ᵍ', 'h': 'ʰ', 'i': 'ⁱ', 'j': 'ʲ',
	'k': 'ᵏ', 'l': 'ˡ', 'm': 'ᵐ', 'n': 'ⁿ', 'o': 'ᵒ', 'p': 'ᵖ', 'r': 'ʳ', 's': 'ˢ', 't': 'ᵗ', 'u': 'ᵘ',
	'v': 'ᵛ', 'w': 'ʷ', 'x': 'ˣ', 'y': 'ʸ', 'z': 'ᶻ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'h': 'ₕ', 'i': 'ᵢ', 'j': 'ⱼ', 'k': 'ₖ', 'l': 'ₗ', 'm': 'ₘ', 'n': 'ₙ', 'o': 'ₒ',
	'p': 'ₚ', 'r': 'ᵣ', 's': 'ₛ', 't': 'ₜ', 'u': 'ᵤ', 'v': 'ᵥ', 'x': 'ₓ',
}

var (
	reDigitFraction = regexp.MustCompile(`(\d)/(\d)`)
	reSuperscript   = regexp.MustCompile(`\^(\{[^}]*\}|.)`)
	reSubscript     = regexp.MustCompile(`_(\{[^}]*\}|.)`)
)

// FractionSlash joins digit fractions such as 1⁄2.
const FractionSlash = "⁄"

// Format applies, in this order: the named-token table, digit/digit
// fractions, ^ superscripts and _ subscripts. Later steps see the output of
// earlier ones.
func Format(text string) string {
	for _, t := range tokens {
		text = strings.ReplaceAll(text, t.from, t.to)
	}
	text = reDigitFraction.ReplaceAllString(text, "${1}"+FractionSlash+"${2}")
	text = reSuperscript.ReplaceAllStringFunc(text, func(m string) string {
		return mapScript(m[1:], superscripts)
	})
	text = reSubscript.ReplaceAllStringFunc(text, func(m string) string {
		return mapScript(m[1:], subscripts)
	})
	return text
}

// mapScript converts a single character or a {group}; unmapped runes pass through.
func mapScript(arg string, table map[rune]rune) string {
	if strings.HasPrefix(arg, "{") && strings.HasSuffix(arg, "}") && len(arg) >= 2 {
		arg = arg[1 : len(arg)-1]
	}
	var b strings.Builder
	b.Grow(len(arg) * 3)
	for _, r := range arg {
		if m, ok := table[r]; ok {
			b.WriteRune(m)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
