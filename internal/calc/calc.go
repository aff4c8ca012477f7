/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package calc evaluates plain arithmetic typed on the canvas. It is a
// best-effort helper: anything that is not numbers, operators and
// parentheses is rejected before it reaches the expression engine.
package calc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

var (
	// ErrUnsupported is returned for input outside the arithmetic subset or
	// input the engine cannot evaluate.
	ErrUnsupported = errors.New("calc: unsupported expression")
	// ErrNotFinite is returned when the result is NaN or infinite.
	ErrNotFinite = errors.New("calc: result is not finite")
)

var (
	allowed = regexp.MustCompile(`^[0-9+\-*/%().\s]+$`)
	number  = regexp.MustCompile(`[0-9.]+`)
)

// floatLiterals writes every integer literal as a float so the engine never
// does (wrapping) int64 arithmetic.
func floatLiterals(text string) string {
	return number.ReplaceAllStringFunc(text, func(n string) string {
		if strings.Contains(n, ".") {
			return n
		}
		return n + ".0"
	})
}

// modPatcher turns a % b into mod(a, b), which accepts floats.
type modPatcher struct{}

func (modPatcher) Visit(node *ast.Node) {
	b, ok := (*node).(*ast.BinaryNode)
	if !ok || b.Operator != "%" {
		return
	}
	ast.Patch(node, &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: "mod"},
		Arguments: []ast.Node{b.Left, b.Right},
	})
}

var mod = expr.Function("mod", func(params ...any) (any, error) {
	return math.Mod(params[0].(float64), params[1].(float64)), nil
}, new(func(float64, float64) float64))

// Evaluator evaluates arithmetic with github.com/expr-lang/expr.
// The zero value is ready to use.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Eval returns the numeric value of text. Power is written as **. All
// arithmetic is done in float64; % keeps the sign of the dividend.
func (e *Evaluator) Eval(text string) (v float64, err error) {
	text = strings.TrimSpace(text)
	if text == "" || !allowed.MatchString(text) {
		return 0, fmt.Errorf("%w: %q", ErrUnsupported, text)
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = 0, fmt.Errorf("%w: %v", ErrUnsupported, r)
		}
	}()
	program, err := expr.Compile(floatLiterals(text), mod, expr.Patch(modPatcher{}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	switch n := out.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case float64:
		v = n
	default:
		return 0, fmt.Errorf("%w: result %T", ErrUnsupported, out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// EvalString evaluates text and renders the result with FormatNumber.
func (e *Evaluator) EvalString(text string) (string, error) {
	v, err := e.Eval(text)
	if err != nil {
		return "", err
	}
	return FormatNumber(v), nil
}

// FormatNumber renders v the way a calculator display would: shortest
// round-tripping digits, no trailing zeros, exponent form only for very
// large or very small magnitudes (1e+21, 1e-7).
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
