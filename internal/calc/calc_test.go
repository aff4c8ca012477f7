/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package calc

import (
	"errors"
	"testing"
)

func TestEvalString(t *testing.T) {
	e := New()
	cases := []struct {
		in, want string
	}{
		{"2+2", "4"},
		{"1/2", "0.5"},
		{"2**10", "1024"},
		{"(1+2)*3", "9"},
		{"7 % 3", "1"},
		{"0.1+0.2", "0.30000000000000004"},
		{"-3+1", "-2"},
		{"10/4", "2.5"},
		{"7.5%2", "1.5"},
		{"-7 % 3", "-1"},
		{"2%3*4", "8"},
		{"9223372036854775807+1", "9223372036854776000"},
		{"3*1000000000000000000*10", "30000000000000000000"},
		{"2**60", "1152921504606847000"},
	}
	for _, tc := range cases {
		got, err := e.EvalString(tc.in)
		if err != nil {
			t.Fatalf("EvalString(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("EvalString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEvalRejects(t *testing.T) {
	e := New()
	for _, in := range []string{"", "  ", "2+", "a+b", "x²", "2+=", "len(1)", "()"} {
		if _, err := e.Eval(in); !errors.Is(err, ErrUnsupported) {
			t.Fatalf("Eval(%q) err = %v, want ErrUnsupported", in, err)
		}
	}
}

func TestEvalNotFinite(t *testing.T) {
	for _, in := range []string{"1/0", "5%0"} {
		if _, err := New().Eval(in); !errors.Is(err, ErrNotFinite) {
			t.Fatalf("%s err = %v, want ErrNotFinite", in, err)
		}
	}
}

func TestEvalLargeProductKeepsSign(t *testing.T) {
	v, err := New().Eval("9223372036854775807*9223372036854775807")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v <= 0 {
		t.Fatalf("product wrapped to %v", v)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{-1.25, "-1.25"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{123456789012, "123456789012"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
