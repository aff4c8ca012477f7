/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package fragment

import (
	"errors"
	"testing"

	"mathcanvas/internal/domain"
)

func TestEncodeDecode(t *testing.T) {
	in := []domain.Element{
		{ID: 3, Kind: domain.Plain("x"), Position: domain.Position{X: 10, Y: 20}},
		{ID: 7, Kind: domain.Fraction("1", "2"), Position: domain.Position{X: -5, Y: 0.5}},
		{ID: 9, Kind: domain.Matrix([][]string{{"a", "b"}, {"c", "d"}}), Position: domain.Position{X: 1, Y: 1}},
	}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d elements, want %d", len(out), len(in))
	}
	for i := range in {
		if !out[i].Equal(in[i]) {
			t.Fatalf("element %d: got %+v want %+v", i, out[i], in[i])
		}
	}
}

func TestDecodeEmptySelection(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil || len(out) != 0 {
		t.Fatalf("Decode = %v, %v", out, err)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"not json":       `hello`,
		"plain text":     `"x+1"`,
		"wrong format":   `{"format":"other","version":1,"elements":[]}`,
		"future version": `{"format":"mathcanvas/fragment","version":2,"elements":[]}`,
		"unknown kind":   `{"format":"mathcanvas/fragment","version":1,"elements":[{"id":1,"content":{"type":"vector"},"position":{"x":0,"y":0}}]}`,
		"no position":    `{"format":"mathcanvas/fragment","version":1,"elements":[{"id":1,"content":{"type":"plain","text":"a"}}]}`,
		"matrix no rows": `{"format":"mathcanvas/fragment","version":1,"elements":[{"id":1,"content":{"type":"matrix"},"position":{"x":0,"y":0}}]}`,
		"zero id":        `{"format":"mathcanvas/fragment","version":1,"elements":[{"id":0,"content":{"type":"plain","text":"a"},"position":{"x":0,"y":0}}]}`,
	}
	for name, data := range cases {
		if _, err := Decode([]byte(data)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err = %v, want ErrInvalid", name, err)
		}
	}
}
