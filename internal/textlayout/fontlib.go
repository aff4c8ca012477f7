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
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontLibrary holds parsed OpenType fonts by family name.
type FontLibrary struct {
	fonts map[string]*opentype.Font
	first string
}

func NewFontLibrary() *FontLibrary { return &FontLibrary{fonts: make(map[string]*opentype.Font)} }

// Load parses font data and registers it under family.
func (fl *FontLibrary) Load(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	if fl.fonts == nil {
		fl.fonts = make(map[string]*opentype.Font)
	}
	if fl.first == "" {
		fl.first = family
	}
	fl.fonts[family] = f
	return nil
}

// find returns the family's font or, failing that, the first one loaded.
func (fl *FontLibrary) find(family string) *opentype.Font {
	if fl == nil || len(fl.fonts) == 0 {
		return nil
	}
	if f, ok := fl.fonts[family]; ok {
		return f
	}
	return fl.fonts[fl.first]
}

// OTProvider resolves faces from a FontLibrary at the requested size and
// falls back to another Provider when the library has nothing.
type OTProvider struct {
	Lib      *FontLibrary
	DPI      float64 // 72 if zero
	Fallback Provider
}

func (p OTProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	if spec.SizePt <= 0 {
		spec.SizePt = 12
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 72
	}
	if f := p.Lib.find(spec.Family); f != nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: spec.SizePt, DPI: dpi, Hinting: font.HintingFull})
		if err == nil {
			return face, metricsOf(face)
		}
	}
	fb := p.Fallback
	if fb == nil {
		fb = BasicProvider{}
	}
	return fb.Resolve(spec)
}
