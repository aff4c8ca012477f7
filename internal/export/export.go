/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export renders a canvas document to SVG, PNG, PDF or plain text.
// All formats share one page composition: element boxes from textlayout,
// placed at their document positions and cropped to the document bounds
// plus padding.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mathcanvas/internal/config"
	"mathcanvas/internal/domain"
	"mathcanvas/internal/storage"
	"mathcanvas/internal/textlayout"
	"mathcanvas/internal/vector"
)

// fontFamily names the FontFile face in the font library and in PDF output.
const fontFamily = "mathcanvas"

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("export: document is empty")

// Options controls export of every format.
//   - FontSize is the text size in document units; the layout is scaled to it.
//   - Padding surrounds the document bounds.
//   - DPI sets PNG resolution; document units are 1/96 inch.
//   - Provider measures and, for PNG, draws text; nil means the built-in face,
//     or the FontFile face when one is named.
//   - FontFile optionally names a TTF/OTF. It is embedded in PDF output and
//     measures text for every format.
type Options struct {
	FontSize float64
	Padding  float64
	DPI      int
	Provider textlayout.Provider
	FontFile string

	fontData []byte
}

// OptionsFromConfig maps the export section of the user config.
func OptionsFromConfig(c config.ExportConfig) Options {
	return Options{FontSize: c.FontSize, Padding: c.Padding, DPI: c.DPI}
}

func (o Options) withDefaults() (Options, error) {
	if o.FontSize <= 0 {
		o.FontSize = 18
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.DPI <= 0 {
		o.DPI = 96
	}
	if o.FontFile != "" && o.fontData == nil {
		data, err := os.ReadFile(o.FontFile)
		if err != nil {
			return o, fmt.Errorf("export font: %w", err)
		}
		lib := textlayout.NewFontLibrary()
		if err := lib.Load(fontFamily, data); err != nil {
			return o, fmt.Errorf("export font %s: %w", o.FontFile, err)
		}
		o.fontData = data
		if o.Provider == nil {
			o.Provider = textlayout.OTProvider{Lib: lib}
		}
	}
	if o.Provider == nil {
		o.Provider = textlayout.BasicProvider{}
	}
	return o, nil
}

// placed is an element box positioned on the page.
type placed struct {
	X, Y float64
	Box  textlayout.Box
}

type page struct {
	W, H  float64
	Items []placed
}

// compose lays out elems in page units. spec selects the face, textScale
// multiplies its layout and posScale multiplies document coordinates.
func compose(elems []domain.Element, o Options, spec textlayout.FontSpec, textScale, posScale float64) (page, error) {
	origin, ok := vector.Bounds(elems)
	if !ok {
		return page{}, ErrEmpty
	}
	var extent vector.Rect
	items := make([]placed, 0, len(elems))
	for i, el := range elems {
		b := textlayout.Layout(o.Provider, spec, el.Kind).Scale(textScale)
		x := (el.Position.X - origin.X + o.Padding) * posScale
		y := (el.Position.Y - origin.Y + o.Padding) * posScale
		r := vector.R(x, y, b.W, b.H)
		if i == 0 {
			extent = r
		} else {
			extent = extent.Union(r)
		}
		items = append(items, placed{X: x, Y: y, Box: b})
	}
	pad := o.Padding * posScale
	return page{W: extent.Max().X + pad, H: extent.Max().Y + pad, Items: items}, nil
}

// vectorScale sizes face layout to FontSize for resolution-independent formats.
func vectorScale(o Options) float64 {
	_, met := o.Provider.Resolve(textlayout.FontSpec{SizePt: o.FontSize})
	if lh := met.LineHeight(); lh > 0 {
		return o.FontSize / lh
	}
	return 1
}

// WriteText writes the reading-order expression followed by a newline.
func WriteText(w io.Writer, elems []domain.Element) error {
	if len(elems) == 0 {
		return ErrEmpty
	}
	var b strings.Builder
	for _, el := range vector.OrderForReading(elems) {
		b.WriteString(el.Text())
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// ToFile exports to path, choosing the format from its extension
// (.svg, .png, .pdf, .txt).
func ToFile(path string, elems []domain.Element, o Options) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		write = func(w io.Writer) error { return WriteSVG(w, elems, o) }
	case ".png":
		write = func(w io.Writer) error { return WritePNG(w, elems, o) }
	case ".pdf":
		write = func(w io.Writer) error { return WritePDF(w, elems, o) }
	case ".txt":
		write = func(w io.Writer) error { return WriteText(w, elems) }
	default:
		return fmt.Errorf("export %s: unsupported format", path)
	}
	if len(elems) == 0 {
		return ErrEmpty
	}
	if err := storage.WriteAtomic(path, 0o644, write); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
