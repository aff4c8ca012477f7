/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"mathcanvas/internal/domain"
	applog "mathcanvas/internal/log"
	"mathcanvas/internal/textlayout"
	"mathcanvas/internal/version"
)

// WritePDF renders elems on a single page sized to the document, one point
// per document unit. With FontFile set the TTF is embedded and every glyph
// it covers prints; otherwise Helvetica is used and text outside cp1252
// degrades.
func WritePDF(w io.Writer, elems []domain.Element, o Options) error {
	o, err := o.withDefaults()
	if err != nil {
		return err
	}
	pg, err := compose(elems, o, textlayout.FontSpec{SizePt: o.FontSize}, vectorScale(o), 1)
	if err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pg.W, Ht: pg.H},
	})
	pdf.SetTitle("mathcanvas expression", true)
	pdf.SetCreator("mathcanvas "+version.String(), true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	translate := func(s string) string { return s }
	if o.fontData != nil {
		pdf.AddUTF8FontFromBytes(fontFamily, "", o.fontData)
		pdf.SetFont(fontFamily, "", o.FontSize)
	} else {
		if lost := outsideCP1252(elems); len(lost) > 0 {
			applog.WithComponent("export").Warn("pdf core font cannot show some characters, pass a font file",
				slog.String("chars", string(lost)))
		}
		translate = pdf.UnicodeTranslatorFromDescriptor("")
		pdf.SetFont("Helvetica", "", o.FontSize)
	}
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetLineWidth(0.8)

	for _, it := range pg.Items {
		for _, r := range it.Box.Runs {
			if r.Text != "" {
				pdf.Text(it.X+r.X, it.Y+r.Y, translate(r.Text))
			}
		}
		for _, s := range it.Box.Segments {
			pdf.Line(it.X+s.X0, it.Y+s.Y0, it.X+s.X1, it.Y+s.Y1)
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// outsideCP1252 lists, once each and in order of appearance, the runes of
// elems that the built-in PDF fonts cannot encode.
func outsideCP1252(elems []domain.Element) []rune {
	var lost []rune
	seen := make(map[rune]bool)
	for _, el := range elems {
		for _, r := range el.Text() {
			if seen[r] {
				continue
			}
			seen[r] = true
			if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
				lost = append(lost, r)
			}
		}
	}
	return lost
}
