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
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"mathcanvas/internal/domain"
	"mathcanvas/internal/textlayout"
)

// WriteSVG renders elems as a standalone SVG document in document units.
// Text is left to the viewer's fonts; the family is a hint only.
func WriteSVG(w io.Writer, elems []domain.Element, o Options) error {
	o, err := o.withDefaults()
	if err != nil {
		return err
	}
	pg, err := compose(elems, o, textlayout.FontSpec{SizePt: o.FontSize}, vectorScale(o), 1)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bw, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n",
		int(math.Ceil(pg.W)), int(math.Ceil(pg.H)), pg.W, pg.H)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", pg.W, pg.H)
	wf("  <g font-family=\"%s\" font-size=\"%g\" fill=\"#000\" stroke=\"#000\" stroke-width=\"1\">\n",
		escAttr("Cambria Math, STIX Two Math, serif"), o.FontSize)
	for _, it := range pg.Items {
		for _, r := range it.Box.Runs {
			if r.Text == "" {
				continue
			}
			wf("    <text x=\"%g\" y=\"%g\" stroke=\"none\">%s</text>\n", round2(it.X+r.X), round2(it.Y+r.Y), escText(r.Text))
		}
		for _, s := range it.Box.Segments {
			wf("    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\"/>\n",
				round2(it.X+s.X0), round2(it.Y+s.Y0), round2(it.X+s.X1), round2(it.Y+s.Y1))
		}
	}
	wf("  </g>\n</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	return bw.Flush()
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

var (
	attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", "<", "&lt;", "\n", " ", "\r", "")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

func escAttr(s string) string { return attrEscaper.Replace(s) }

func escText(s string) string { return textEscaper.Replace(s) }
