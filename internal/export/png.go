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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"mathcanvas/internal/domain"
	"mathcanvas/internal/textlayout"
)

// WritePNG rasterises elems at o.DPI. Text is drawn with the provider's face
// at FontSize scaled to the DPI; the built-in face has a fixed size.
func WritePNG(w io.Writer, elems []domain.Element, o Options) error {
	o, err := o.withDefaults()
	if err != nil {
		return err
	}
	posScale := float64(o.DPI) / 96
	spec := textlayout.FontSpec{SizePt: o.FontSize * posScale}
	pg, err := compose(elems, o, spec, 1, posScale)
	if err != nil {
		return err
	}
	face, _ := o.Provider.Resolve(spec)

	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(pg.W)), int(math.Ceil(pg.H))))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.Black, Face: face}
	ink := color.RGBA{A: 255}
	for _, it := range pg.Items {
		for _, r := range it.Box.Runs {
			d.Dot = fixed.P(int(math.Round(it.X+r.X)), int(math.Round(it.Y+r.Y)))
			d.DrawString(r.Text)
		}
		for _, s := range it.Box.Segments {
			strokeSegment(img, it.X+s.X0, it.Y+s.Y0, it.X+s.X1, it.Y+s.Y1, ink)
		}
	}
	return png.Encode(w, img)
}

// strokeSegment draws a 1px axis-aligned line; diagonal segments are drawn
// as their bounding rectangle, which the layouts never produce.
func strokeSegment(img *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA) {
	fillRect(img, int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), col)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	b := img.Bounds()
	for y := max(y0, b.Min.Y); y <= min(y1, b.Max.Y-1); y++ {
		for x := max(x0, b.Min.X); x <= min(x1, b.Max.X-1); x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
