/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package vector

// Snapping helpers for the end of a drag: a dropped element lines up with
// the column or row of a nearby element. UI-agnostic and deterministic so
// frontends can render the returned guides as they like.

import "math"

// SnapOptions controls snapping. A Threshold of zero disables it.
type SnapOptions struct {
	// Threshold is the maximum distance, in document units, at which snapping occurs.
	Threshold float64
	// SnapX aligns to anchor columns (equal x).
	SnapX bool
	// SnapY aligns to anchor rows (equal y).
	SnapY bool
}

// GuideLine describes a guide produced by a snap.
// Orientation is "vertical" (equal x) or "horizontal" (equal y).
// From and To span the moving point and the anchor it snapped to.
// Values are rounded to 3 decimal places.
type GuideLine struct {
	Orientation string
	Position    float64
	From        Pt
	To          Pt
}

// Snap moves p onto the nearest anchor column and row within the threshold.
// X and Y snap independently. On ties the earlier anchor wins.
func Snap(p Pt, anchors []Pt, opts SnapOptions) (Pt, []GuideLine) {
	if opts.Threshold <= 0 || (!opts.SnapX && !opts.SnapY) {
		return p, nil
	}
	bestDX, bestDXDist, bestDXAnchor := 0.0, math.Inf(1), Pt{}
	bestDY, bestDYDist, bestDYAnchor := 0.0, math.Inf(1), Pt{}
	for _, a := range anchors {
		if opts.SnapX {
			consider(&bestDX, &bestDXDist, &bestDXAnchor, p.X-a.X, opts.Threshold, a)
		}
		if opts.SnapY {
			consider(&bestDY, &bestDYDist, &bestDYAnchor, p.Y-a.Y, opts.Threshold, a)
		}
	}

	var guides []GuideLine
	snapped := p
	if bestDXDist <= opts.Threshold {
		snapped.X = FloatRound(p.X-bestDX, 3)
	}
	if bestDYDist <= opts.Threshold {
		snapped.Y = FloatRound(p.Y-bestDY, 3)
	}
	if bestDXDist <= opts.Threshold {
		guides = append(guides, verticalGuide(snapped, bestDXAnchor))
	}
	if bestDYDist <= opts.Threshold {
		guides = append(guides, horizontalGuide(snapped, bestDYAnchor))
	}
	return snapped, guides
}

func consider(best *float64, bestDist *float64, bestAnchor *Pt, delta, threshold float64, a Pt) {
	dist := math.Abs(delta)
	if dist > threshold || dist >= *bestDist {
		return
	}
	*bestDist = dist
	*best = delta
	*bestAnchor = a
}

func verticalGuide(p, a Pt) GuideLine {
	x := FloatRound(a.X, 3)
	return GuideLine{
		Orientation: "vertical",
		Position:    x,
		From:        Pt{x, math.Min(p.Y, a.Y)},
		To:          Pt{x, math.Max(p.Y, a.Y)},
	}
}

func horizontalGuide(p, a Pt) GuideLine {
	y := FloatRound(a.Y, 3)
	return GuideLine{
		Orientation: "horizontal",
		Position:    y,
		From:        Pt{math.Min(p.X, a.X), y},
		To:          Pt{math.Max(p.X, a.X), y},
	}
}
