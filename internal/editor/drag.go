/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package editor

import (
	"mathcanvas/internal/domain"
	"mathcanvas/internal/vector"
)

// dragSession tracks one pointer drag. Positions change live while dragging;
// history only sees the end result.
type dragSession struct {
	ids    []domain.ID
	origin map[domain.ID]domain.Position
	dx, dy float64
	guides []vector.GuideLine
}

// BeginDrag starts dragging the live elements among ids. A drag that is
// still open is ended first.
func (e *Editor) BeginDrag(ids ...domain.ID) bool {
	if e.drag != nil {
		e.EndDrag()
	}
	s := &dragSession{origin: make(map[domain.ID]domain.Position, len(ids))}
	for _, el := range e.store.Lookup(ids) {
		if _, dup := s.origin[el.ID]; dup {
			continue
		}
		s.ids = append(s.ids, el.ID)
		s.origin[el.ID] = el.Position
	}
	if len(s.ids) == 0 {
		return false
	}
	e.drag = s
	return true
}

// DragBy moves the dragged elements by a further dx,dy. With a snap
// threshold configured the lead element snaps to other elements' rows and
// columns; the returned guides describe the snap.
func (e *Editor) DragBy(dx, dy float64) []vector.GuideLine {
	s := e.drag
	if s == nil {
		return nil
	}
	s.dx += dx
	s.dy += dy
	offX, offY := s.dx, s.dy
	s.guides = nil

	live := s.ids[:0]
	for _, id := range s.ids {
		if e.store.Has(id) {
			live = append(live, id)
		}
	}
	s.ids = live
	if len(live) == 0 {
		return nil
	}

	if e.opts.SnapThreshold > 0 {
		lead := s.origin[live[0]]
		var anchors []vector.Pt
		for _, el := range e.store.All() {
			if _, dragged := s.origin[el.ID]; !dragged {
				anchors = append(anchors, vector.PtOf(el.Position))
			}
		}
		target := vector.Pt{X: lead.X + offX, Y: lead.Y + offY}
		snapped, guides := vector.Snap(target, anchors, vector.SnapOptions{Threshold: e.opts.SnapThreshold, SnapX: true, SnapY: true})
		offX, offY = snapped.X-lead.X, snapped.Y-lead.Y
		s.guides = guides
	}
	for _, id := range live {
		e.store.Move(id, s.origin[id].Add(offX, offY))
	}
	return s.guides
}

// EndDrag closes the drag and commits one snapshot if anything moved.
func (e *Editor) EndDrag() bool {
	s := e.drag
	e.drag = nil
	if s == nil {
		return false
	}
	moved := 0
	for _, id := range s.ids {
		if el, ok := e.store.Get(id); ok && el.Position != s.origin[id] {
			moved++
		}
	}
	if moved == 0 {
		return false
	}
	e.commit("drag", moved)
	return true
}

// Dragging reports whether a drag session is open.
func (e *Editor) Dragging() bool { return e.drag != nil }
