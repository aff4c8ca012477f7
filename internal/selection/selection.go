/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package selection tracks which elements are selected, in selection order.
package selection

import "mathcanvas/internal/domain"

// Set is an insertion-ordered set of element ids.
type Set struct {
	order []domain.ID
	index map[domain.ID]struct{}
}

func New() *Set { return &Set{index: make(map[domain.ID]struct{})} }

// Select adds id; selecting an already selected id keeps its original position.
func (s *Set) Select(id domain.ID) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Set) Deselect(id domain.ID) {
	if _, ok := s.index[id]; !ok {
		return
	}
	delete(s.index, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle flips membership and reports whether id is selected afterwards.
func (s *Set) Toggle(id domain.ID) bool {
	if s.Has(id) {
		s.Deselect(id)
		return false
	}
	s.Select(id)
	return true
}

func (s *Set) Clear() {
	s.order = nil
	s.index = make(map[domain.ID]struct{})
}

// Replace makes ids the whole selection, in the given order.
func (s *Set) Replace(ids []domain.ID) {
	s.Clear()
	for _, id := range ids {
		s.Select(id)
	}
}

func (s *Set) Has(id domain.ID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Set) Len() int { return len(s.order) }

// IDs returns the selected ids in selection order.
func (s *Set) IDs() []domain.ID { return append([]domain.ID(nil), s.order...) }

// Retain drops every id for which live returns false.
func (s *Set) Retain(live func(domain.ID) bool) {
	kept := s.order[:0]
	for _, id := range s.order {
		if live(id) {
			kept = append(kept, id)
		} else {
			delete(s.index, id)
		}
	}
	s.order = kept
}
