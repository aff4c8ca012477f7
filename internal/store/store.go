/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package store holds the live elements of a document keyed by id.
package store

import (
	"sort"

	"mathcanvas/internal/domain"
)

// Store is the element store of one document. It is not safe for concurrent
// use; the editor serialises access.
type Store struct {
	elems  map[domain.ID]domain.Element
	nextID domain.ID
}

func New() *Store {
	return &Store{elems: make(map[domain.ID]domain.Element), nextID: 1}
}

// Insert adds an element with a freshly allocated id and returns the id.
func (s *Store) Insert(kind domain.Kind, pos domain.Position) domain.ID {
	id := s.nextID
	s.nextID++
	s.elems[id] = domain.Element{ID: id, Kind: kind.Clone(), Position: pos}
	return id
}

// Remove deletes the element. Unknown ids are ignored.
func (s *Store) Remove(id domain.ID) {
	delete(s.elems, id)
}

// Move updates the position in place and reports whether the id was live.
func (s *Store) Move(id domain.ID, pos domain.Position) bool {
	e, ok := s.elems[id]
	if !ok {
		return false
	}
	e.Position = pos
	s.elems[id] = e
	return true
}

// ReplaceAll clears the store and repopulates it from elems, keeping their ids.
// The id counter only moves forward so ids handed out earlier are never reused.
func (s *Store) ReplaceAll(elems []domain.Element) {
	s.elems = make(map[domain.ID]domain.Element, len(elems))
	for _, e := range elems {
		s.elems[e.ID] = e.Clone()
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
}

// Get returns a copy of the element.
func (s *Store) Get(id domain.ID) (domain.Element, bool) {
	e, ok := s.elems[id]
	if !ok {
		return domain.Element{}, false
	}
	return e.Clone(), true
}

func (s *Store) Has(id domain.ID) bool {
	_, ok := s.elems[id]
	return ok
}

// All returns copies of every element ordered by id.
func (s *Store) All() []domain.Element {
	out := make([]domain.Element, 0, len(s.elems))
	for _, e := range s.elems {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns copies of the live elements among ids, in the order given.
// Stale ids are skipped.
func (s *Store) Lookup(ids []domain.ID) []domain.Element {
	out := make([]domain.Element, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.elems[id]; ok {
			out = append(out, e.Clone())
		}
	}
	return out
}

func (s *Store) Len() int { return len(s.elems) }

// HasContent reports whether the document is non-empty.
func (s *Store) HasContent() bool { return len(s.elems) > 0 }
