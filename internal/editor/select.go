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

import "mathcanvas/internal/domain"

// Select adds a live element to the selection.
func (e *Editor) Select(id domain.ID) bool {
	if !e.store.Has(id) {
		return false
	}
	e.sel.Select(id)
	return true
}

func (e *Editor) Deselect(id domain.ID) { e.sel.Deselect(id) }

// Toggle flips selection of a live element and reports the new state.
func (e *Editor) Toggle(id domain.ID) bool {
	if !e.store.Has(id) {
		return false
	}
	return e.sel.Toggle(id)
}

// SelectOnly replaces the selection with the live ids among ids.
func (e *Editor) SelectOnly(ids ...domain.ID) {
	e.sel.Clear()
	for _, id := range ids {
		e.Select(id)
	}
}

// SelectAll selects every element in id order.
func (e *Editor) SelectAll() {
	e.sel.Clear()
	for _, el := range e.store.All() {
		e.sel.Select(el.ID)
	}
}

func (e *Editor) ClearSelection() { e.sel.Clear() }

func (e *Editor) IsSelected(id domain.ID) bool { return e.sel.Has(id) }

// Selected returns the selected ids in the order they were selected.
func (e *Editor) Selected() []domain.ID {
	e.sel.Retain(e.store.Has)
	return e.sel.IDs()
}

// selected returns the live selected elements in selection order.
func (e *Editor) selected() []domain.Element {
	e.sel.Retain(e.store.Has)
	return e.store.Lookup(e.sel.IDs())
}
