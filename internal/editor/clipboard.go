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
	"sort"

	"mathcanvas/internal/domain"
	"mathcanvas/internal/fragment"
)

// Copy encodes the selection as a clipboard fragment.
func (e *Editor) Copy() ([]byte, error) {
	elems := e.selected()
	if len(elems) == 0 {
		return nil, ErrEmptySelection
	}
	return fragment.Encode(elems)
}

// Paste inserts copies of a fragment's elements under fresh ids, shifted by
// the paste offset, and selects them. An invalid fragment changes nothing.
func (e *Editor) Paste(data []byte) ([]domain.ID, error) {
	elems, err := fragment.Decode(data)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, nil
	}
	sort.SliceStable(elems, func(i, j int) bool { return elems[i].ID < elems[j].ID })
	off := e.opts.PasteOffset
	ids := make([]domain.ID, len(elems))
	for i, el := range elems {
		ids[i] = e.store.Insert(el.Kind, el.Position.Add(off, off))
	}
	e.sel.Replace(ids)
	e.commit("paste", len(ids))
	return ids, nil
}
