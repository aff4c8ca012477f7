/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package editor is the document core of mathcanvas: an explicit editing
// context that owns the element store, the selection and the undo history
// and applies every canvas operation to them. Presentation layers (the fyne
// UI, the script runner) call into an Editor and render what it reports.
package editor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mathcanvas/internal/calc"
	"mathcanvas/internal/config"
	"mathcanvas/internal/domain"
	applog "mathcanvas/internal/log"
	"mathcanvas/internal/selection"
	"mathcanvas/internal/store"
	"mathcanvas/internal/undo"
	"mathcanvas/internal/vector"
)

// Evaluator computes the value of an arithmetic expression.
type Evaluator interface {
	Eval(text string) (float64, error)
}

// Prompter asks the user for one line of text. Implementations return an
// error wrapping ErrCancelled when the user dismisses the prompt.
type Prompter interface {
	Prompt(ctx context.Context, label string) (string, error)
}

// Recorder receives one call per committed operation.
type Recorder interface {
	Operation(op string, elements int)
}

var (
	ErrCancelled      = errors.New("editor: cancelled")
	ErrNoPrompter     = errors.New("editor: no prompter configured")
	ErrBadDimension   = errors.New("editor: matrix dimension must be an integer between 1 and 10")
	ErrEmptySelection = errors.New("editor: nothing selected")
)

// Options configures an Editor. A zero HistoryMax, PasteOffset or
// CanvasCenter takes the value from DefaultOptions; a zero SnapThreshold
// disables snapping.
type Options struct {
	HistoryMax    int
	PasteOffset   float64
	CanvasCenter  domain.Position
	SnapThreshold float64

	Evaluator Evaluator
	Prompter  Prompter
	Recorder  Recorder
	Logger    *slog.Logger
	Clock     func() time.Time
}

func DefaultOptions() Options {
	return Options{
		HistoryMax:   undo.DefaultMaxEntries,
		PasteOffset:  20,
		CanvasCenter: domain.Position{X: 400, Y: 300},
	}
}

// OptionsFromConfig maps the editor section of the user config.
func OptionsFromConfig(c config.EditorConfig) Options {
	o := DefaultOptions()
	if c.HistoryMax > 0 {
		o.HistoryMax = c.HistoryMax
	}
	if c.PasteOffset != 0 {
		o.PasteOffset = c.PasteOffset
	}
	if c.CanvasCenterX != 0 || c.CanvasCenterY != 0 {
		o.CanvasCenter = domain.Position{X: c.CanvasCenterX, Y: c.CanvasCenterY}
	}
	o.SnapThreshold = c.SnapThreshold
	return o
}

// Editor is one open document. It is not safe for concurrent use; callers
// such as the UI serialise access on their event loop.
type Editor struct {
	opts   Options
	store  *store.Store
	sel    *selection.Set
	hist   *undo.Manager
	eval   Evaluator
	prompt Prompter
	rec    Recorder
	log    *slog.Logger
	clock  func() time.Time
	drag   *dragSession
}

// New creates an empty document and seeds the history with it, so the
// history starts at length 1 with the cursor on the empty state.
func New(opts Options) *Editor {
	def := DefaultOptions()
	if opts.HistoryMax <= 0 {
		opts.HistoryMax = def.HistoryMax
	}
	if opts.PasteOffset == 0 {
		opts.PasteOffset = def.PasteOffset
	}
	if opts.CanvasCenter == (domain.Position{}) {
		opts.CanvasCenter = def.CanvasCenter
	}
	e := &Editor{
		opts:   opts,
		store:  store.New(),
		sel:    selection.New(),
		hist:   undo.NewManager(undo.Config{MaxEntries: opts.HistoryMax}),
		eval:   opts.Evaluator,
		prompt: opts.Prompter,
		rec:    opts.Recorder,
		log:    opts.Logger,
		clock:  opts.Clock,
	}
	if e.eval == nil {
		e.eval = calc.New()
	}
	if e.log == nil {
		e.log = applog.WithComponent("editor")
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	e.hist.Push(domain.NewSnapshot(nil, e.clock()))
	return e
}

// commit records the current document as one history entry.
func (e *Editor) commit(op string, touched int) {
	e.hist.Push(domain.NewSnapshot(e.store.All(), e.clock()))
	length, cursor := e.hist.Stats()
	e.log.Debug("commit",
		slog.String("op", op),
		slog.Int("elements", touched),
		slog.Int("history", length),
		slog.Int("cursor", cursor))
	if e.rec != nil {
		e.rec.Operation(op, touched)
	}
}

// Insert places a new element and returns its id.
func (e *Editor) Insert(kind domain.Kind, pos domain.Position) domain.ID {
	id := e.store.Insert(kind, pos)
	e.commit("insert", 1)
	return id
}

// InsertText places a plain element holding text, as dropped from the palette.
func (e *Editor) InsertText(text string, pos domain.Position) domain.ID {
	return e.Insert(domain.Plain(text), pos)
}

// Remove deletes one element. Unknown ids are a no-op.
func (e *Editor) Remove(id domain.ID) bool {
	if !e.store.Has(id) {
		return false
	}
	e.store.Remove(id)
	e.sel.Deselect(id)
	e.commit("remove", 1)
	return true
}

// DeleteSelected removes every selected element and reports how many went.
func (e *Editor) DeleteSelected() int {
	elems := e.selected()
	if len(elems) == 0 {
		return 0
	}
	for _, el := range elems {
		e.store.Remove(el.ID)
	}
	e.sel.Clear()
	e.commit("delete", len(elems))
	return len(elems)
}

// Clear empties the document.
func (e *Editor) Clear() bool {
	n := e.store.Len()
	if n == 0 {
		return false
	}
	e.store.ReplaceAll(nil)
	e.sel.Clear()
	e.drag = nil
	e.commit("clear", n)
	return true
}

// Move sets the position of one element. Moving to the current position or
// moving an unknown id is a no-op.
func (e *Editor) Move(id domain.ID, pos domain.Position) bool {
	cur, ok := e.store.Get(id)
	if !ok || cur.Position == pos {
		return false
	}
	e.store.Move(id, pos)
	e.commit("move", 1)
	return true
}

// Align lines up the selected elements; at least two must be selected.
func (e *Editor) Align(mode vector.AlignMode) bool {
	elems := e.selected()
	if len(elems) < 2 {
		return false
	}
	aligned := vector.Align(elems, mode)
	if aligned == nil {
		return false
	}
	moved := 0
	for i, el := range aligned {
		if el.Position != elems[i].Position {
			e.store.Move(el.ID, el.Position)
			moved++
		}
	}
	if moved == 0 {
		return false
	}
	e.commit("align", moved)
	return true
}

// Undo restores the previous snapshot and clears the selection.
func (e *Editor) Undo() bool {
	s, err := e.hist.Undo()
	if err != nil {
		return false
	}
	e.restore(s)
	return true
}

// Redo re-applies the next snapshot and clears the selection.
func (e *Editor) Redo() bool {
	s, err := e.hist.Redo()
	if err != nil {
		return false
	}
	e.restore(s)
	return true
}

func (e *Editor) restore(s domain.Snapshot) {
	e.store.ReplaceAll(s.Elements())
	e.sel.Clear()
	e.drag = nil
	length, cursor := e.hist.Stats()
	e.log.Debug("restore", slog.Int("elements", s.Len()), slog.Int("history", length), slog.Int("cursor", cursor))
}

func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// Stats reports the history length and cursor.
func (e *Editor) Stats() (length, cursor int) { return e.hist.Stats() }

// HistoryAt returns the i-th retained snapshot, oldest first.
func (e *Editor) HistoryAt(i int) (domain.Snapshot, bool) { return e.hist.At(i) }

// Snapshot captures the live document without recording it.
func (e *Editor) Snapshot() domain.Snapshot {
	return domain.NewSnapshot(e.store.All(), e.clock())
}

// Elements returns copies of all elements ordered by id.
func (e *Editor) Elements() []domain.Element { return e.store.All() }

func (e *Editor) Get(id domain.ID) (domain.Element, bool) { return e.store.Get(id) }

func (e *Editor) Len() int { return e.store.Len() }

// HasContent reports whether the document is non-empty.
func (e *Editor) HasContent() bool { return e.store.HasContent() }

// Expression is the reading-order text of the whole document.
func (e *Editor) Expression() string {
	return joinTexts(vector.OrderForReading(e.store.All()), "")
}

// Bounds is the extent of all element positions.
func (e *Editor) Bounds() (vector.Rect, bool) { return vector.Bounds(e.store.All()) }
