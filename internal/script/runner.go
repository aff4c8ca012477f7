/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"mathcanvas/internal/domain"
	"mathcanvas/internal/editor"
	applog "mathcanvas/internal/log"
	"mathcanvas/internal/mathtext"
	"mathcanvas/internal/vector"
)

// ErrExpectation is returned when an expect command does not match.
var ErrExpectation = errors.New("script: expectation failed")

// Runner executes scripts against one editor. Commands whose preconditions
// do not hold are no-ops, as in the editor itself; only malformed fields,
// cancelled builders and failed expectations stop a run.
type Runner struct {
	ed      *editor.Editor
	out     io.Writer
	log     *slog.Logger
	answers *editor.QueuePrompter
	clip    []byte
}

// NewRunner creates the editor from opts. Builder prompts are answered from
// the script's answer commands unless opts already carries a Prompter.
// print output goes to out; nil discards it.
func NewRunner(opts editor.Options, out io.Writer) *Runner {
	r := &Runner{out: out, answers: editor.NewQueuePrompter()}
	if r.out == nil {
		r.out = io.Discard
	}
	if opts.Prompter == nil {
		opts.Prompter = r.answers
	}
	if opts.Logger == nil {
		opts.Logger = applog.WithComponent("editor")
		r.log = applog.WithComponent("script")
	} else {
		r.log = opts.Logger.With(slog.String("component", "script"))
	}
	r.ed = editor.New(opts)
	return r
}

// Editor exposes the document the script is building.
func (r *Runner) Editor() *editor.Editor { return r.ed }

// RunFile parses and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	s, perrs := Parse(string(b))
	if len(perrs) > 0 {
		joined := make([]error, len(perrs))
		for i, e := range perrs {
			joined[i] = e
		}
		return fmt.Errorf("parse %s: %w", path, errors.Join(joined...))
	}
	return r.Run(applog.ContextWith(ctx, slog.String("script", path)), s)
}

// Run executes every command in order and stops at the first error.
func (r *Runner) Run(ctx context.Context, s Script) error {
	for _, c := range s.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.exec(applog.ContextWith(ctx, slog.Int("line", c.LineNo)), c); err != nil {
			return fmt.Errorf("line %d: %s: %w", c.LineNo, c.Op, err)
		}
	}
	n, cur := r.ed.Stats()
	r.log.DebugContext(ctx, "script done", slog.Int("commands", len(s.Commands)), slog.Int("history", n), slog.Int("cursor", cur))
	return nil
}

func (r *Runner) exec(ctx context.Context, c Command) error {
	ed := r.ed
	changed := true
	switch c.Op {
	case OpInsert, OpManual, OpMatrix:
		pos, err := position(c.Args[0], c.Args[1])
		if err != nil {
			return err
		}
		switch c.Op {
		case OpInsert:
			ed.InsertText(c.Text, pos)
		case OpManual:
			_, changed = ed.InsertManual(c.Text, pos)
		default:
			_, changed = ed.BuildMatrix(mathtext.ParseRows(c.Text), pos)
		}
	case OpSelect, OpDeselect:
		ids, err := parseIDs(c.Args)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if c.Op == OpDeselect {
				ed.Deselect(id)
			} else if !ed.Select(id) {
				r.log.DebugContext(ctx, "select skipped stale id", "id", id)
			}
		}
	case OpSelectAll:
		ed.SelectAll()
	case OpNone:
		ed.ClearSelection()
	case OpMerge:
		_, changed = ed.Merge(c.Text)
	case OpWrap:
		_, changed = ed.WrapInBrackets(c.Text)
	case OpFraction:
		switch len(c.Args) {
		case 0:
			_, changed = ed.FractionFromSelection()
		case 4:
			pos, err := position(c.Args[0], c.Args[1])
			if err != nil {
				return err
			}
			ed.BuildFraction(c.Args[2], c.Args[3], pos)
		default:
			return fmt.Errorf("fraction takes 0 or 4 fields, got %d", len(c.Args))
		}
	case OpEval:
		_, changed = ed.Evaluate()
	case OpUndo:
		changed = ed.Undo()
	case OpRedo:
		changed = ed.Redo()
	case OpMove:
		ids, err := parseIDs(c.Args[:1])
		if err != nil {
			return err
		}
		pos, err := position(c.Args[1], c.Args[2])
		if err != nil {
			return err
		}
		changed = ed.Move(ids[0], pos)
	case OpDrag:
		ids, err := parseIDs(strings.Split(c.Args[0], ","))
		if err != nil {
			return err
		}
		d, err := position(c.Args[1], c.Args[2])
		if err != nil {
			return err
		}
		if !ed.BeginDrag(ids...) {
			changed = false
			break
		}
		ed.DragBy(d.X, d.Y)
		changed = ed.EndDrag()
	case OpAlign:
		mode, ok := vector.ParseAlignMode(strings.ToLower(c.Args[0]))
		if !ok {
			return fmt.Errorf("unknown align mode %q", c.Args[0])
		}
		changed = ed.Align(mode)
	case OpDelete:
		changed = ed.DeleteSelected() > 0
	case OpRemove:
		ids, err := parseIDs(c.Args)
		if err != nil {
			return err
		}
		changed = ed.Remove(ids[0])
	case OpClear:
		changed = ed.Clear()
	case OpCopy:
		b, err := ed.Copy()
		if errors.Is(err, editor.ErrEmptySelection) {
			changed = false
			break
		}
		if err != nil {
			return err
		}
		r.clip = b
	case OpPaste:
		if r.clip == nil {
			changed = false
			break
		}
		ids, err := ed.Paste(r.clip)
		if err != nil {
			return err
		}
		changed = len(ids) > 0
	case OpAnswer:
		r.answers.Push(c.Text)
	case OpBuild:
		var err error
		switch strings.ToLower(c.Args[0]) {
		case "fraction":
			_, err = ed.FractionBuilder(ctx)
		case "matrix":
			_, err = ed.MatrixBuilder(ctx)
		default:
			return fmt.Errorf("unknown builder %q", c.Args[0])
		}
		if err != nil {
			return err
		}
	case OpPrint:
		_, err := fmt.Fprintln(r.out, ed.Expression())
		return err
	case OpExpect:
		if got := ed.Expression(); got != c.Text {
			return fmt.Errorf("%w: got %q want %q", ErrExpectation, got, c.Text)
		}
	default:
		return fmt.Errorf("unsupported command %q", c.Op)
	}
	if !changed {
		applog.WithOperation(r.log, string(c.Op)).DebugContext(ctx, "no-op")
	}
	return nil
}

func position(xs, ys string) (domain.Position, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return domain.Position{}, fmt.Errorf("bad x %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return domain.Position{}, fmt.Errorf("bad y %q", ys)
	}
	return domain.Position{X: x, Y: y}, nil
}

func parseIDs(fields []string) ([]domain.ID, error) {
	ids := make([]domain.ID, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad element id %q", f)
		}
		ids = append(ids, domain.ID(n))
	}
	return ids, nil
}
