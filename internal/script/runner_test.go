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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mathcanvas/internal/domain"
	"mathcanvas/internal/editor"
	applog "mathcanvas/internal/log"
)

func run(t *testing.T, input string) (*Runner, string, error) {
	t.Helper()
	s, errs := Parse(input)
	if len(errs) != 0 {
		t.Fatalf("parse: %+v", errs)
	}
	var out bytes.Buffer
	r := NewRunner(editor.Options{Logger: applog.Discard()}, &out)
	err := r.Run(context.Background(), s)
	return r, out.String(), err
}

func TestRunMergeAndEvaluate(t *testing.T) {
	r, out, err := run(t, `insert 10 10 2
insert 30 10 +2
select 1 2
merge
selectall
eval
print
expect 4`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "4\n" {
		t.Fatalf("got output %q", out)
	}
	if n, _ := r.Editor().Stats(); n != 5 {
		t.Fatalf("history length %d want 5", n)
	}
}

func TestRunEvaluateFallback(t *testing.T) {
	_, _, err := run(t, `insert 0 0 2
insert 20 0 +
selectall
eval
expect 2+=`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunUndoRedoAndNoOps(t *testing.T) {
	r, _, err := run(t, `merge
undo
insert 0 0 a
insert 0 40 b
select 1 2 99
wrap (
undo
redo
expect (ab)
move 3 100 100
align left
remove 42`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	el, ok := r.Editor().Get(3)
	if !ok || el.Position != (domain.Position{X: 100, Y: 100}) {
		t.Fatalf("unexpected element %+v %v", el, ok)
	}
}

func TestRunDragAlignFractionMatrix(t *testing.T) {
	r, _, err := run(t, `insert 0 0 x
insert 10 30 y
drag 1,2 5 5
expect xy
select 1 2
align left
fraction
matrix 0 100 1,2;3,4
fraction 200 20 p q
expect (x)/(y)(p)/(q)[1,2;3,4]`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// seed, 2 inserts, drag, align, fraction, matrix, fraction
	if n, _ := r.Editor().Stats(); n != 8 {
		t.Fatalf("history length %d want 8", n)
	}
}

func TestRunBuildersUseAnswers(t *testing.T) {
	r, _, err := run(t, `answer 1
answer 2
build fraction
answer 1
answer 2
answer a
answer
build matrix
expect (1)/(2)[a,]`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.Editor().Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", r.Editor().Len())
	}
}

func TestRunBuilderWithoutAnswersCancels(t *testing.T) {
	r, _, err := run(t, `insert 0 0 a
build fraction`)
	if !errors.Is(err, editor.ErrCancelled) {
		t.Fatalf("got %v want ErrCancelled", err)
	}
	if r.Editor().Len() != 1 {
		t.Fatalf("cancelled builder must not mutate")
	}
}

func TestRunCopyPaste(t *testing.T) {
	r, _, err := run(t, `paste
insert 0 0 a
selectall
copy
paste
delete
expect a`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := r.Editor().Get(2); ok {
		t.Fatalf("pasted copy should be deleted")
	}
}

func TestRunCopyWithoutSelectionIsNoOp(t *testing.T) {
	r, _, err := run(t, `insert 0 0 a
copy
insert 10 0 b
paste
expect ab`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.Editor().Len() != 2 {
		t.Fatalf("paste after an empty copy should not insert, got %d elements", r.Editor().Len())
	}
}

func TestRunExpectationFailure(t *testing.T) {
	_, _, err := run(t, `insert 0 0 a
expect b`)
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("got %v want ErrExpectation", err)
	}
}

func TestRunBadFields(t *testing.T) {
	for _, in := range []string{"insert x 0 a", "select 0", "align diagonal", "fraction 1 2", "build circle"} {
		if _, _, err := run(t, in); err == nil {
			t.Fatalf("%q: expected an error", in)
		}
	}
}

func TestRunFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "s.mcs")
	if err := os.WriteFile(p, []byte("insert 0 0 \\alpha\nprint\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	r := NewRunner(editor.Options{Logger: applog.Discard()}, &out)
	if err := r.RunFile(context.Background(), p); err != nil {
		t.Fatalf("run file: %v", err)
	}
	if out.String() != "\\alpha\n" {
		t.Fatalf("insert must not format text, got %q", out.String())
	}

	bad := filepath.Join(t.TempDir(), "bad.mcs")
	if err := os.WriteFile(bad, []byte("nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.RunFile(context.Background(), bad); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	s, _ := Parse("insert 0 0 a")
	r := NewRunner(editor.Options{Logger: applog.Discard()}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx, s); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v want context.Canceled", err)
	}
	if r.Editor().Len() != 0 {
		t.Fatalf("nothing should run")
	}
}

func TestRunFileLogsScriptAndLine(t *testing.T) {
	p := filepath.Join(t.TempDir(), "noop.mcs")
	if err := os.WriteFile(p, []byte("insert 0 0 a\nmerge\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	l := applog.New(applog.Options{Level: "debug", Format: "json", Writer: &logs})
	r := NewRunner(editor.Options{Logger: l}, nil)
	if err := r.RunFile(context.Background(), p); err != nil {
		t.Fatalf("run file: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		if m["msg"] != "no-op" {
			continue
		}
		if m["script"] != p || m["line"] != float64(2) || m["op"] != "merge" || m["component"] != "script" {
			t.Fatalf("no-op record lacks context: %v", m)
		}
		return
	}
	t.Fatalf("no no-op record in %q", logs.String())
}
