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
	"strings"
	"testing"
)

func TestParseCommands(t *testing.T) {
	input := `# build 2+2 and evaluate it
insert 10 10 2
insert 30 10 +2

select 1 2
merge
eval
; a comment
manual 0 50 \frac{1}{2}
merge " "
print`

	s, errs := Parse(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	ops := make([]string, len(s.Commands))
	for i, c := range s.Commands {
		ops[i] = string(c.Op)
	}
	if got, want := strings.Join(ops, ","), "insert,insert,select,merge,eval,manual,merge,print"; got != want {
		t.Fatalf("got ops %s want %s", got, want)
	}
	in := s.Commands[1]
	if in.LineNo != 3 || len(in.Args) != 2 || in.Args[0] != "30" || in.Text != "+2" {
		t.Fatalf("unexpected insert command %+v", in)
	}
	if sel := s.Commands[2]; len(sel.Args) != 2 || sel.Args[1] != "2" {
		t.Fatalf("unexpected select command %+v", sel)
	}
	if m := s.Commands[3]; m.Text != "" {
		t.Fatalf("bare merge should have no separator, got %q", m.Text)
	}
	if man := s.Commands[5]; man.Text != `\frac{1}{2}` {
		t.Fatalf("manual text not kept verbatim: %q", man.Text)
	}
	if sp := s.Commands[6]; sp.Text != " " {
		t.Fatalf("quoted separator not unquoted: %q", sp.Text)
	}
}

func TestParseContinuation(t *testing.T) {
	input := `matrix 0 0 a,b;
  c,d
undo`
	s, errs := Parse(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if len(s.Commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(s.Commands))
	}
	if got := s.Commands[0].Text; got != "a,b;c,d" {
		t.Fatalf("continuation not joined: %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	input := `insert 10
frobnicate 1
select
move 1 2
wrap
merge "unterminated
print`
	s, errs := Parse(input)
	if len(errs) != 6 {
		t.Fatalf("expected 6 errors, got %d: %+v", len(errs), errs)
	}
	for i, e := range errs {
		if e.Line != i+1 {
			t.Fatalf("error %d reported on line %d", i, e.Line)
		}
	}
	if !strings.Contains(errs[1].Message, "unknown command") {
		t.Fatalf("unexpected message %q", errs[1].Message)
	}
	if len(s.Commands) != 1 || s.Commands[0].Op != OpPrint {
		t.Fatalf("valid lines should still parse, got %+v", s.Commands)
	}
	if got := errs[0].Error(); !strings.HasPrefix(got, "1:") {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestParseCaseInsensitiveOps(t *testing.T) {
	s, errs := Parse("SELECTALL\nEval")
	if len(errs) != 0 || len(s.Commands) != 2 || s.Commands[0].Op != OpSelectAll || s.Commands[1].Op != OpEval {
		t.Fatalf("unexpected parse %+v %+v", s, errs)
	}
}
