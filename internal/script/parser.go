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
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// shape describes how a command line splits: fixed fields followed by an
// optional free text part. min/max bound the number of fixed fields; a
// negative max means any number.
type shape struct {
	min, max int
	text     textMode
}

type textMode int

const (
	noText textMode = iota
	optText
	needText
)

var shapes = map[Op]shape{
	OpInsert:    {2, 2, needText},
	OpManual:    {2, 2, needText},
	OpSelect:    {1, -1, noText},
	OpDeselect:  {1, -1, noText},
	OpSelectAll: {0, 0, noText},
	OpNone:      {0, 0, noText},
	OpMerge:     {0, 0, optText},
	OpWrap:      {0, 0, needText},
	OpFraction:  {0, 4, noText},
	OpMatrix:    {2, 2, needText},
	OpEval:      {0, 0, noText},
	OpUndo:      {0, 0, noText},
	OpRedo:      {0, 0, noText},
	OpMove:      {3, 3, noText},
	OpDrag:      {3, 3, noText},
	OpAlign:     {1, 1, noText},
	OpDelete:    {0, 0, noText},
	OpRemove:    {1, 1, noText},
	OpClear:     {0, 0, noText},
	OpCopy:      {0, 0, noText},
	OpPaste:     {0, 0, noText},
	OpAnswer:    {0, 0, optText},
	OpBuild:     {1, 1, noText},
	OpPrint:     {0, 0, noText},
	OpExpect:    {0, 0, optText},
}

var reCommand = regexp.MustCompile(`^([A-Za-z]+)(?:\s+(.*))?$`)

// Parse parses a session script.
// Syntax:
//   - one command per line, see the Op constants for the fields
//   - lines starting with "#" or ";" are comments, blank lines are skipped
//   - a line indented by 2+ spaces continues the free text of the previous command
//   - free text wrapped in double quotes is unquoted with Go string syntax,
//     which is how a separator of a single space is written: merge " "
//
// Parsing continues after a bad line so all errors are reported at once.
func Parse(input string) (Script, []Error) {
	s := Script{}
	var errs []Error

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	var last *Command

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")

		if strings.HasPrefix(line, "  ") && last != nil && shapes[last.Op].text != noText {
			if cont := strings.TrimSpace(line); cont != "" {
				last.Text += cont
			}
			continue
		}

		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
			last = nil
			continue
		}

		m := reCommand.FindStringSubmatch(trim)
		if m == nil {
			errs = append(errs, Error{Line: lineNo, Column: 1, Message: "expected a command name"})
			last = nil
			continue
		}
		op := Op(strings.ToLower(m[1]))
		sh, ok := shapes[op]
		if !ok {
			errs = append(errs, Error{Line: lineNo, Column: 1, Message: fmt.Sprintf("unknown command %q", m[1])})
			last = nil
			continue
		}
		cmd, err := split(op, sh, m[2])
		if err != nil {
			errs = append(errs, Error{Line: lineNo, Column: len(m[1]) + 2, Message: err.Error()})
			last = nil
			continue
		}
		cmd.LineNo = lineNo
		s.Commands = append(s.Commands, cmd)
		last = &s.Commands[len(s.Commands)-1]
	}

	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Column: 1, Message: err.Error()})
	}
	return s, errs
}

func split(op Op, sh shape, rest string) (Command, error) {
	cmd := Command{Op: op}
	if sh.text == noText {
		cmd.Args = strings.Fields(rest)
		if n := len(cmd.Args); n < sh.min || (sh.max >= 0 && n > sh.max) {
			return cmd, arityError(op, sh, n)
		}
		return cmd, nil
	}

	for i := 0; i < sh.min; i++ {
		rest = strings.TrimLeft(rest, " \t")
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			end = len(rest)
		}
		if end == 0 {
			return cmd, arityError(op, sh, i)
		}
		cmd.Args = append(cmd.Args, rest[:end])
		rest = rest[end:]
	}
	text := strings.TrimSpace(rest)
	if strings.HasPrefix(text, `"`) {
		u, err := strconv.Unquote(text)
		if err != nil {
			return cmd, fmt.Errorf("bad quoted text %s", text)
		}
		text = u
	}
	if text == "" && sh.text == needText {
		return cmd, fmt.Errorf("%s needs text", op)
	}
	cmd.Text = text
	return cmd, nil
}

func arityError(op Op, sh shape, got int) error {
	switch {
	case sh.min == sh.max:
		return fmt.Errorf("%s takes %d fields, got %d", op, sh.min, got)
	case sh.max < 0:
		return fmt.Errorf("%s takes at least %d fields, got %d", op, sh.min, got)
	default:
		return fmt.Errorf("%s takes %d to %d fields, got %d", op, sh.min, sh.max, got)
	}
}
