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

import "fmt"

// Script is a parsed session script: editor commands in file order.
type Script struct {
	Commands []Command
}

// Op names an editor command.
type Op string

const (
	OpInsert    Op = "insert"    // insert X Y TEXT
	OpManual    Op = "manual"    // manual X Y TEXT   (\frac, \matrix or formatted text)
	OpSelect    Op = "select"    // select ID...      (adds to the selection)
	OpDeselect  Op = "deselect"  // deselect ID...
	OpSelectAll Op = "selectall" // selectall
	OpNone      Op = "none"      // none              (clears the selection)
	OpMerge     Op = "merge"     // merge [SEP]
	OpWrap      Op = "wrap"      // wrap CH
	OpFraction  Op = "fraction"  // fraction | fraction X Y NUM DEN
	OpMatrix    Op = "matrix"    // matrix X Y a,b;c,d
	OpEval      Op = "eval"      // eval
	OpUndo      Op = "undo"
	OpRedo      Op = "redo"
	OpMove      Op = "move"   // move ID X Y
	OpDrag      Op = "drag"   // drag ID[,ID...] DX DY
	OpAlign     Op = "align"  // align left|center|top|middle
	OpDelete    Op = "delete" // delete              (selected elements)
	OpRemove    Op = "remove" // remove ID
	OpClear     Op = "clear"
	OpCopy      Op = "copy"
	OpPaste     Op = "paste"
	OpAnswer    Op = "answer" // answer TEXT         (queued reply for the next builder prompt)
	OpBuild     Op = "build"  // build fraction|matrix
	OpPrint     Op = "print"
	OpExpect    Op = "expect" // expect TEXT         (fails the run unless the expression matches)
)

// Command is one script line. Args holds the whitespace separated fields
// before the free text part; Text is the remainder, if the op takes one.
type Command struct {
	Op     Op
	Args   []string
	Text   string
	LineNo int // 1-based line number in the source
}

func (c Command) String() string {
	if c.Text != "" {
		return fmt.Sprintf("%s %v %q", c.Op, c.Args, c.Text)
	}
	return fmt.Sprintf("%s %v", c.Op, c.Args)
}

// Error represents a parse error with position context.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e Error) Error() string { return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message) }
