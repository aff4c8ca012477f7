/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a crash report plus a dump of the open
// document, so work can be recovered by pasting the dump back in.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"mathcanvas/internal/domain"
	"mathcanvas/internal/fragment"
	applog "mathcanvas/internal/log"
	"mathcanvas/internal/storage"
	"mathcanvas/internal/telemetry"
	"mathcanvas/internal/version"
)

// exitFn is replaced in tests.
var exitFn = os.Exit

// Options tells Recover where to write and what to save.
type Options struct {
	// Dir receives the report; empty means os.TempDir().
	Dir string
	// Document returns the live elements. It may be nil.
	Document func() []domain.Element
}

// Recover handles a panic: it logs the stack, writes a crash report and a
// document dump, and exits with status 2.
//
// Usage: defer crash.Recover(crash.Options{Document: ed.Elements})
func Recover(opts Options) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	stamp := time.Now().Format("20060102-150405")
	dump, err := writeDocument(opts, stamp)
	if err != nil {
		l.Error("document dump failed", slog.Any("err", err))
	} else if dump != "" {
		l.Info("document dump written", slog.String("path", dump))
	}
	reportPath, err := writeReport(opts.Dir, stamp, r, stack, dump)
	if err != nil {
		l.Error("crash report failed", slog.Any("err", err))
	}

	_, _ = fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
	if dump != "" {
		_, _ = fmt.Fprintf(os.Stderr, "Your document was saved to: %s\n", dump)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func reportDir(dir string) string {
	if dir == "" {
		return os.TempDir()
	}
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

// writeDocument saves the document as a clipboard fragment. The snapshot
// callback itself may panic on a corrupted editor; that is reported as an error.
func writeDocument(opts Options, stamp string) (path string, err error) {
	if opts.Document == nil {
		return "", nil
	}
	defer func() {
		if r := recover(); r != nil {
			path, err = "", fmt.Errorf("snapshot document: %v", r)
		}
	}()
	elems := opts.Document()
	data, err := fragment.Encode(elems)
	if err != nil {
		return "", err
	}
	path = filepath.Join(reportDir(opts.Dir), fmt.Sprintf("crash-%s.mathcanvas.json", stamp))
	return path, storage.WriteFileAtomic(path, data, 0o644)
}

func writeReport(dir, stamp string, panicVal any, stack []byte, dump string) (string, error) {
	path := filepath.Join(reportDir(dir), fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "mathcanvas crash report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if dump != "" {
		_, _ = fmt.Fprintf(&buf, "Document: %s\n", dump)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := storage.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	// the report carries no document content; the dump stays local
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}
