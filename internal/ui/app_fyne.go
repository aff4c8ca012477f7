//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"mathcanvas/internal/crash"
	"mathcanvas/internal/editor"
	"mathcanvas/internal/export"
	applog "mathcanvas/internal/log"
	"mathcanvas/internal/telemetry"
	"mathcanvas/internal/vector"
	"mathcanvas/internal/version"
)

// Run opens the editor window and blocks until it is closed.
func Run(opts Options) error {
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("ui")
	}
	l.Info("starting UI")
	cfg := opts.Config

	answers := editor.NewQueuePrompter()
	edOpts := editor.OptionsFromConfig(cfg.Editor)
	edOpts.Prompter = answers
	edOpts.Recorder = telemetry.Default()
	ed := editor.New(edOpts)
	defer crash.Recover(crash.Options{Document: ed.Elements})

	fyneApp := app.NewWithID("mathcanvas")
	w := fyneApp.NewWindow("Math Canvas")
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1100), 800)
	winH := max(prefs.IntWithFallback("window.height", 760), 600)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	var mc *MathCanvas
	view := NewView(cfg.Export.FontSize)
	view.SetZoom(prefs.FloatWithFallback("view.zoom", 1))
	mc = NewMathCanvas(ed, view, func() {
		status.SetText(StatusLine(ed, mc.View()))
	})

	// every action goes through here so the canvas and status stay in step
	act := func(name string, f func() bool) func() {
		return func() {
			if !f() {
				l.Debug("action had no effect", slog.String("action", name))
			}
			mc.Update()
		}
	}
	insertAtCenter := func(text string) func() {
		return act("insert", func() bool {
			ed.InsertText(text, mc.CenterDoc())
			return true
		})
	}

	// Palette (left)
	palette := container.NewVBox()
	for _, g := range Palette {
		row := container.NewGridWrap(fyne.NewSize(44, 36))
		for _, s := range g.Symbols {
			row.Add(widget.NewButton(s, insertAtCenter(s)))
		}
		palette.Add(widget.NewLabel(g.Name))
		palette.Add(row)
	}
	freeText := widget.NewEntry()
	freeText.SetPlaceHolder(`\frac{a}{b}, \matrix{1,0;0,1}, x^2`)
	manual := func() {
		text := freeText.Text
		act("manual", func() bool {
			_, ok := ed.InsertManual(text, mc.CenterDoc())
			return ok
		})()
		freeText.SetText("")
	}
	freeText.OnSubmitted = func(string) { manual() }
	palette.Add(widget.NewLabel("Manual entry"))
	palette.Add(freeText)
	palette.Add(widget.NewButton("Insert", manual))

	// Builders collect their answers with dialogs first, then run against the
	// queued answers on the UI goroutine.
	var runBuilder func(b Builder, got []string)
	runBuilder = func(b Builder, got []string) {
		if label, ok := NextPrompt(b, got); ok {
			entry := widget.NewEntry()
			form := dialog.NewForm(label, "OK", "Cancel", []*widget.FormItem{widget.NewFormItem(label, entry)}, func(ok bool) {
				if !ok {
					status.SetText("Cancelled.")
					return
				}
				runBuilder(b, append(got, entry.Text))
			}, w)
			form.Show()
			w.Canvas().Focus(entry)
			return
		}
		answers.Reset()
		for _, a := range got {
			answers.Push(a)
		}
		var err error
		if b == BuildFraction {
			_, err = ed.FractionBuilder(context.Background())
		} else {
			_, err = ed.MatrixBuilder(context.Background())
		}
		answers.Reset()
		switch {
		case errors.Is(err, editor.ErrCancelled):
			status.SetText("Cancelled.")
		case err != nil:
			dialog.ShowError(err, w)
		default:
			mc.Update()
		}
	}
	fraction := func() {
		if len(ed.Selected()) == 2 {
			act("fraction", func() bool { _, ok := ed.FractionFromSelection(); return ok })()
			return
		}
		runBuilder(BuildFraction, nil)
	}

	copyExpression := func() {
		expr := ed.Expression()
		if expr == "" {
			status.SetText("Nothing to copy.")
			return
		}
		w.Clipboard().SetContent(expr)
		status.SetText("Copied: " + expr)
	}
	var fragmentClip []byte
	copySelection := func() {
		b, err := ed.Copy()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		fragmentClip = b
		w.Clipboard().SetContent(string(b))
	}
	pasteSelection := func() {
		data := []byte(w.Clipboard().Content())
		if len(data) == 0 {
			data = fragmentClip
		}
		if len(data) == 0 {
			return
		}
		if _, err := ed.Paste(data); err != nil {
			// not a fragment: paste as plain text
			if text := strings.TrimSpace(string(data)); text != "" {
				ed.InsertManual(text, mc.CenterDoc())
			}
		}
		mc.Update()
	}

	// Operations (top)
	wrapButtons := make([]fyne.CanvasObject, 0, len(Brackets))
	for _, br := range Brackets {
		wrapButtons = append(wrapButtons, widget.NewButton(br+"…", act("wrap", func() bool { _, ok := ed.WrapInBrackets(br); return ok })))
	}
	alignButton := func(label string, mode vector.AlignMode) fyne.CanvasObject {
		return widget.NewButton(label, act("align", func() bool { return ed.Align(mode) }))
	}
	toolbar := container.NewVBox(
		container.NewHBox(
			widget.NewButton("Merge", act("merge", func() bool { _, ok := ed.Merge(""); return ok })),
			widget.NewButton("Merge ␣", act("merge", func() bool { _, ok := ed.Merge(" "); return ok })),
			widget.NewButton("Fraction", fraction),
			widget.NewButton("Matrix", func() { runBuilder(BuildMatrix, nil) }),
			widget.NewButton("Evaluate", act("evaluate", func() bool { _, ok := ed.Evaluate(); return ok })),
			widget.NewSeparator(),
			widget.NewButton("Undo", act("undo", ed.Undo)),
			widget.NewButton("Redo", act("redo", ed.Redo)),
			widget.NewButton("Delete", act("delete", func() bool { return ed.DeleteSelected() > 0 })),
			widget.NewButton("Clear", func() {
				if !ed.HasContent() {
					return
				}
				dialog.ShowConfirm("Clear", "Remove every element? You can Undo this action.", func(ok bool) {
					if ok {
						act("clear", ed.Clear)()
					}
				}, w)
			}),
		),
		container.NewHBox(append(append([]fyne.CanvasObject{widget.NewLabel("Wrap")}, wrapButtons...),
			widget.NewSeparator(),
			widget.NewLabel("Align"),
			alignButton("Left", vector.AlignLeft),
			alignButton("Center", vector.AlignCenter),
			alignButton("Top", vector.AlignTop),
			alignButton("Middle", vector.AlignMiddle),
			widget.NewSeparator(),
			widget.NewButton("−", func() { v := mc.View(); v.ZoomOut(); mc.SetView(v) }),
			widget.NewButton("100%", func() { v := mc.View(); v.ResetZoom(); mc.SetView(v) }),
			widget.NewButton("+", func() { v := mc.View(); v.ZoomIn(); mc.SetView(v) }),
			widget.NewButton("Copy expression", copyExpression),
		)...),
	)

	// Export menu
	exportItem := func(label, ext string) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() {
			if !ed.HasContent() {
				dialog.ShowInformation(label, "The canvas is empty.", w)
				return
			}
			save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				if uc == nil {
					return
				}
				outPath := uc.URI().Path()
				_ = uc.Close()
				if err := export.ToFile(outPath, ed.Elements(), export.OptionsFromConfig(cfg.Export)); err != nil {
					dialog.ShowError(err, w)
					return
				}
				l.Info("exported", slog.String("path", outPath))
				status.SetText("Exported to " + outPath)
			}, w)
			save.SetFileName("expression" + ext)
			save.SetFilter(fstorage.NewExtensionFileFilter([]string{ext}))
			save.Show()
		})
	}
	fileMenu := fyne.NewMenu("File",
		exportItem("Export SVG…", ".svg"),
		exportItem("Export PNG…", ".png"),
		exportItem("Export PDF…", ".pdf"),
		exportItem("Export text…", ".txt"),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", act("undo", ed.Undo)),
		fyne.NewMenuItem("Redo", act("redo", ed.Redo)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", copySelection),
		fyne.NewMenuItem("Paste", pasteSelection),
		fyne.NewMenuItem("Copy expression", copyExpression),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Select all", func() { ed.SelectAll(); mc.Update() }),
		fyne.NewMenuItem("Delete selected", act("delete", func() bool { return ed.DeleteSelected() > 0 })),
	)
	aboutMenu := fyne.NewMenu("About", fyne.NewMenuItem("About", func() {
		dialog.ShowInformation("About", fmt.Sprintf("mathcanvas %s", version.String()), w)
	}))
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, aboutMenu))

	shortcut := func(key fyne.KeyName, f func()) {
		w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { f() })
	}
	shortcut(fyne.KeyZ, act("undo", ed.Undo))
	shortcut(fyne.KeyY, act("redo", ed.Redo))
	shortcut(fyne.KeyC, copySelection)
	shortcut(fyne.KeyV, pasteSelection)
	shortcut(fyne.KeyA, func() { ed.SelectAll(); mc.Update() })
	shortcut(fyne.KeyE, copyExpression)
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			act("delete", func() bool { return ed.DeleteSelected() > 0 })()
		case fyne.KeyEscape:
			ed.ClearSelection()
			mc.Update()
		}
	})

	left := container.NewVScroll(palette)
	left.SetMinSize(fyne.NewSize(260, 0))
	w.SetContent(container.NewBorder(toolbar, status, left, nil, mc))

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		prefs.SetFloat("view.zoom", mc.View().Zoom)
		w.Close()
	})

	mc.Update()
	w.ShowAndRun()
	return nil
}
