/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"mathcanvas/internal/calc"
	"mathcanvas/internal/config"
	"mathcanvas/internal/crash"
	"mathcanvas/internal/domain"
	"mathcanvas/internal/editor"
	"mathcanvas/internal/export"
	applog "mathcanvas/internal/log"
	"mathcanvas/internal/mathtext"
	"mathcanvas/internal/script"
	"mathcanvas/internal/telemetry"
	"mathcanvas/internal/ui"
	"mathcanvas/internal/version"
)

// document is what a crash report saves; commands that build one set it.
var document func() []domain.Element

func main() {
	defer crash.Recover(crash.Options{Document: func() []domain.Element {
		if document == nil {
			return nil
		}
		return document()
	}})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	telemetry.Default().Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfgPath string
	cfg     config.AppConfig
	log     *slog.Logger
}

// setup loads the config and brings up logging and telemetry before any
// command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.cfgPath != "" {
		a.cfg, err = config.LoadFrom(a.cfgPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lo := applog.FromEnv()
	if a.cfg.Logging.Level != "" {
		lo.Level = a.cfg.Logging.Level
	}
	if a.cfg.Logging.Format != "" {
		lo.Format = a.cfg.Logging.Format
	}
	if a.cfg.Logging.File != "" {
		lo.File = a.cfg.Logging.File
	}
	lo.AddSource = lo.AddSource || a.cfg.Logging.Source
	lo.Writer = cmd.ErrOrStderr()
	applog.Init(lo)
	a.log = applog.WithComponent("cli")

	tc := telemetry.FromEnv()
	tc.OptIn = tc.OptIn || a.cfg.General.TelemetryOptIn
	telemetry.SetDefault(telemetry.New(tc))
	a.log.Debug("start", slog.String("cmd", cmd.Name()), slog.Bool("telemetry", tc.OptIn))
	return nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "mathcanvas",
		Short:             "Compose math expressions from symbols on a free-form canvas",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default: per-user config dir, or $MC_CONFIG)")
	root.AddCommand(versionCmd(), a.runCmd(), a.evalCmd(), a.formatCmd(), a.uiCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "mathcanvas", version.String())
			return err
		},
	}
}

type runFlags struct {
	svg, png, pdf, txt string
	copy               bool
	quiet              bool
	fontFile           string
}

func (a *app) runCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a session script, print the resulting expression and export it",
		Long: `Runs editor commands from a script file, one per line:

  insert X Y TEXT      manual X Y TEXT     matrix X Y a,b;c,d
  select ID...         deselect ID...      selectall | none
  merge [SEP]          wrap CH             fraction [X Y NUM DEN]
  eval                 undo | redo         move ID X Y
  drag ID,ID DX DY     align left|center|top|middle
  delete               remove ID           clear
  copy | paste         answer TEXT         build fraction|matrix
  print                expect TEXT`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.OutOrStdout(), args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.svg, "svg", "", "write SVG to this file")
	fl.StringVar(&f.png, "png", "", "write PNG to this file")
	fl.StringVar(&f.pdf, "pdf", "", "write PDF to this file")
	fl.StringVar(&f.txt, "txt", "", "write the expression as text to this file")
	fl.StringVar(&f.fontFile, "font", "", "TTF/OTF font used to lay out every export and embedded in PDF output")
	fl.BoolVar(&f.copy, "copy", false, "copy the final expression to the system clipboard")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "do not print the final expression")
	return cmd
}

func (a *app) run(ctx context.Context, out io.Writer, path string, f runFlags) error {
	opts := editor.OptionsFromConfig(a.cfg.Editor)
	opts.Recorder = telemetry.Default()
	opts.Logger = applog.WithComponent("editor")
	r := script.NewRunner(opts, out)
	ed := r.Editor()
	document = ed.Elements

	if err := r.RunFile(ctx, path); err != nil {
		return err
	}
	expr := ed.Expression()
	if !f.quiet {
		fmt.Fprintln(out, expr)
	}

	eo := export.OptionsFromConfig(a.cfg.Export)
	eo.FontFile = f.fontFile
	var errs []error
	for _, target := range []string{f.svg, f.png, f.pdf, f.txt} {
		if target == "" {
			continue
		}
		if err := export.ToFile(target, ed.Elements(), eo); err != nil {
			errs = append(errs, err)
			continue
		}
		a.log.Info("exported", slog.String("path", target))
	}
	if f.copy {
		if err := clipboard.WriteAll(expr); err != nil {
			errs = append(errs, fmt.Errorf("copy to clipboard: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *app) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an arithmetic expression written with canvas symbols (×, ÷, −, ^)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := mathtext.ToArithmetic(strings.Join(args, ""))
			v, err := calc.New().EvalString(text)
			if err != nil {
				return fmt.Errorf("evaluate %q: %w", text, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}

func (a *app) formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <text>",
		Short: `Render math markup such as \alpha or x^2 as Unicode text`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), mathtext.Format(strings.Join(args, " ")))
			return err
		},
	}
}

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Launch the desktop editor (build with -tags fyne)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return ui.Run(ui.Options{Config: a.cfg, Logger: applog.WithComponent("ui")})
		},
	}
}
