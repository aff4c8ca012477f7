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
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mathcanvas/internal/domain"
)

// MaxMatrixDim bounds the rows and columns MatrixBuilder accepts.
const MaxMatrixDim = 10

// FractionBuilder builds a fraction from two selected elements, or else asks
// for numerator and denominator and places the fraction at the canvas
// centre. A cancelled or blank answer aborts without touching the document.
func (e *Editor) FractionBuilder(ctx context.Context) (domain.ID, error) {
	if e.sel.Len() == 2 {
		if id, ok := e.FractionFromSelection(); ok {
			return id, nil
		}
	}
	num, err := e.ask(ctx, "Numerator")
	if err != nil {
		return 0, err
	}
	den, err := e.ask(ctx, "Denominator")
	if err != nil {
		return 0, err
	}
	return e.BuildFraction(num, den, e.opts.CanvasCenter), nil
}

// MatrixBuilder asks for the row and column count and then every cell, row
// by row, and places the matrix at the canvas centre. Cells may be blank.
func (e *Editor) MatrixBuilder(ctx context.Context) (domain.ID, error) {
	rows, err := e.askDim(ctx, "Rows")
	if err != nil {
		return 0, err
	}
	cols, err := e.askDim(ctx, "Columns")
	if err != nil {
		return 0, err
	}
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, cols)
		for c := range cells[r] {
			v, err := e.prompt1(ctx, fmt.Sprintf("Row %d, column %d", r+1, c+1))
			if err != nil {
				return 0, err
			}
			cells[r][c] = strings.TrimSpace(v)
		}
	}
	id, _ := e.BuildMatrix(cells, e.opts.CanvasCenter)
	return id, nil
}

// ask prompts for a non-blank answer; blank counts as cancellation.
func (e *Editor) ask(ctx context.Context, label string) (string, error) {
	v, err := e.prompt1(ctx, label)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%s: %w", label, ErrCancelled)
	}
	return v, nil
}

func (e *Editor) askDim(ctx context.Context, label string) (int, error) {
	v, err := e.ask(ctx, label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > MaxMatrixDim {
		return 0, fmt.Errorf("%s %q: %w", label, v, ErrBadDimension)
	}
	return n, nil
}

func (e *Editor) prompt1(ctx context.Context, label string) (string, error) {
	if e.prompt == nil {
		return "", ErrNoPrompter
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", label, errors.Join(ErrCancelled, err))
	}
	v, err := e.prompt.Prompt(ctx, label)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(ErrCancelled, err)
		}
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}
