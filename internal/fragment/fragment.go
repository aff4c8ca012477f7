/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package fragment encodes selected canvas elements for the clipboard and
// decodes pasted data back into elements. Pasted bytes are validated against
// an embedded JSON schema before they are trusted.
package fragment

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"mathcanvas/internal/domain"
)

// Format tags clipboard payloads produced by Encode.
const (
	Format  = "mathcanvas/fragment"
	Version = 1
)

// ErrInvalid is returned when pasted data is not a fragment.
var ErrInvalid = errors.New("fragment: invalid data")

//go:embed fragment.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiled() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

type payload struct {
	Format   string           `json:"format"`
	Version  int              `json:"version"`
	Elements []domain.Element `json:"elements"`
}

// Encode serializes elems, keeping their ids and positions.
func Encode(elems []domain.Element) ([]byte, error) {
	p := payload{Format: Format, Version: Version, Elements: make([]domain.Element, len(elems))}
	for i, e := range elems {
		p.Elements[i] = e.Clone()
	}
	return json.MarshalIndent(p, "", "  ")
}

// Decode validates data and returns the elements it carries.
// Validation failures wrap ErrInvalid and list the schema violations.
func Decode(data []byte) ([]domain.Element, error) {
	s, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("load fragment schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for i := range p.Elements {
		if p.Elements[i].Kind.Type == domain.KindMatrix {
			p.Elements[i].Kind = domain.Matrix(p.Elements[i].Kind.Rows)
		}
	}
	return p.Elements, nil
}
