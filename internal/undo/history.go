/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"errors"
	"sync"

	"mathcanvas/internal/domain"
)

// DefaultMaxEntries is the history depth used when Config.MaxEntries is unset.
const DefaultMaxEntries = 50

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Config controls the depth cap of the log.
type Config struct {
	// MaxEntries bounds the number of snapshots kept; the oldest is evicted first.
	MaxEntries int
}

// Manager is a linear snapshot log with a cursor marking the current document.
// Entries after the cursor form the redo branch and are dropped by the next push.
// It is safe for concurrent use.
type Manager struct {
	cfg     Config
	mu      sync.Mutex
	history []domain.Snapshot
	cursor  int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	return &Manager{cfg: cfg, cursor: -1}
}

// Push records s as the new current snapshot. A pending redo branch is
// discarded first. The cursor advances by one unless the push evicts the
// oldest entry, in which case it keeps its index.
func (m *Manager) Push(s domain.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor < len(m.history)-1 {
		m.history = m.history[:m.cursor+1]
	}
	m.history = append(m.history, s)
	if len(m.history) > m.cfg.MaxEntries {
		m.history = append([]domain.Snapshot(nil), m.history[1:]...)
		return
	}
	m.cursor++
}

// Undo moves the cursor back and returns the snapshot to restore.
func (m *Manager) Undo() (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor <= 0 {
		return domain.Snapshot{}, ErrNothingToUndo
	}
	m.cursor--
	return m.history[m.cursor], nil
}

// Redo moves the cursor forward and returns the snapshot to restore.
func (m *Manager) Redo() (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor >= len(m.history)-1 {
		return domain.Snapshot{}, ErrNothingToRedo
	}
	m.cursor++
	return m.history[m.cursor], nil
}

// Current returns the snapshot under the cursor.
func (m *Manager) Current() (domain.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor < 0 || m.cursor >= len(m.history) {
		return domain.Snapshot{}, false
	}
	return m.history[m.cursor], true
}

// At returns the i-th retained snapshot, oldest first.
func (m *Manager) At(i int) (domain.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.history) {
		return domain.Snapshot{}, false
	}
	return m.history[i], true
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor > 0
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor < len(m.history)-1
}

// Stats returns the log length and cursor for diagnostics.
func (m *Manager) Stats() (length int, cursor int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history), m.cursor
}

func (m *Manager) MaxEntries() int { return m.cfg.MaxEntries }
