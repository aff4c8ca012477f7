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

import "context"

// QueuePrompter answers prompts from a queue filled ahead of time, for
// callers that collect input before running a builder. An empty queue
// answers with ErrCancelled.
type QueuePrompter struct {
	items []string
}

// NewQueuePrompter returns a prompter that replays answers in order.
func NewQueuePrompter(answers ...string) *QueuePrompter {
	return &QueuePrompter{items: append([]string(nil), answers...)}
}

// Push queues one more answer.
func (q *QueuePrompter) Push(s string) { q.items = append(q.items, s) }

// Len is the number of answers left.
func (q *QueuePrompter) Len() int { return len(q.items) }

// Reset drops all queued answers.
func (q *QueuePrompter) Reset() { q.items = nil }

func (q *QueuePrompter) Prompt(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(q.items) == 0 {
		return "", ErrCancelled
	}
	s := q.items[0]
	q.items = q.items[1:]
	return s, nil
}
