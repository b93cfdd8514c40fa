/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"log/slog"
	"strings"
)

// Engine drives a full document through a Classifier, one line at a time,
// in order. Blank lines are buffered and flushed before the next non-blank
// line so the classifier always sees a complete, gap-free type history.
// The engine itself decides nothing about line content.
type Engine struct {
	classifier Classifier
	log        *slog.Logger
}

// NewEngine builds an engine around the given classifier strategy. Pass
// NewCascade() for the deterministic baseline.
func NewEngine(c Classifier, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{classifier: c, log: logger}
}

// SplitLines breaks a document into lines, tolerating CRLF endings.
func SplitLines(document string) []string {
	lines := strings.Split(document, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Run classifies every line of the document and returns the (text, type)
// pairs in input order. The returned slice always has one entry per input
// line, blanks included.
func (e *Engine) Run(document string) []Line {
	raw := SplitLines(document)
	out := make([]Line, 0, len(raw))
	state := make([]Type, 0, len(raw))
	var blanks []string

	flush := func() {
		for _, b := range blanks {
			out = append(out, Line{Text: b, Type: TypeBlank})
			state = append(state, TypeBlank)
		}
		blanks = blanks[:0]
	}

	for _, line := range raw {
		if IsBlank(line) {
			blanks = append(blanks, line)
			continue
		}
		flush()
		t := e.classifier.Classify(line, state, len(state))
		out = append(out, Line{Text: line, Type: t})
		state = append(state, t)
	}
	flush()

	e.log.Debug("document classified", slog.Int("lines", len(out)))
	return out
}

// Format runs classification and then normalizes the blank separators.
func (e *Engine) Format(document string) []Line {
	return ApplyEnterSpacing(e.Run(document))
}

// Render joins classified lines back into a document string.
func Render(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}
