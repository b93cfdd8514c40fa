/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package adaptive learns from user corrections. Every correction reweights
// the (previous type -> assigned type) transition that produced the mistake
// and the transition the user wanted instead; scoring multiplies its raw
// scores by these weights. Weights are relative multipliers, unbounded in
// both directions, and must never be read as probabilities.
package adaptive

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"katib/internal/screenplay"
)

const (
	decayFactor = 0.7
	boostFactor = 1.3

	// repeatThreshold: a transition that keeps producing corrections past
	// this count is flagged as a repeating error.
	repeatThreshold = 3
)

// Context is the situation a correction happened in.
type Context struct {
	PreviousType screenplay.Type `json:"previousType"`
	LineText     string          `json:"lineText"`
}

// Correction is one recorded user fix.
type Correction struct {
	OriginalType  screenplay.Type `json:"originalType"`
	CorrectedType screenplay.Type `json:"correctedType"`
	Context       Context         `json:"context"`
	Timestamp     time.Time       `json:"timestamp"`
	Weight        float64         `json:"weight"`
}

// ErrorPattern aggregates corrections that share a (previous, original)
// transition. Pattern is the display key, e.g. "blank ➜ action".
type ErrorPattern struct {
	Pattern   string `json:"pattern"`
	Frequency int    `json:"frequency"`
}

// System holds the correction log, the derived error patterns and the
// transition weight table. One instance per document session; callers with
// concurrent triggers must serialize access.
type System struct {
	corrections []Correction
	weights     map[string]float64
	patterns    map[string]int
	log         *slog.Logger
}

// New returns an empty correction system.
func New(logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.Default()
	}
	return &System{
		weights:  make(map[string]float64),
		patterns: make(map[string]int),
		log:      logger,
	}
}

func weightKey(prev, t screenplay.Type) string {
	return fmt.Sprintf("%s -> %s", prev, t)
}

func patternKey(prev, original screenplay.Type) string {
	return fmt.Sprintf("%s ➜ %s", prev, original)
}

// RecordCorrection appends a correction, decays the weight of the wrong
// transition, boosts the corrected one and rebuilds the error patterns from
// the full log. It returns true when this correction pushes its pattern past
// the repeat threshold, i.e. the same mistake keeps coming back.
func (s *System) RecordCorrection(lineText string, original, corrected, previous screenplay.Type) bool {
	c := Correction{
		OriginalType:  original,
		CorrectedType: corrected,
		Context:       Context{PreviousType: previous, LineText: lineText},
		Timestamp:     time.Now(),
		Weight:        1.0,
	}
	s.corrections = append(s.corrections, c)

	s.weights[weightKey(previous, original)] = s.weight(previous, original) * decayFactor
	s.weights[weightKey(previous, corrected)] = s.weight(previous, corrected) * boostFactor

	s.rebuildPatterns()

	key := patternKey(previous, original)
	if s.patterns[key] > repeatThreshold {
		s.log.Warn("repeating classification error",
			slog.String("pattern", key),
			slog.Int("frequency", s.patterns[key]))
		return true
	}
	return false
}

// rebuildPatterns recomputes the frequency table from the correction log.
func (s *System) rebuildPatterns() {
	s.patterns = make(map[string]int, len(s.patterns))
	for _, c := range s.corrections {
		s.patterns[patternKey(c.Context.PreviousType, c.OriginalType)]++
	}
}

func (s *System) weight(prev, t screenplay.Type) float64 {
	if w, ok := s.weights[weightKey(prev, t)]; ok {
		return w
	}
	return 1.0
}

// ImproveScore multiplies a base score by the learned weight of the
// (previous -> candidate) transition; 1.0 when the transition was never
// corrected.
func (s *System) ImproveScore(t screenplay.Type, previous screenplay.Type, base float64) float64 {
	return base * s.weight(previous, t)
}

// CommonErrors returns the error patterns sorted by frequency, most common
// first. Ties sort by pattern key so output is stable.
func (s *System) CommonErrors() []ErrorPattern {
	out := make([]ErrorPattern, 0, len(s.patterns))
	for k, f := range s.patterns {
		out = append(out, ErrorPattern{Pattern: k, Frequency: f})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Pattern < out[j].Pattern
	})
	return out
}

// Corrections returns a copy of the correction log.
func (s *System) Corrections() []Correction {
	out := make([]Correction, len(s.corrections))
	copy(out, s.corrections)
	return out
}

// Weights returns a copy of the transition weight table.
func (s *System) Weights() map[string]float64 {
	out := make(map[string]float64, len(s.weights))
	for k, v := range s.weights {
		out[k] = v
	}
	return out
}

// Reset drops all learned state.
func (s *System) Reset() {
	s.corrections = nil
	s.weights = make(map[string]float64)
	s.patterns = make(map[string]int)
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w > 0
}
