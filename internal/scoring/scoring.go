/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scoring is the weighted alternative to the rule cascade: every
// candidate type gets a numeric score from independent heuristics, close
// calls are flagged as doubtful, and a small set of adjacent-context rules
// breaks near-ties. The cascade and this scorer are interchangeable
// strategies behind screenplay.Classifier; neither overrides the other.
package scoring

import (
	"log/slog"
	"strings"

	"katib/internal/adaptive"
	"katib/internal/memory"
	"katib/internal/screenplay"
)

// Confidence grades a single type's score.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Score is one candidate type's result: the accumulated value, a coarse
// confidence grade, and the ordered reason tags that contributed.
type Score struct {
	Value      float64
	Confidence Confidence
	Reasons    []string
}

// Config holds the scorer's tunables. The defaults reproduce the reference
// behavior; config.Load can override them per installation.
type Config struct {
	// CloseGap: a top-2 gap below this counts as a close call.
	CloseGap float64
	// ReviewThreshold: doubt at or above this flags the line for review.
	ReviewThreshold int
	// FallbackMaxGap: a gap at or above this disables the smart fallback.
	FallbackMaxGap float64
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{CloseGap: 25, ReviewThreshold: 60, FallbackMaxGap: 40}
}

// Scorer scores lines against every candidate type. It reads (never writes)
// the document memory and applies the adaptive system's transition weights.
// Both collaborators are optional.
type Scorer struct {
	cfg Config
	mem *memory.Memory
	ada *adaptive.System
	log *slog.Logger
}

// NewScorer builds a scorer. mem and ada may be nil.
func NewScorer(cfg Config, mem *memory.Memory, ada *adaptive.System, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{cfg: cfg, mem: mem, ada: ada, log: logger}
}

// actionVerbs are present-tense verbs that open Arabic stage directions.
var actionVerbs = []string{
	"يدخل", "تدخل", "يخرج", "تخرج", "ينظر", "تنظر", "يجلس", "تجلس",
	"يقف", "تقف", "يمشي", "تمشي", "يفتح", "تفتح", "يغلق", "تغلق",
	"يبتسم", "تبتسم", "يلتفت", "تلتفت", "يركض", "تركض", "يمسك", "تمسك",
	"يرفع", "ترفع", "نرى", "يظهر", "تظهر",
}

func startsWithActionVerb(n string) bool {
	first, _, _ := strings.Cut(n, " ")
	for _, v := range actionVerbs {
		if first == v {
			return true
		}
	}
	return false
}

// cueName strips the voice-over prefix and trailing colon from a character
// cue candidate, leaving the bare name for memory lookups.
func cueName(n string) string {
	n = strings.TrimPrefix(n, "صوت ")
	n = strings.TrimSuffix(n, ":")
	return strings.TrimSpace(n)
}

func grade(v float64) Confidence {
	switch {
	case v >= 70:
		return ConfidenceHigh
	case v >= 40:
		return ConfidenceMedium
	}
	return ConfidenceLow
}

type tally struct {
	value   float64
	reasons []string
}

func (t *tally) add(points float64, reason string) {
	t.value += points
	t.reasons = append(t.reasons, reason)
}

// ScoreLine computes a score per candidate type for the line at index.
// Types that collect no evidence are absent from the result.
func (s *Scorer) ScoreLine(raw string, prev []screenplay.Type, index int) map[screenplay.Type]Score {
	n := screenplay.Normalize(raw)
	if n == "" {
		return nil
	}
	block := screenplay.BlockInfoAt(prev, index)
	last := screenplay.LastNonBlank(prev, index)
	tallies := make(map[screenplay.Type]*tally)
	at := func(t screenplay.Type) *tally {
		if tallies[t] == nil {
			tallies[t] = &tally{}
		}
		return tallies[t]
	}

	// Exact-shape signals first; these dominate when present.
	if screenplay.IsBasmala(raw) {
		at(screenplay.TypeBasmala).add(100, "exact-phrase")
	}
	if screenplay.IsSceneHeaderTop(raw) {
		at(screenplay.TypeSceneHeaderTop).add(95, "scene-number")
	}
	if screenplay.IsTransition(raw) {
		at(screenplay.TypeTransition).add(90, "transition-phrase")
	}
	if screenplay.IsParenthetical(raw) {
		at(screenplay.TypeParenthetical).add(85, "wrapped-parens")
	}
	if t, ok := screenplay.SceneHeaderContinuation(raw, last); ok {
		at(t).add(90, "header-continuation")
	}

	s.scoreCharacter(n, block, last, at)
	s.scoreDialogue(n, block, last, at)
	s.scoreAction(n, block, last, at)

	out := make(map[screenplay.Type]Score, len(tallies))
	for t, ty := range tallies {
		v := ty.value
		if s.ada != nil {
			adjusted := s.ada.ImproveScore(t, last, v)
			if adjusted != v {
				ty.reasons = append(ty.reasons, "weight-adjusted")
				v = adjusted
			}
		}
		out[t] = Score{Value: v, Confidence: grade(v), Reasons: ty.reasons}
	}
	return out
}

func (s *Scorer) scoreCharacter(n string, block screenplay.BlockInfo, last screenplay.Type, at func(screenplay.Type) *tally) {
	if !screenplay.IsCharacter(n, screenplay.BlockInfo{}, "") {
		return
	}
	if block.InBlock && last != screenplay.TypeCharacter {
		// a cue shape deep inside a block is almost always dialogue text
		at(screenplay.TypeCharacter).add(10, "cue-shape-in-block")
		return
	}
	c := at(screenplay.TypeCharacter)
	c.add(40, "character-shape")
	if strings.HasSuffix(n, ":") {
		c.add(20, "trailing-colon")
	}
	if strings.HasPrefix(n, "صوت ") {
		c.add(15, "voice-prefix")
	}
	if s.mem != nil {
		if tier, known := s.mem.KnownCharacter(cueName(n)); known {
			if tier == memory.TierHigh {
				c.add(25, "known-character-high")
			} else {
				c.add(15, "known-character-medium")
			}
		}
	}
	if last.IsSceneHeader() {
		c.add(10, "follows-scene-header")
	}
	if len(strings.Fields(n)) <= 3 {
		c.add(5, "short-line")
	}
}

func (s *Scorer) scoreDialogue(n string, block screenplay.BlockInfo, last screenplay.Type, at func(screenplay.Type) *tally) {
	if !block.InBlock {
		return
	}
	d := at(screenplay.TypeDialogue)
	d.add(40, "in-block")
	if last == screenplay.TypeCharacter {
		d.add(25, "after-character")
	}
	if block.Depth >= 1 && block.Depth <= 3 {
		d.add(15, "near-character")
	}
	if screenplay.HasDashPrefix(n) {
		d.add(20, "dash-in-block")
	}
	if screenplay.HasEllipsisPrefix(n) || screenplay.HasOpenQuote(n) {
		d.add(10, "continuation-mark")
	}
}

func (s *Scorer) scoreAction(n string, block screenplay.BlockInfo, last screenplay.Type, at func(screenplay.Type) *tally) {
	a := at(screenplay.TypeAction)
	a.add(20, "default")
	if startsWithActionVerb(n) {
		a.add(25, "verb-start")
	}
	if screenplay.HasDashPrefix(n) && !block.InBlock {
		a.add(30, "dash-outside-block")
	}
	if len(strings.Fields(n)) > 8 {
		a.add(10, "long-line")
	}
	if last.IsSceneHeader() {
		a.add(10, "follows-scene-header")
	}
	if s.mem != nil {
		for _, w := range strings.Fields(n) {
			if s.mem.KnownPlace(w) {
				a.add(10, "known-place")
				break
			}
		}
	}
}
