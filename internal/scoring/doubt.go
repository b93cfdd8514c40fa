/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scoring

import (
	"sort"
	"strings"

	"katib/internal/screenplay"
)

// Candidate is a scored type in ranking order.
type Candidate struct {
	Type  screenplay.Type
	Score float64
}

// ExtractTop2 returns the two highest-scoring candidates, descending, or
// nil when fewer than two types collected any score. Equal scores order by
// type name so ranking is deterministic.
func ExtractTop2(scores map[screenplay.Type]Score) []Candidate {
	if len(scores) < 2 {
		return nil
	}
	all := make([]Candidate, 0, len(scores))
	for t, sc := range scores {
		all = append(all, Candidate{Type: t, Score: sc.Value})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Type < all[j].Type
	})
	return all[:2]
}

// CalculateDoubtScore turns the gap between the top two candidates into a
// 0–100 ambiguity measure. A gap at or beyond CloseGap means clean
// separation and zero doubt; inside it doubt rises linearly, with a penalty
// when even the winner's confidence is low. needsReview fires at the
// configured threshold.
func (s *Scorer) CalculateDoubtScore(scores map[screenplay.Type]Score) (doubt int, needsReview bool) {
	top2 := ExtractTop2(scores)
	if top2 == nil {
		return 0, false
	}
	gap := top2[0].Score - top2[1].Score
	if gap >= s.cfg.CloseGap {
		return 0, false
	}
	doubt = int(100 * (s.cfg.CloseGap - gap) / s.cfg.CloseGap)
	if scores[top2[0].Type].Confidence == ConfidenceLow {
		doubt += 15
	}
	if doubt > 100 {
		doubt = 100
	}
	return doubt, doubt >= s.cfg.ReviewThreshold
}

// dialogueShaped reports whether a raw line looks like speech: a
// continuation mark, or plain short Arabic text that matches none of the
// structural shapes.
func dialogueShaped(raw string) bool {
	n := screenplay.Normalize(raw)
	if n == "" {
		return false
	}
	if screenplay.IsBasmala(raw) || screenplay.IsSceneHeaderTop(raw) ||
		screenplay.IsTransition(raw) || screenplay.IsParenthetical(raw) {
		return false
	}
	if screenplay.HasDashPrefix(n) || screenplay.HasEllipsisPrefix(n) || screenplay.HasOpenQuote(n) {
		return true
	}
	if strings.HasSuffix(n, ":") {
		return false // reads as a cue, not as speech
	}
	return len(strings.Fields(n)) <= 12
}

// ApplySmartFallback breaks a near-tie between the top two candidates using
// three adjacent-context rules, tried in order:
//
//  1. the next line is dialogue-shaped: a cue fits here, prefer character
//  2. there is no following line to speak: prefer action
//  3. the previous line was a cue: prefer dialogue
//
// The fallback refuses to act when the gap is already decisive (>=
// FallbackMaxGap) or when no rule applies.
func (s *Scorer) ApplySmartFallback(top2 []Candidate, prevType screenplay.Type, nextLine, _ string) (screenplay.Type, bool) {
	if len(top2) < 2 {
		return "", false
	}
	if top2[0].Score-top2[1].Score >= s.cfg.FallbackMaxGap {
		return "", false
	}
	switch {
	case dialogueShaped(nextLine):
		return screenplay.TypeCharacter, true
	case screenplay.IsBlank(nextLine):
		return screenplay.TypeAction, true
	case prevType == screenplay.TypeCharacter:
		return screenplay.TypeDialogue, true
	}
	return "", false
}
