/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scoring

import (
	"log/slog"

	"katib/internal/screenplay"
)

// Result is one line's detailed scoring outcome.
type Result struct {
	Index           int
	Text            string
	Type            screenplay.Type
	Scores          map[screenplay.Type]Score
	Candidates      []Candidate // top two, descending; nil if fewer scored
	Doubt           int
	NeedsReview     bool
	FallbackApplied bool
}

// ClassifyDetailed scores one line with full context. nextLine is the
// immediately following raw line ("" at end of input); it is the only
// forward context the scorer is allowed to read, and only the smart
// fallback reads it.
func (s *Scorer) ClassifyDetailed(raw string, prev []screenplay.Type, index int, nextLine string) Result {
	r := Result{Index: index, Text: raw}
	if screenplay.IsBlank(raw) {
		r.Type = screenplay.TypeBlank
		return r
	}
	r.Scores = s.ScoreLine(raw, prev, index)
	r.Candidates = ExtractTop2(r.Scores)
	r.Doubt, r.NeedsReview = s.CalculateDoubtScore(r.Scores)

	if len(r.Scores) == 0 {
		// nothing scored at all: the documented safe default
		r.Type = screenplay.TypeAction
		return r
	}
	if r.Candidates == nil {
		for t := range r.Scores {
			r.Type = t
		}
		return r
	}

	r.Type = r.Candidates[0].Type
	if gap := r.Candidates[0].Score - r.Candidates[1].Score; gap < s.cfg.CloseGap {
		prevType := screenplay.LastNonBlank(prev, index)
		if preferred, ok := s.ApplySmartFallback(r.Candidates, prevType, nextLine, raw); ok {
			// only a type that actually ranked may win the tie-break
			for _, c := range r.Candidates {
				if c.Type == preferred {
					r.Type = preferred
					r.FallbackApplied = true
					break
				}
			}
		}
	}
	return r
}

// Classify satisfies screenplay.Classifier. Without batch context there is
// no adjacent line to consult, so the smart fallback never fires here.
func (s *Scorer) Classify(raw string, prev []screenplay.Type, index int) screenplay.Type {
	return s.ClassifyDetailed(raw, prev, index, "").Type
}

// ClassifyBatchDetailed scores a whole document in one sequential pass and
// returns a detailed result per line, blanks included.
func (s *Scorer) ClassifyBatchDetailed(document string) []Result {
	raw := screenplay.SplitLines(document)
	results := make([]Result, 0, len(raw))
	state := make([]screenplay.Type, 0, len(raw))

	for i, line := range raw {
		next := ""
		if i+1 < len(raw) {
			next = raw[i+1]
		}
		r := s.ClassifyDetailed(line, state, len(state), next)
		results = append(results, r)
		state = append(state, r.Type)
	}

	s.log.Debug("batch scored", slog.Int("lines", len(results)))
	return results
}

// GetReviewableLines filters a batch down to the lines flagged for manual
// review.
func GetReviewableLines(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.NeedsReview {
			out = append(out, r)
		}
	}
	return out
}

// DoubtStatistics summarizes a batch for review tooling.
type DoubtStatistics struct {
	Lines        int
	Scored       int
	Reviewable   int
	AverageDoubt float64
	ByType       map[screenplay.Type]int
}

// GetDoubtStatistics aggregates doubt over a batch. Blank lines count
// toward Lines but not toward the doubt average.
func GetDoubtStatistics(results []Result) DoubtStatistics {
	st := DoubtStatistics{Lines: len(results), ByType: make(map[screenplay.Type]int)}
	total := 0
	for _, r := range results {
		st.ByType[r.Type]++
		if r.Type == screenplay.TypeBlank {
			continue
		}
		st.Scored++
		total += r.Doubt
		if r.NeedsReview {
			st.Reviewable++
		}
	}
	if st.Scored > 0 {
		st.AverageDoubt = float64(total) / float64(st.Scored)
	}
	return st
}
