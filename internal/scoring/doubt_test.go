/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scoring

import (
	"testing"

	"katib/internal/screenplay"
)

func TestExtractTop2(t *testing.T) {
	scores := map[screenplay.Type]Score{
		screenplay.TypeAction:    {Value: 30},
		screenplay.TypeDialogue:  {Value: 80},
		screenplay.TypeCharacter: {Value: 45},
	}
	top2 := ExtractTop2(scores)
	if len(top2) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(top2))
	}
	if top2[0].Type != screenplay.TypeDialogue || top2[1].Type != screenplay.TypeCharacter {
		t.Fatalf("unexpected ranking: %+v", top2)
	}

	if got := ExtractTop2(map[screenplay.Type]Score{screenplay.TypeAction: {Value: 20}}); got != nil {
		t.Fatalf("single candidate must yield nil, got %+v", got)
	}
	if got := ExtractTop2(nil); got != nil {
		t.Fatalf("empty scores must yield nil, got %+v", got)
	}
}

func TestCalculateDoubtScore(t *testing.T) {
	s := newTestScorer()

	wide := map[screenplay.Type]Score{
		screenplay.TypeDialogue: {Value: 80, Confidence: ConfidenceHigh},
		screenplay.TypeAction:   {Value: 20, Confidence: ConfidenceLow},
	}
	if doubt, review := s.CalculateDoubtScore(wide); doubt != 0 || review {
		t.Fatalf("decisive gap must be doubt-free, got %d review=%v", doubt, review)
	}

	narrow := map[screenplay.Type]Score{
		screenplay.TypeDialogue: {Value: 50, Confidence: ConfidenceMedium},
		screenplay.TypeAction:   {Value: 45, Confidence: ConfidenceMedium},
	}
	doubt, review := s.CalculateDoubtScore(narrow)
	if doubt != 80 {
		t.Fatalf("gap 5 of 25 must score doubt 80, got %d", doubt)
	}
	if !review {
		t.Fatalf("doubt 80 must need review")
	}
}

func TestDoubtLowConfidencePenaltyClamps(t *testing.T) {
	s := newTestScorer()
	scores := map[screenplay.Type]Score{
		screenplay.TypeAction:   {Value: 30, Confidence: ConfidenceLow},
		screenplay.TypeDialogue: {Value: 28, Confidence: ConfidenceLow},
	}
	doubt, review := s.CalculateDoubtScore(scores)
	if doubt != 100 {
		t.Fatalf("penalized doubt must clamp at 100, got %d", doubt)
	}
	if !review {
		t.Fatalf("clamped doubt must need review")
	}
}

func TestDialogueShaped(t *testing.T) {
	for _, line := range []string{"مرحبا", "- أهلا", "... نعم", "«اتركني»", "كيف حالك اليوم"} {
		if !dialogueShaped(line) {
			t.Fatalf("expected dialogue-shaped: %q", line)
		}
	}
	for _, line := range []string{"", "مشهد 1", "قطع", "(يبتسم)", "أحمد:", "بسم الله الرحمن الرحيم"} {
		if dialogueShaped(line) {
			t.Fatalf("unexpected dialogue-shaped: %q", line)
		}
	}
}

func TestApplySmartFallbackRules(t *testing.T) {
	s := newTestScorer()
	top2 := []Candidate{
		{Type: screenplay.TypeCharacter, Score: 50},
		{Type: screenplay.TypeAction, Score: 45},
	}

	// rule 1: a speech-like next line argues for a cue here
	if got, ok := s.ApplySmartFallback(top2, screenplay.TypeAction, "مرحبا", ""); !ok || got != screenplay.TypeCharacter {
		t.Fatalf("rule 1: expected character, got %q ok=%v", got, ok)
	}
	// rule 2: nothing follows, nobody is about to speak
	if got, ok := s.ApplySmartFallback(top2, screenplay.TypeAction, "", ""); !ok || got != screenplay.TypeAction {
		t.Fatalf("rule 2: expected action, got %q ok=%v", got, ok)
	}
	// rule 3: right after a cue the line is that speaker's dialogue
	if got, ok := s.ApplySmartFallback(top2, screenplay.TypeCharacter, "قطع", ""); !ok || got != screenplay.TypeDialogue {
		t.Fatalf("rule 3: expected dialogue, got %q ok=%v", got, ok)
	}
	// no rule applies
	if _, ok := s.ApplySmartFallback(top2, screenplay.TypeAction, "قطع", ""); ok {
		t.Fatalf("fallback must abstain when no rule applies")
	}
}

func TestApplySmartFallbackRefusesDecisiveGap(t *testing.T) {
	s := newTestScorer()
	top2 := []Candidate{
		{Type: screenplay.TypeDialogue, Score: 90},
		{Type: screenplay.TypeAction, Score: 20},
	}
	if _, ok := s.ApplySmartFallback(top2, screenplay.TypeCharacter, "مرحبا", ""); ok {
		t.Fatalf("fallback must refuse a decisive gap")
	}
	if _, ok := s.ApplySmartFallback(nil, screenplay.TypeCharacter, "مرحبا", ""); ok {
		t.Fatalf("fallback needs two candidates")
	}
}
