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

const batchDoc = "مشهد 1\nأحمد:\nمرحبا\n\nيدخل أحمد إلى الغرفة"

func TestClassifyBatchDetailed(t *testing.T) {
	results := newTestScorer().ClassifyBatchDetailed(batchDoc)
	want := []screenplay.Type{
		screenplay.TypeSceneHeaderTop,
		screenplay.TypeCharacter,
		screenplay.TypeDialogue,
		screenplay.TypeBlank,
		screenplay.TypeAction,
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, w := range want {
		if results[i].Type != w {
			t.Fatalf("line %d (%q): expected %s, got %s", i, results[i].Text, w, results[i].Type)
		}
	}
}

func TestBatchSmartFallbackOnNearTie(t *testing.T) {
	results := newTestScorer().ClassifyBatchDetailed(batchDoc)
	last := results[len(results)-1]
	// the final line scores dialogue (in reach of the cue) and action
	// (verb opening) within the close-call gap; with nothing following,
	// the fallback settles it as action
	if !last.FallbackApplied {
		t.Fatalf("expected smart fallback on the final line: %+v", last)
	}
	if last.Type != screenplay.TypeAction {
		t.Fatalf("expected action after fallback, got %s", last.Type)
	}
	if !last.NeedsReview {
		t.Fatalf("a near-tie this close must be flagged for review, doubt=%d", last.Doubt)
	}
}

func TestBatchMultiLineSceneHeader(t *testing.T) {
	results := newTestScorer().ClassifyBatchDetailed("مشهد 1\nداخلي - ليل\nمنزل أحمد")
	want := []screenplay.Type{
		screenplay.TypeSceneHeaderTop,
		screenplay.TypeSceneHeader1,
		screenplay.TypeSceneHeader2,
	}
	for i, w := range want {
		if results[i].Type != w {
			t.Fatalf("line %d (%q): expected %s, got %s", i, results[i].Text, w, results[i].Type)
		}
	}
	for _, r := range results {
		if r.NeedsReview {
			t.Fatalf("a clean header must not be flagged: %+v", r)
		}
	}
}

func TestBlankLinesSkipScoring(t *testing.T) {
	r := newTestScorer().ClassifyDetailed("   ", nil, 0, "")
	if r.Type != screenplay.TypeBlank || r.Scores != nil || r.Candidates != nil {
		t.Fatalf("blank line must bypass scoring: %+v", r)
	}
}

func TestClassifierInterface(t *testing.T) {
	var c screenplay.Classifier = newTestScorer()
	if got := c.Classify("مشهد 5", nil, 0); got != screenplay.TypeSceneHeaderTop {
		t.Fatalf("expected scene header, got %s", got)
	}
	if got := c.Classify("بسم الله الرحمن الرحيم", nil, 0); got != screenplay.TypeBasmala {
		t.Fatalf("expected basmala, got %s", got)
	}
}

func TestGetReviewableLines(t *testing.T) {
	results := newTestScorer().ClassifyBatchDetailed(batchDoc)
	review := GetReviewableLines(results)
	if len(review) != 1 {
		t.Fatalf("expected exactly one reviewable line, got %d", len(review))
	}
	if review[0].Index != 4 {
		t.Fatalf("expected the ambiguous final line, got index %d", review[0].Index)
	}
}

func TestGetDoubtStatistics(t *testing.T) {
	results := newTestScorer().ClassifyBatchDetailed(batchDoc)
	st := GetDoubtStatistics(results)
	if st.Lines != 5 || st.Scored != 4 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	if st.Reviewable != 1 {
		t.Fatalf("expected one reviewable line, got %d", st.Reviewable)
	}
	if st.ByType[screenplay.TypeBlank] != 1 || st.ByType[screenplay.TypeDialogue] != 1 {
		t.Fatalf("unexpected type histogram: %+v", st.ByType)
	}
	if st.AverageDoubt <= 0 {
		t.Fatalf("a batch with a near-tie must average above zero, got %v", st.AverageDoubt)
	}
}
