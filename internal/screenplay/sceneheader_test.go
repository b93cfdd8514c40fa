/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import "testing"

func TestParseSceneHeadingSingleLine(t *testing.T) {
	h, consumed := ParseSceneHeading([]string{"مشهد ١ - ليل - داخلي"}, 0)
	if consumed != 1 {
		t.Fatalf("expected 1 line consumed, got %d", consumed)
	}
	if h.SceneNumber != "1" {
		t.Fatalf("expected scene number 1, got %q", h.SceneNumber)
	}
	if !h.Interior || h.Exterior {
		t.Fatalf("expected interior only: %+v", h)
	}
	if h.Time != "ليل" {
		t.Fatalf("expected night, got %q", h.Time)
	}
}

func TestParseSceneHeadingMultiLine(t *testing.T) {
	lines := []string{
		"مشهد 2",
		"خارجي - نهار",
		"حديقة المنزل",
		"فوتومونتاج",
		"يقف أحمد أمام الباب ثم يدخل إلى المنزل مسرعا",
	}
	h, consumed := ParseSceneHeading(lines, 0)
	if consumed != 4 {
		t.Fatalf("expected 4 lines consumed, got %d", consumed)
	}
	if h.SceneNumber != "2" || !h.Exterior || h.Interior {
		t.Fatalf("unexpected heading: %+v", h)
	}
	if h.Time != "نهار" {
		t.Fatalf("expected day, got %q", h.Time)
	}
	if h.Location != "حديقة المنزل" {
		t.Fatalf("expected garden location, got %q", h.Location)
	}
	if !h.Photomontage {
		t.Fatalf("expected photomontage flag: %+v", h)
	}
}

func TestParseSceneHeadingSkipsBlankContinuation(t *testing.T) {
	h, consumed := ParseSceneHeading([]string{"مشهد 4", "", "داخلي"}, 0)
	if consumed != 3 {
		t.Fatalf("expected blank line absorbed, consumed=%d", consumed)
	}
	if !h.Interior {
		t.Fatalf("interior flag lost across blank: %+v", h)
	}
}

func TestParseSceneHeadingNotAHeader(t *testing.T) {
	if _, consumed := ParseSceneHeading([]string{"أحمد:", "مرحبا"}, 0); consumed != 0 {
		t.Fatalf("expected 0 consumed for non-header, got %d", consumed)
	}
	if _, consumed := ParseSceneHeading(nil, 0); consumed != 0 {
		t.Fatalf("expected 0 consumed for empty input, got %d", consumed)
	}
}

func TestParseSceneHeadingStopsAtTransition(t *testing.T) {
	h, consumed := ParseSceneHeading([]string{"مشهد 5", "قطع إلى"}, 0)
	if consumed != 1 {
		t.Fatalf("transition must not be absorbed as a location, consumed=%d", consumed)
	}
	if h.Location != "" {
		t.Fatalf("unexpected location: %q", h.Location)
	}
}

func TestParseSceneHeadingBounded(t *testing.T) {
	lines := []string{"مشهد 9", "ليل", "نهار", "صباح", "مساء", "فجر", "غروب"}
	_, consumed := ParseSceneHeading(lines, 0)
	if consumed != maxHeaderLines {
		t.Fatalf("header must stop at %d lines, consumed %d", maxHeaderLines, consumed)
	}
}
