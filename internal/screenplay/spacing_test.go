/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import "testing"

func TestEnterSpacingRuleTable(t *testing.T) {
	if got := EnterSpacingRule(TypeCharacter, TypeDialogue); got != SpacingNone {
		t.Fatalf("character->dialogue: expected no separator, got %v", got)
	}
	if got := EnterSpacingRule(TypeDialogue, TypeCharacter); got != SpacingSingle {
		t.Fatalf("dialogue->character: expected single separator, got %v", got)
	}
	if got := EnterSpacingRule(TypeBlank, TypeAction); got != SpacingDefault {
		t.Fatalf("blank on the left must be default, got %v", got)
	}
	if got := EnterSpacingRule(TypeAction, TypeBlank); got != SpacingDefault {
		t.Fatalf("blank on the right must be default, got %v", got)
	}
	if got := EnterSpacingRule(TypeParenthetical, TypeDialogue); got != SpacingDefault {
		t.Fatalf("unlisted pair must be default, got %v", got)
	}
	if got := EnterSpacingRule(TypeBasmala, TypeSceneHeaderTop); got != SpacingSingle {
		t.Fatalf("basmala->scene header: expected single separator, got %v", got)
	}
}

func TestApplyEnterSpacingInsertsSeparator(t *testing.T) {
	in := []Line{
		{Text: "يجلس أحمد", Type: TypeAction},
		{Text: "أحمد:", Type: TypeCharacter},
	}
	out := ApplyEnterSpacing(in)
	if len(out) != 3 {
		t.Fatalf("expected synthesized blank, got %d lines", len(out))
	}
	if out[1].Type != TypeBlank || out[1].Text != "" {
		t.Fatalf("expected blank separator, got %+v", out[1])
	}
}

func TestApplyEnterSpacingDropsBlanks(t *testing.T) {
	in := []Line{
		{Text: "أحمد:", Type: TypeCharacter},
		{Text: "", Type: TypeBlank},
		{Text: "", Type: TypeBlank},
		{Text: "مرحبا", Type: TypeDialogue},
	}
	out := ApplyEnterSpacing(in)
	if len(out) != 2 {
		t.Fatalf("expected blanks dropped between cue and dialogue, got %d lines", len(out))
	}
}

func TestApplyEnterSpacingKeepsExactlyOne(t *testing.T) {
	in := []Line{
		{Text: "مرحبا", Type: TypeDialogue},
		{Text: "", Type: TypeBlank},
		{Text: "", Type: TypeBlank},
		{Text: "", Type: TypeBlank},
		{Text: "منى:", Type: TypeCharacter},
	}
	out := ApplyEnterSpacing(in)
	if len(out) != 3 {
		t.Fatalf("expected exactly one separator, got %d lines", len(out))
	}
	if out[1].Type != TypeBlank {
		t.Fatalf("expected reused blank, got %+v", out[1])
	}
}

func TestApplyEnterSpacingPassesLeadingAndTrailingBlanks(t *testing.T) {
	in := []Line{
		{Text: "", Type: TypeBlank},
		{Text: "", Type: TypeBlank},
		{Text: "مشهد 1", Type: TypeSceneHeaderTop},
		{Text: "", Type: TypeBlank},
	}
	out := ApplyEnterSpacing(in)
	if len(out) != 4 {
		t.Fatalf("leading and trailing blanks must pass through, got %d lines", len(out))
	}
	if out[3].Type != TypeBlank {
		t.Fatalf("trailing blank lost: %+v", out[3])
	}
}

func TestApplyEnterSpacingIdempotent(t *testing.T) {
	in := []Line{
		{Text: "مشهد 1", Type: TypeSceneHeaderTop},
		{Text: "يجلس أحمد", Type: TypeAction},
		{Text: "", Type: TypeBlank},
		{Text: "أحمد:", Type: TypeCharacter},
		{Text: "مرحبا", Type: TypeDialogue},
		{Text: "", Type: TypeBlank},
		{Text: "منى:", Type: TypeCharacter},
	}
	once := ApplyEnterSpacing(in)
	twice := ApplyEnterSpacing(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("second pass changed line %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}
