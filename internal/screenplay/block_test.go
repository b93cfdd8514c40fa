/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import "testing"

func TestBlockInfoDirectlyAfterCharacter(t *testing.T) {
	info := BlockInfoAt([]Type{TypeAction, TypeCharacter}, 2)
	if !info.InBlock || info.Distance != 1 || info.Depth != 1 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.StartType != TypeCharacter {
		t.Fatalf("expected start type character, got %q", info.StartType)
	}
}

func TestBlockInfoSkipsBlanks(t *testing.T) {
	info := BlockInfoAt([]Type{TypeCharacter, TypeBlank, TypeBlank}, 3)
	if !info.InBlock || info.Distance != 3 || info.Depth != 1 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestBlockInfoWalksThroughDialogue(t *testing.T) {
	prev := []Type{TypeCharacter, TypeDialogue, TypeParenthetical, TypeDialogue}
	info := BlockInfoAt(prev, 4)
	if !info.InBlock || info.Distance != 4 || info.Depth != 4 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.StartType != TypeDialogue {
		t.Fatalf("expected nearest non-blank dialogue, got %q", info.StartType)
	}
}

func TestBlockInfoBreakers(t *testing.T) {
	for _, breaker := range []Type{TypeSceneHeaderTop, TypeSceneHeader2, TypeTransition, TypeBasmala, TypeAction} {
		prev := []Type{TypeCharacter, TypeDialogue, breaker}
		if info := BlockInfoAt(prev, 3); info.InBlock {
			t.Fatalf("%s must end the block, got %+v", breaker, info)
		}
	}
}

func TestBlockInfoEmptyHistory(t *testing.T) {
	info := BlockInfoAt(nil, 0)
	if info.InBlock || info.Distance != -1 {
		t.Fatalf("unexpected info at start of document: %+v", info)
	}
}

func TestBlockInfoTerminatesAtIndexZero(t *testing.T) {
	prev := make([]Type, 500)
	for i := range prev {
		prev[i] = TypeDialogue
	}
	info := BlockInfoAt(prev, len(prev))
	if info.InBlock || info.Distance != -1 {
		t.Fatalf("scan over dialogue-only history must resolve to outside: %+v", info)
	}
}

func TestLastNonBlank(t *testing.T) {
	prev := []Type{TypeAction, TypeBlank, TypeCharacter, TypeBlank}
	if got := LastNonBlank(prev, 4); got != TypeCharacter {
		t.Fatalf("expected character, got %q", got)
	}
	if got := LastNonBlank(nil, 0); got != "" {
		t.Fatalf("expected empty type, got %q", got)
	}
}
