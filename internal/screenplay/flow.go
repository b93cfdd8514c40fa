/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

// Cascade is the deterministic rule-order classifier. Predicates run from
// most to least specific and the first match wins; a line nothing claims is
// action. It keeps no state of its own and never looks ahead, which makes
// every decision reproducible from (line, previous types) alone.
type Cascade struct{}

// NewCascade returns the rule-order classifier.
func NewCascade() *Cascade { return &Cascade{} }

// Classify assigns a type to raw given the types of all earlier lines.
func (c *Cascade) Classify(raw string, prev []Type, index int) Type {
	if IsBlank(raw) {
		return TypeBlank
	}
	block := BlockInfoAt(prev, index)
	last := LastNonBlank(prev, index)

	switch {
	case IsBasmala(raw):
		return TypeBasmala
	case IsSceneHeaderTop(raw):
		return TypeSceneHeaderTop
	}
	if t, ok := SceneHeaderContinuation(raw, last); ok {
		return t
	}
	switch {
	case IsTransition(raw):
		return TypeTransition
	case IsParenthetical(raw):
		return TypeParenthetical
	case IsCharacter(raw, block, last):
		return TypeCharacter
	case IsDialogue(raw, block):
		return TypeDialogue
	case IsAction(raw, block):
		return TypeAction
	}
	return TypeAction
}

// SceneHeaderContinuation classifies the detail lines under a numbered
// scene line: the interior/exterior + time line, the location line, then a
// final detail line (photomontage or extra time/place). Each level is only
// reachable directly below the previous one, so ordinary text after a full
// header falls through to the normal predicates. Transition and
// parenthetical phrases are more specific shapes and are never claimed as
// header content, wherever they stand.
func SceneHeaderContinuation(raw string, last Type) (Type, bool) {
	if IsTransition(raw) || IsParenthetical(raw) {
		return "", false
	}
	n := Normalize(raw)
	switch last {
	case TypeSceneHeaderTop:
		if looksLikeHeaderDetail(n) {
			return TypeSceneHeader1, true
		}
		if looksLikeLocation(n) {
			return TypeSceneHeader2, true
		}
	case TypeSceneHeader1:
		if looksLikeHeaderDetail(n) || looksLikeLocation(n) {
			return TypeSceneHeader2, true
		}
	case TypeSceneHeader2:
		if looksLikeHeaderDetail(n) {
			return TypeSceneHeader3, true
		}
	}
	return "", false
}
