/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package screenplay classifies the lines of an Arabic (partly Latin)
// screenplay into structural roles and derives the blank-line layout those
// roles imply. The core entry points are Engine.Run for classification and
// ApplyEnterSpacing for the layout pass.
package screenplay

// Type is the structural role assigned to a single screenplay line.
// The set is closed; classifiers never produce values outside it.
type Type string

const (
	TypeBasmala        Type = "basmala"
	TypeSceneHeaderTop Type = "scene-header-top-line"
	TypeSceneHeader1   Type = "scene-header-1"
	TypeSceneHeader2   Type = "scene-header-2"
	TypeSceneHeader3   Type = "scene-header-3"
	TypeTransition     Type = "transition"
	TypeParenthetical  Type = "parenthetical"
	TypeCharacter      Type = "character"
	TypeDialogue       Type = "dialogue"
	TypeAction         Type = "action"
	TypeBlank          Type = "blank"
)

// Types lists every assignable type. Useful for iteration in scoring and
// statistics code.
var Types = []Type{
	TypeBasmala, TypeSceneHeaderTop, TypeSceneHeader1, TypeSceneHeader2,
	TypeSceneHeader3, TypeTransition, TypeParenthetical, TypeCharacter,
	TypeDialogue, TypeAction, TypeBlank,
}

// IsSceneHeader reports whether t is any of the scene header variants.
func (t Type) IsSceneHeader() bool {
	switch t {
	case TypeSceneHeaderTop, TypeSceneHeader1, TypeSceneHeader2, TypeSceneHeader3:
		return true
	}
	return false
}

// IsBreaker reports whether t unconditionally ends a dialogue block.
func (t Type) IsBreaker() bool {
	return t.IsSceneHeader() || t == TypeTransition || t == TypeBasmala
}

// Line pairs a raw source line with its assigned type. Text keeps the
// original spelling; only the classifiers look at the normalized form.
type Line struct {
	Text string `json:"text"`
	Type Type   `json:"type"`
}

// BlockInfo describes the dialogue-block context of a line. It is derived
// fresh for every line from the sequence of previously assigned types and is
// never cached across lines.
//
// Distance is the raw index distance to the block's character line (blanks
// included); Depth counts only the non-blank lines in between. StartType is
// the nearest previous non-blank type seen while scanning, or "" at the top
// of the document.
type BlockInfo struct {
	InBlock   bool
	StartType Type
	Distance  int
	Depth     int
}

// Classifier assigns a type to one raw line given the types of every line
// before it. Implementations must be deterministic in (raw, prev) and must
// never look past index except where explicitly documented.
type Classifier interface {
	Classify(raw string, prev []Type, index int) Type
}
