/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

// SpacingRule says what to do with the blank lines between two typed lines.
type SpacingRule int

const (
	// SpacingDefault passes buffered blanks through untouched.
	SpacingDefault SpacingRule = iota
	// SpacingSingle keeps exactly one blank separator.
	SpacingSingle
	// SpacingNone drops every buffered blank.
	SpacingNone
)

type typePair struct{ prev, next Type }

// enterSpacing is the fixed rule table over ordered type pairs. Pairs not
// listed here, and any pair with a blank on either side, fall back to
// SpacingDefault.
var enterSpacing = map[typePair]SpacingRule{
	{TypeBasmala, TypeSceneHeader1}:      SpacingSingle,
	{TypeBasmala, TypeSceneHeaderTop}:    SpacingSingle,
	{TypeSceneHeader3, TypeAction}:       SpacingSingle,
	{TypeAction, TypeAction}:             SpacingSingle,
	{TypeAction, TypeCharacter}:          SpacingSingle,
	{TypeCharacter, TypeDialogue}:        SpacingNone,
	{TypeDialogue, TypeCharacter}:        SpacingSingle,
	{TypeDialogue, TypeAction}:           SpacingSingle,
	{TypeDialogue, TypeTransition}:       SpacingSingle,
	{TypeAction, TypeTransition}:         SpacingSingle,
	{TypeTransition, TypeSceneHeader1}:   SpacingSingle,
	{TypeTransition, TypeSceneHeaderTop}: SpacingSingle,
}

// EnterSpacingRule returns the separator rule for an ordered (prev, next)
// pair of line types.
func EnterSpacingRule(prev, next Type) SpacingRule {
	if prev == TypeBlank || next == TypeBlank {
		return SpacingDefault
	}
	return enterSpacing[typePair{prev, next}]
}

// ApplyEnterSpacing rewrites the blank separators of a classified document
// according to the rule table. Blanks are buffered until the next non-blank
// line decides their fate; a kept separator reuses a buffered blank when one
// exists so original text survives where possible. Leading blanks before the
// first line and trailing blanks at end of input always pass through.
func ApplyEnterSpacing(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	var buffered []Line
	prev := TypeBlank // no previous non-blank yet

	for _, ln := range lines {
		if ln.Type == TypeBlank {
			buffered = append(buffered, ln)
			continue
		}
		switch EnterSpacingRule(prev, ln.Type) {
		case SpacingSingle:
			if len(buffered) > 0 {
				out = append(out, buffered[0])
			} else {
				out = append(out, Line{Text: "", Type: TypeBlank})
			}
		case SpacingNone:
			// drop them all
		default:
			out = append(out, buffered...)
		}
		buffered = buffered[:0]
		out = append(out, ln)
		prev = ln.Type
	}
	// trailing blanks flush unconditionally
	out = append(out, buffered...)
	return out
}
