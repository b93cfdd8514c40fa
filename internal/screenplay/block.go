/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

// BlockInfoAt derives the dialogue-block context for the line at index by
// scanning prev[index-1 .. 0]. The scan skips blanks, walks through
// dialogue and parenthetical lines, and stops at the first type that
// resolves the question:
//
//   - character: inside a block, Distance = index - i
//   - scene header, transition, basmala, action: outside
//   - start of history: outside, Distance -1
//
// Blocks are short in practice, so the walk is O(block length); the worst
// case is bounded by index itself.
func BlockInfoAt(prev []Type, index int) BlockInfo {
	info := BlockInfo{Distance: -1}
	if index > len(prev) {
		index = len(prev)
	}
	depth := 0
	for i := index - 1; i >= 0; i-- {
		t := prev[i]
		if t == TypeBlank {
			continue
		}
		if info.StartType == "" {
			info.StartType = t
		}
		depth++
		switch {
		case t == TypeCharacter:
			info.InBlock = true
			info.Distance = index - i
			info.Depth = depth
			return info
		case t == TypeDialogue || t == TypeParenthetical:
			// still inside a possible block, keep walking
		default:
			// breaker or action: the block (if any) ended before here
			return info
		}
	}
	return info
}

// LastNonBlank returns the most recent non-blank type before index, or ""
// when there is none.
func LastNonBlank(prev []Type, index int) Type {
	if index > len(prev) {
		index = len(prev)
	}
	for i := index - 1; i >= 0; i-- {
		if prev[i] != TypeBlank {
			return prev[i]
		}
	}
	return ""
}
