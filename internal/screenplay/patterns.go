/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"regexp"
	"strings"
)

// Stateless line predicates. Each one trims and normalizes its input and
// reports whether the line matches a single structural role; empty lines
// never match. The cascade in flow.go fixes the evaluation order, most to
// least specific.

const basmalaPhrase = "بسم الله الرحمن الرحيم"

var (
	// "مشهد ١", "مشهد 12 - ليل", "SCENE 3". Digits are folded to ASCII by
	// Normalize before this pattern runs.
	reSceneTop = regexp.MustCompile(`^(?:مشهد|م\.|(?i:scene))\s*[:.\-]?\s*([0-9]+)\b`)

	// Character cue: optional voice-over prefix, up to 30 Arabic letters
	// (spaces allowed between words), optional trailing colon.
	reCharacter = regexp.MustCompile(`^(?:صوت\s+)?[\p{Arabic}][\p{Arabic} ]{0,29}:?$`)

	reIntExt  = regexp.MustCompile(`داخلي|خارجي|(?i:\bINT\b|\bEXT\b)`)
	reDayTime = regexp.MustCompile(`ليل|نهار|صباح|مساء|فجر|غروب|عصر|ظهر|(?i:\bDAY\b|\bNIGHT\b)`)
)

// transitions is the closed phrase list, Arabic and Latin, stored without a
// trailing colon. Lookups strip one before comparing.
var transitions = map[string]struct{}{
	"قطع":            {},
	"قطع إلى":        {},
	"قطع الى":        {},
	"اقطع":           {},
	"انتقال":         {},
	"انتقال إلى":     {},
	"انتقال الى":     {},
	"تلاشي":          {},
	"ذوبان":          {},
	"مزج":            {},
	"اختفاء تدريجي":  {},
	"ظهور تدريجي":    {},
	"cut":            {},
	"cut to":         {},
	"smash cut":      {},
	"match cut":      {},
	"fade in":        {},
	"fade out":       {},
	"fade to black":  {},
	"dissolve":       {},
	"dissolve to":    {},
}

var dashPrefixes = []string{"-", "–", "—", "−"}

// HasDashPrefix reports whether the trimmed line opens with a dash rune.
func HasDashPrefix(raw string) bool {
	t := strings.TrimSpace(raw)
	for _, d := range dashPrefixes {
		if strings.HasPrefix(t, d) {
			return true
		}
	}
	return false
}

// HasEllipsisPrefix reports an ellipsis-opened continuation line.
func HasEllipsisPrefix(s string) bool {
	return strings.HasPrefix(s, "...") || strings.HasPrefix(s, "..") || strings.HasPrefix(s, "…")
}

// HasOpenQuote reports a line that opens with a quotation mark.
func HasOpenQuote(s string) bool {
	return strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "«") ||
		strings.HasPrefix(s, "“") || strings.HasPrefix(s, "'")
}

// stripBrackets removes one level of symmetric wrapping brackets.
func stripBrackets(s string) string {
	pairs := [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}, {"«", "»"}, {`"`, `"`}}
	for _, p := range pairs {
		if strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) && len(s) > len(p[0])+len(p[1]) {
			return strings.TrimSpace(s[len(p[0]) : len(s)-len(p[1])])
		}
	}
	return s
}

// IsBasmala matches the opening formula, optionally bracketed. Context free:
// the phrase is recognized wherever it occurs.
func IsBasmala(raw string) bool {
	n := Normalize(raw)
	if n == "" {
		return false
	}
	return stripBrackets(n) == basmalaPhrase
}

// IsSceneHeaderTop matches the numbered scene line ("مشهد ١ ..."). The
// number may use Arabic-Indic digits in the source.
func IsSceneHeaderTop(raw string) bool {
	return reSceneTop.MatchString(Normalize(raw))
}

// SceneNumber extracts the scene number from a top header line, already
// folded to ASCII digits. ok is false when the line is not a top header.
func SceneNumber(raw string) (string, bool) {
	m := reSceneTop.FindStringSubmatch(Normalize(raw))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsTransition matches the closed list of cut/fade/dissolve phrases.
func IsTransition(raw string) bool {
	n := strings.ToLower(Normalize(raw))
	n = strings.TrimSuffix(n, ":")
	n = strings.TrimSpace(n)
	if n == "" {
		return false
	}
	_, ok := transitions[n]
	return ok
}

// IsParenthetical matches a line fully wrapped in parentheses.
func IsParenthetical(raw string) bool {
	n := Normalize(raw)
	if len(n) < 2 {
		return false
	}
	return strings.HasPrefix(n, "(") && strings.HasSuffix(n, ")")
}

// IsCharacter matches a character cue: an Arabic-letter line of at most
// seven words, optionally prefixed with a voice-over marker and closed with
// a colon. Inside a dialogue block a new cue is only legal directly after
// another cue, and then only with an explicit cue marker — a bare word
// right after a speaker is that speaker's first dialogue line, not a new
// cue.
func IsCharacter(raw string, block BlockInfo, lastNonBlank Type) bool {
	n := Normalize(raw)
	if n == "" {
		return false
	}
	if block.InBlock {
		if lastNonBlank != TypeCharacter {
			return false
		}
		if !strings.HasSuffix(n, ":") && !strings.HasPrefix(n, "صوت ") {
			return false
		}
	}
	if len(strings.Fields(n)) > 7 {
		return false
	}
	return reCharacter.MatchString(n)
}

// IsDialogue matches speech inside a dialogue block: dash or ellipsis
// continuations, quoted openings, or a plain line within reach (1–3
// non-blank lines) of the block's character cue. Never matches outside a
// block.
func IsDialogue(raw string, block BlockInfo) bool {
	if !block.InBlock {
		return false
	}
	n := Normalize(raw)
	if n == "" {
		return false
	}
	if HasDashPrefix(n) || HasEllipsisPrefix(n) || HasOpenQuote(n) {
		return true
	}
	return block.Depth >= 1 && block.Depth <= 3
}

// IsAction claims dash-opened lines outside a dialogue block. The same dash
// inside a block is a dialogue continuation, so the predicate refuses it
// there regardless of content. Plain narration reaches action through the
// cascade fallback instead.
func IsAction(raw string, block BlockInfo) bool {
	n := Normalize(raw)
	if n == "" {
		return false
	}
	if !HasDashPrefix(n) {
		return false
	}
	return !block.InBlock
}

// looksLikeHeaderDetail reports whether a line reads as scene header
// continuation content: interior/exterior, time of day, or a photomontage
// marker.
func looksLikeHeaderDetail(n string) bool {
	return reIntExt.MatchString(n) || reDayTime.MatchString(n) || isPhotomontage(n)
}

func isPhotomontage(n string) bool {
	return strings.Contains(n, "فوتومونتاج") || strings.Contains(n, "مونتاج") ||
		strings.Contains(strings.ToLower(n), "photomontage")
}

// looksLikeLocation matches a short place-like line: no trailing colon, no
// dash opening, at most five words. Used only for scene header
// continuation, where position already constrains the candidates; longer
// prose below a header is narration, not a place name.
func looksLikeLocation(n string) bool {
	if n == "" || strings.HasSuffix(n, ":") || HasDashPrefix(n) {
		return false
	}
	if strings.HasPrefix(n, "(") {
		return false
	}
	return len(strings.Fields(n)) <= 5
}
