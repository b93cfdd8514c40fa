/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tashkeel covers the Arabic vowel and pronunciation marks (fathatan
// through sukun, plus the dagger alef). Hamza and madda marks stay so that
// NFC can recompose أ/إ/آ after stripping.
var tashkeel = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064b, Hi: 0x0652, Stride: 1}, // fathatan..sukun
		{Lo: 0x0670, Hi: 0x0670, Stride: 1}, // superscript alef
	},
}

// stripMarks decomposes to NFD, drops the tashkeel marks and recomposes.
// Built once; transform.String is safe for concurrent use.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(tashkeel)), norm.NFC)

// formatting/control characters that appear in copy-pasted Arabic text and
// must not influence matching: bidi marks, tatweel, BOM, zero-width runes.
func isFormattingRune(r rune) bool {
	switch r {
	case 'ـ', // tatweel
		'\u200b', '\u200c', '\u200d', // zero-width space/non-joiner/joiner
		'\u200e', '\u200f', // LRM, RLM
		'\u202a', '\u202b', '\u202c', '\u202d', '\u202e', // bidi embedding
		'\u2066', '\u2067', '\u2068', '\u2069', // bidi isolates
		'\ufeff': // BOM
		return true
	}
	return unicode.Is(unicode.Cf, r)
}

// Normalize prepares a raw line for pattern matching: diacritics and
// formatting marks are removed, Arabic-Indic digits are folded to ASCII,
// runs of whitespace collapse to a single space, and the result is trimmed.
// Pure function; the original text is kept elsewhere for output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s // malformed UTF-8: match on the raw bytes rather than fail
	}

	var b strings.Builder
	b.Grow(len(out))
	space := false
	for _, r := range out {
		switch {
		case isFormattingRune(r):
			continue
		case unicode.IsSpace(r):
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(FoldDigit(r))
	}
	return b.String()
}

// FoldDigit maps Arabic-Indic and Extended Arabic-Indic digits to their
// ASCII equivalents; every other rune passes through unchanged.
func FoldDigit(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩': // ٠..٩
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹': // ۰..۹
		return '0' + (r - '۰')
	}
	return r
}

// FoldDigits folds every Arabic-Indic digit in s to ASCII.
func FoldDigits(s string) string {
	return strings.Map(FoldDigit, s)
}

// IsBlank reports whether the line contains nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
