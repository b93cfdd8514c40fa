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

// SceneHeading is the structured form of a scene header. Optional fields
// stay zero when the source lines do not resolve them; a partial header is
// never an error.
type SceneHeading struct {
	SceneNumber  string `json:"sceneNumber"`
	Interior     bool   `json:"interior"`
	Exterior     bool   `json:"exterior"`
	Location     string `json:"location,omitempty"`
	Time         string `json:"time,omitempty"`
	Photomontage bool   `json:"photomontage"`
	Remainder    string `json:"remainder,omitempty"`
}

// maxHeaderLines bounds how many lines a header may span.
const maxHeaderLines = 5

var (
	reInterior = regexp.MustCompile(`داخلي|(?i:\bINT\b)`)
	reExterior = regexp.MustCompile(`خارجي|(?i:\bEXT\b)`)
	reTimeWord = regexp.MustCompile(`ليل|نهار|صباح|مساء|فجر|غروب|عصر|ظهر|(?i:\bDAY\b|\bNIGHT\b)`)
	reHeaderSep = regexp.MustCompile(`\s*[-–—/،,]\s*`)
)

// ParseSceneHeading reads a scene header starting at lines[start] and
// returns the parsed fields plus the number of lines consumed (at most 5).
// If lines[start] is not a numbered scene line, consumed is 0.
func ParseSceneHeading(lines []string, start int) (SceneHeading, int) {
	var h SceneHeading
	if start < 0 || start >= len(lines) {
		return h, 0
	}
	num, ok := SceneNumber(lines[start])
	if !ok {
		return h, 0
	}
	h.SceneNumber = num

	// Whatever trails the number on the top line is header content too:
	// "مشهد ١ - ليل - داخلي" carries the whole heading on one line.
	top := Normalize(lines[start])
	if loc := reSceneTop.FindStringIndex(top); loc != nil {
		h.absorb(top[loc[1]:])
	}
	consumed := 1

	for consumed < maxHeaderLines && start+consumed < len(lines) {
		raw := lines[start+consumed]
		n := Normalize(raw)
		if n == "" {
			consumed++
			continue
		}
		if IsTransition(raw) || IsParenthetical(raw) {
			break
		}
		if !looksLikeHeaderDetail(n) && !looksLikeLocation(n) {
			break
		}
		h.absorb(n)
		consumed++
	}
	return h, consumed
}

// absorb folds one header fragment into the heading: flags first, the rest
// split on separators into time words, location parts and leftover action
// text.
func (h *SceneHeading) absorb(fragment string) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return
	}
	if isPhotomontage(fragment) {
		h.Photomontage = true
	}
	if reInterior.MatchString(fragment) {
		h.Interior = true
	}
	if reExterior.MatchString(fragment) {
		h.Exterior = true
	}

	var locParts, rest []string
	for _, part := range reHeaderSep.Split(fragment, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case reInterior.MatchString(part) || reExterior.MatchString(part) || isPhotomontage(part):
			// consumed as flags above
		case reTimeWord.MatchString(part):
			if h.Time == "" {
				h.Time = reTimeWord.FindString(part)
			}
			if extra := strings.TrimSpace(reTimeWord.ReplaceAllString(part, "")); extra != "" {
				rest = append(rest, extra)
			}
		case len(strings.Fields(part)) <= 5 && h.Location == "":
			locParts = append(locParts, part)
		default:
			rest = append(rest, part)
		}
	}
	if len(locParts) > 0 && h.Location == "" {
		h.Location = strings.Join(locParts, " - ")
	}
	if len(rest) > 0 {
		if h.Remainder != "" {
			h.Remainder += " "
		}
		h.Remainder += strings.Join(rest, " ")
	}
}
