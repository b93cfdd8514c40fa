/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package memory keeps the document-local table of recurring character and
// place names. Scoring consults it to bias close calls toward names the
// document has already taught us; it is only ever written through explicit
// observations, never as a side effect of a lookup.
package memory

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Tier grades how certain an observation (or a stored name) is.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
)

// Points added per observation, and the thresholds a total must reach for a
// stored name to answer lookups at that tier.
const (
	highPoints      = 2
	mediumPoints    = 1
	highThreshold   = 3
	mediumThreshold = 1
)

// Memory accumulates confidence points per normalized name. Not safe for
// concurrent writers; callers sharing one document must serialize access.
type Memory struct {
	characters map[string]int
	places     map[string]struct{}
}

// New returns an empty memory.
func New() *Memory {
	return &Memory{
		characters: make(map[string]int),
		places:     make(map[string]struct{}),
	}
}

// normalizeName trims whitespace and a trailing colon. Names shorter than
// two runes are rejected (single letters are noise, not names).
func normalizeName(name string) (string, bool) {
	n := strings.TrimSpace(name)
	n = strings.TrimSuffix(n, ":")
	n = strings.TrimSpace(n)
	if utf8.RuneCountInString(n) < 2 {
		return "", false
	}
	return n, true
}

// AddCharacter records one observation of a character name at the given
// tier. Unknown tiers count as medium.
func (m *Memory) AddCharacter(name string, tier Tier) {
	n, ok := normalizeName(name)
	if !ok {
		return
	}
	pts := mediumPoints
	if tier == TierHigh {
		pts = highPoints
	}
	m.characters[n] += pts
}

// AddPlace records a place name.
func (m *Memory) AddPlace(name string) {
	n, ok := normalizeName(name)
	if !ok {
		return
	}
	m.places[n] = struct{}{}
}

// KnownCharacter reports whether name has accumulated enough points to be
// trusted, and at which tier.
func (m *Memory) KnownCharacter(name string) (Tier, bool) {
	n, ok := normalizeName(name)
	if !ok {
		return "", false
	}
	switch pts := m.characters[n]; {
	case pts >= highThreshold:
		return TierHigh, true
	case pts >= mediumThreshold:
		return TierMedium, true
	}
	return "", false
}

// KnownPlace reports whether name was recorded as a place.
func (m *Memory) KnownPlace(name string) bool {
	n, ok := normalizeName(name)
	if !ok {
		return false
	}
	_, present := m.places[n]
	return present
}

// Characters returns the stored normalized character names, sorted for
// stable output.
func (m *Memory) Characters() []string {
	out := make([]string, 0, len(m.characters))
	for n := range m.characters {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Places returns the stored normalized place names, sorted.
func (m *Memory) Places() []string {
	out := make([]string, 0, len(m.places))
	for n := range m.places {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// CharacterPoints exposes the raw point total for a stored name; used by
// persistence.
func (m *Memory) CharacterPoints(name string) int {
	n, ok := normalizeName(name)
	if !ok {
		return 0
	}
	return m.characters[n]
}

// RestoreCharacter reinstates a name with a known point total, bypassing the
// per-observation increments. Used when loading a saved document session.
func (m *Memory) RestoreCharacter(name string, points int) {
	n, ok := normalizeName(name)
	if !ok || points <= 0 {
		return
	}
	m.characters[n] = points
}

// Clear resets both tables.
func (m *Memory) Clear() {
	m.characters = make(map[string]int)
	m.places = make(map[string]struct{})
}
