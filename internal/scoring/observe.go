/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scoring

import (
	"strings"

	"katib/internal/memory"
	"katib/internal/screenplay"
)

// ObserveLines feeds classified output into the document memory: character
// cues teach names (colon-terminated cues at high tier, bare ones at
// medium) and location header lines teach places. This is the explicit
// observation step; plain classification never writes to memory.
func ObserveLines(mem *memory.Memory, lines []screenplay.Line) {
	if mem == nil {
		return
	}
	for _, ln := range lines {
		n := screenplay.Normalize(ln.Text)
		switch ln.Type {
		case screenplay.TypeCharacter:
			tier := memory.TierMedium
			if strings.HasSuffix(n, ":") {
				tier = memory.TierHigh
			}
			mem.AddCharacter(cueName(n), tier)
		case screenplay.TypeSceneHeader2:
			mem.AddPlace(n)
		}
	}
}
