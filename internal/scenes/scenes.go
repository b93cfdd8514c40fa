/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scenes builds scene boundaries from classified screenplay lines.
// It treats the classification engine as a black box: input is the ordered
// (text, type) pairs, output is one block per numbered scene.
package scenes

import (
	"katib/internal/screenplay"
)

// SceneBlock is one scene's extent and parsed header.
type SceneBlock struct {
	Start           int    `json:"start"`
	End             int    `json:"end"`
	Number          string `json:"number"`
	Location        string `json:"location,omitempty"`
	Time            string `json:"time,omitempty"`
	Photomontage    bool   `json:"photomontage"`
	RemainingAction string `json:"remainingAction,omitempty"`
}

// Build walks the classified lines and cuts a block at every numbered scene
// line. A block runs from its header to the line before the next header (or
// end of input). Text before the first header belongs to no block.
func Build(lines []screenplay.Line) []SceneBlock {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}

	var blocks []SceneBlock
	for i, l := range lines {
		if l.Type != screenplay.TypeSceneHeaderTop {
			continue
		}
		if len(blocks) > 0 {
			blocks[len(blocks)-1].End = i - 1
		}
		h, _ := screenplay.ParseSceneHeading(texts, i)
		blocks = append(blocks, SceneBlock{
			Start:           i,
			End:             len(lines) - 1,
			Number:          h.SceneNumber,
			Location:        h.Location,
			Time:            h.Time,
			Photomontage:    h.Photomontage,
			RemainingAction: h.Remainder,
		})
	}
	return blocks
}
