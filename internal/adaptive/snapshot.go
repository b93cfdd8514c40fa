/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package adaptive

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// snapshot is the JSON wire form of the learned state.
type snapshot struct {
	Corrections []Correction       `json:"corrections"`
	Weights     map[string]float64 `json:"weights"`
	ExportedAt  string             `json:"exportedAt"`
}

// snapshotSchema validates an import before any state changes. Shape errors
// must never leave the system half-updated.
const snapshotSchema = `{
  "type": "object",
  "required": ["corrections", "weights"],
  "properties": {
    "corrections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["originalType", "correctedType", "context"],
        "properties": {
          "originalType": {"type": "string"},
          "correctedType": {"type": "string"},
          "context": {
            "type": "object",
            "required": ["previousType"],
            "properties": {
              "previousType": {"type": "string"},
              "lineText": {"type": "string"}
            }
          },
          "timestamp": {"type": "string"},
          "weight": {"type": "number"}
        }
      }
    },
    "weights": {
      "type": "object",
      "additionalProperties": {"type": "number", "exclusiveMinimum": 0}
    },
    "exportedAt": {"type": "string"}
  }
}`

var snapshotSchemaLoader = gojsonschema.NewStringLoader(snapshotSchema)

// ExportData serializes corrections and weights with an export timestamp.
func (s *System) ExportData() ([]byte, error) {
	snap := snapshot{
		Corrections: s.Corrections(),
		Weights:     s.Weights(),
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if snap.Corrections == nil {
		snap.Corrections = []Correction{}
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ImportData replaces the learned state with a previously exported
// snapshot. Returns false on malformed input; in that case existing state
// is left untouched.
func (s *System) ImportData(data []byte) bool {
	result, err := gojsonschema.Validate(snapshotSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil || !result.Valid() {
		s.log.Warn("correction snapshot rejected", slog.Any("err", err))
		return false
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("correction snapshot unmarshal failed", slog.Any("err", err))
		return false
	}
	for _, w := range snap.Weights {
		if !validWeight(w) {
			return false
		}
	}

	s.corrections = snap.Corrections
	s.weights = snap.Weights
	if s.weights == nil {
		s.weights = make(map[string]float64)
	}
	s.rebuildPatterns()
	s.log.Info("correction snapshot imported",
		slog.Int("corrections", len(s.corrections)),
		slog.Int("weights", len(s.weights)))
	return true
}
