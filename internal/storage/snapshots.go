/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"katib/internal/memory"
)

// KindAdaptive is the snapshot kind for exported correction data.
const KindAdaptive = "adaptive"

// keepSnapshots bounds how many snapshots of a kind survive a prune.
const keepSnapshots = 10

const insertSnapshotSQL = `INSERT INTO snapshots(kind, ts, payload) VALUES (?, ?, ?)`

const selectLatestSnapshotSQL = `SELECT ts, payload FROM snapshots WHERE kind = ? ORDER BY ts DESC LIMIT 1`

const pruneSnapshotsSQL = `DELETE FROM snapshots WHERE kind = ? AND id NOT IN (
	SELECT id FROM snapshots WHERE kind = ? ORDER BY ts DESC LIMIT ?
)`

// SaveSnapshot stores a payload of the given kind with a timestamp and
// prunes old entries of that kind.
func SaveSnapshot(ctx context.Context, projectRoot, kind string, payload []byte, ts time.Time) error {
	if len(payload) == 0 {
		return errors.New("empty snapshot payload")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if _, err := db.ExecContext(ctx, insertSnapshotSQL, kind, ts.UTC().Format(time.RFC3339Nano), payload); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, pruneSnapshotsSQL, kind, kind, keepSnapshots)
	return err
}

// LatestSnapshot returns the most recent payload of a kind, or nil when the
// project has none.
func LatestSnapshot(ctx context.Context, projectRoot, kind string) ([]byte, time.Time, error) {
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = db.Close() }()
	var tsStr string
	var payload []byte
	err = db.QueryRowContext(ctx, selectLatestSnapshotSQL, kind).Scan(&tsStr, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return payload, time.Time{}, nil // payload still usable without ts
	}
	return payload, ts, nil
}

const upsertNameSQL = `INSERT INTO names(name, kind, points) VALUES (?, ?, ?)
	ON CONFLICT(name, kind) DO UPDATE SET points = excluded.points`

// SaveLearnedNames writes the memory's character and place tables.
func SaveLearnedNames(ctx context.Context, projectRoot string, mem *memory.Memory) error {
	if mem == nil {
		return errors.New("nil memory")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range mem.Characters() {
		if _, err := tx.ExecContext(ctx, upsertNameSQL, name, "character", mem.CharacterPoints(name)); err != nil {
			return err
		}
	}
	for _, name := range mem.Places() {
		if _, err := tx.ExecContext(ctx, upsertNameSQL, name, "place", 0); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadLearnedNames restores stored names into mem, keeping whatever it
// already holds.
func LoadLearnedNames(ctx context.Context, projectRoot string, mem *memory.Memory) error {
	if mem == nil {
		return errors.New("nil memory")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, `SELECT name, kind, points FROM names`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name, kind string
		var points int
		if err := rows.Scan(&name, &kind, &points); err != nil {
			return err
		}
		switch kind {
		case "character":
			mem.RestoreCharacter(name, points)
		case "place":
			mem.AddPlace(name)
		}
	}
	return rows.Err()
}
