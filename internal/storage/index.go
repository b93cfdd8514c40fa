/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage persists per-project learned state — correction snapshots
// and the memorized character/place names — in an embedded SQLite database
// under the project root. The engine itself never touches this package;
// callers decide when a session's state is worth keeping.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "katib/internal/log"
	"katib/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName stores all per-project state under the project root.
	IndexDirName  = ".katib"
	IndexFileName = "index.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump on breaking
	// changes and add a migration in runMigrations.
	schemaVersion = 1
)

// IndexPath returns the full path to a project's state database file.
func IndexPath(projectRoot string) string {
	return filepath.Join(projectRoot, IndexDirName, IndexFileName)
}

// InitOrOpenIndex ensures the per-project database exists at
// .katib/index.sqlite, opens it, enables WAL mode and ensures the schema.
// The returned *sql.DB is ready for use; callers close it when done.
func InitOrOpenIndex(projectRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_init").With(
		slog.String("root", projectRoot),
	)
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	if err := os.MkdirAll(filepath.Join(projectRoot, IndexDirName), 0o755); err != nil {
		l.Error("create state dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create %s dir: %w", IndexDirName, err)
	}

	uriPath := filepath.ToSlash(IndexPath(projectRoot))
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", uriPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single embedded writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}
	l.Debug("index ready", slog.String("path", IndexPath(projectRoot)))
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id     INTEGER PRIMARY KEY CHECK(id=1),
			schema INTEGER NOT NULL,
			app    TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			kind    TEXT NOT NULL,
			ts      TEXT NOT NULL,
			payload BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_kind_ts ON snapshots(kind, ts DESC);`,
		`CREATE TABLE IF NOT EXISTS names (
			name   TEXT NOT NULL,
			kind   TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (name, kind)
		);`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO version(id, schema, app) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO NOTHING`, schemaVersion, version.String())
	return err
}

// runMigrations brings an older database up to the current schema. Only one
// schema exists so far; the scaffold stays so future bumps have a home.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var current int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id = 1`).Scan(&current)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("database schema %d is newer than supported %d", current, schemaVersion)
	}
	return nil
}
