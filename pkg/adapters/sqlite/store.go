// Package sqlite provides a SQLite-backed DocumentStore, suited to the
// single-file project layout of a desktop authoring tool.
//
// Named queries live in embedded .sql files managed by dotsql; sqlx
// handles scanning. No ORM, no query strings in Go code.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/qustavo/dotsql"

	"github.com/aretw0/espalier/pkg/domain"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Store implements ports.DocumentStore using SQLite.
type Store struct {
	db  *sqlx.DB
	dot *dotsql.DotSql
}

// Open opens (creating if needed) a SQLite database at path and
// prepares the conditions table. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	return NewFromDB(db)
}

// NewFromDB wraps an existing sqlx handle, loading the embedded named
// queries and ensuring the schema exists.
func NewFromDB(db *sqlx.DB) (*Store, error) {
	dot, err := loadQueries()
	if err != nil {
		return nil, err
	}

	store := &Store{db: db, dot: dot}
	if _, err := dot.Exec(db, "create-conditions-table"); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the condition as a JSON body. A nil tree is stored as
// JSON null so "always true" round-trips.
func (s *Store) Save(ctx context.Context, id string, expr *domain.ConditionExpression) error {
	body, err := json.Marshal(expr)
	if err != nil {
		return fmt.Errorf("failed to marshal condition: %w", err)
	}
	if _, err := s.exec(ctx, "upsert-condition", id, string(body)); err != nil {
		return fmt.Errorf("failed to save condition: %w", err)
	}
	return nil
}

// Load retrieves the condition by owner id.
func (s *Store) Load(ctx context.Context, id string) (*domain.ConditionExpression, error) {
	query, err := s.dot.Raw("get-condition")
	if err != nil {
		return nil, fmt.Errorf("query not found: %w", err)
	}

	var body string
	if err := s.db.GetContext(ctx, &body, s.db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to load condition: %w", err)
	}

	var expr *domain.ConditionExpression
	if err := json.Unmarshal([]byte(body), &expr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal condition: %w", err)
	}
	return expr, nil
}

// Delete removes the condition.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.exec(ctx, "delete-condition", id); err != nil {
		return fmt.Errorf("failed to delete condition: %w", err)
	}
	return nil
}

// List returns the owner ids of all stored conditions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	query, err := s.dot.Raw("list-conditions")
	if err != nil {
		return nil, fmt.Errorf("query not found: %w", err)
	}

	var ids []string
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(query)); err != nil {
		return nil, fmt.Errorf("failed to list conditions: %w", err)
	}
	return ids, nil
}

func (s *Store) exec(ctx context.Context, name string, args ...any) (sql.Result, error) {
	query, err := s.dot.Raw(name)
	if err != nil {
		return nil, fmt.Errorf("query not found: %s", name)
	}
	return s.db.ExecContext(ctx, s.db.Rebind(query), args...)
}

func loadQueries() (*dotsql.DotSql, error) {
	var combined string
	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}
		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		combined += string(content) + "\n"
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load query files: %w", err)
	}

	dot, err := dotsql.LoadFromString(combined)
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}
	return dot, nil
}
