package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/viant/nxscript/analyzer"
	"github.com/viant/nxscript/dependency"
	"github.com/viant/nxscript/schema"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Store persists analysis runs in SQLite
type Store struct {
	db *sql.DB
}

// Open opens a SQLite store
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect sqlite %v: %w", dsn, err)
	}
	return &Store{db: db}, nil
}

// Init creates tables
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to init store: %w", err)
		}
	}
	return nil
}

// Save writes a database result as a new run and returns the run ID
func (s *Store) Save(ctx context.Context, result *analyzer.DatabaseResult) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	runID, err := save(ctx, tx, result)
	if err != nil {
		_ = tx.Rollback()
		return "", err
	}
	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run %v: %w", runID, err)
	}
	return runID, nil
}

func save(ctx context.Context, tx *sql.Tx, result *analyzer.DatabaseResult) (string, error) {
	runID := uuid.New().String()
	stats := result.Stats
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs (id, database_id, database_name, created_at, table_count, field_count,
		script_count, dependency_count, relationship_count, unresolved_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, result.DatabaseID, result.DatabaseName, time.Now().UTC().Format(time.RFC3339Nano),
		stats.Tables, stats.Fields, stats.Scripts, stats.Dependencies, stats.Relationships, stats.Unresolved); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	for _, script := range result.Scripts {
		origin := script.Origin
		res, err := tx.ExecContext(ctx, `INSERT INTO scripts (run_id, database_id, database_name, table_id, table_name,
			element_id, element_name, code_type, code_category, code, preview, line_count, hash, resolved, unresolved)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, origin.DatabaseID, origin.DatabaseName, origin.TableID, origin.TableName, origin.ElementID,
			origin.ElementName, string(origin.CodeType), string(origin.Category), script.Code, script.Preview, script.LineCount,
			script.Hash, script.Resolved, script.Unresolved)
		if err != nil {
			return "", fmt.Errorf("failed to insert script %v: %w", origin.CodeType, err)
		}
		scriptID, err := res.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("failed to read script id: %w", err)
		}
		for _, ref := range script.Dependencies {
			if _, err = tx.ExecContext(ctx, `INSERT INTO script_dependencies (run_id, script_id, source_database_id,
				target_database_name, reference_type, snippet) VALUES (?, ?, ?, ?, ?, ?)`,
				runID, scriptID, ref.SourceDatabaseID, ref.TargetDatabaseName, string(ref.Type), ref.Snippet); err != nil {
				return "", fmt.Errorf("failed to insert dependency: %w", err)
			}
		}
		for _, table := range script.Tables {
			if _, err = tx.ExecContext(ctx, `INSERT INTO table_references (run_id, script_id, table_name) VALUES (?, ?, ?)`,
				runID, scriptID, table); err != nil {
				return "", fmt.Errorf("failed to insert table reference: %w", err)
			}
		}
	}
	for _, rel := range result.Relationships {
		if _, err := tx.ExecContext(ctx, `INSERT INTO relationships (run_id, source_table_id, source_table_name, source_field_id,
			source_field_name, target_table_id, target_table_name, target_database_id, target_database_name,
			relationship_type, is_composition) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rel.SourceTableID, rel.SourceTableName, rel.SourceFieldID, rel.SourceFieldName, rel.TargetTableID,
			rel.TargetTableName, rel.TargetDatabaseID, rel.TargetDatabaseName, string(rel.Type), rel.Composition); err != nil {
			return "", fmt.Errorf("failed to insert relationship %v.%v: %w", rel.SourceTableID, rel.SourceFieldID, err)
		}
	}
	return runID, nil
}

// LatestRun returns ID of the most recent run of a database, empty when none
func (s *Store) LatestRun(ctx context.Context, databaseID string) (string, error) {
	var runID string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs WHERE database_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		databaseID).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read latest run of %v: %w", databaseID, err)
	}
	return runID, nil
}

// Dependencies returns dependency references recorded by the latest run of a database
func (s *Store) Dependencies(ctx context.Context, databaseID string) ([]dependency.Reference, error) {
	runID, err := s.LatestRun(ctx, databaseID)
	if err != nil || runID == "" {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT d.source_database_id, d.target_database_name, d.reference_type, d.snippet,
		s.database_id, s.database_name, s.table_id, s.table_name, s.element_id, s.element_name, s.code_type, s.code_category
		FROM script_dependencies d JOIN scripts s ON s.id = d.script_id
		WHERE d.run_id = ? ORDER BY d.id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dependencies: %w", err)
	}
	defer rows.Close()
	var result []dependency.Reference
	for rows.Next() {
		var ref dependency.Reference
		var refType, codeType, category string
		var origin = &ref.Origin
		if err = rows.Scan(&ref.SourceDatabaseID, &ref.TargetDatabaseName, &refType, &ref.Snippet,
			&origin.DatabaseID, &origin.DatabaseName, &origin.TableID, &origin.TableName, &origin.ElementID,
			&origin.ElementName, &codeType, &category); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		var ok bool
		if ref.Type, ok = dependency.ParseType(refType); !ok {
			return nil, fmt.Errorf("unsupported reference type: %q", refType)
		}
		if origin.CodeType, err = schema.ParseCodeType(level(origin), codeType); err != nil {
			return nil, err
		}
		if origin.Category, err = schema.ParseCategory(category); err != nil {
			return nil, err
		}
		result = append(result, ref)
	}
	return result, rows.Err()
}

// Tables returns distinct table names referenced by scripts of the latest run of a database
func (s *Store) Tables(ctx context.Context, databaseID string) ([]string, error) {
	runID, err := s.LatestRun(ctx, databaseID)
	if err != nil || runID == "" {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT table_name FROM table_references WHERE run_id = ? ORDER BY table_name`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query table references: %w", err)
	}
	defer rows.Close()
	var result []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table reference: %w", err)
		}
		result = append(result, name)
	}
	return result, rows.Err()
}

// Relationships returns reference field relationships recorded by the latest run of a database
func (s *Store) Relationships(ctx context.Context, databaseID string) ([]*schema.Relationship, error) {
	runID, err := s.LatestRun(ctx, databaseID)
	if err != nil || runID == "" {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT source_table_id, source_table_name, source_field_id, source_field_name,
		target_table_id, target_table_name, target_database_id, target_database_name, relationship_type, is_composition
		FROM relationships WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()
	var result []*schema.Relationship
	for rows.Next() {
		rel := &schema.Relationship{}
		var relType string
		if err = rows.Scan(&rel.SourceTableID, &rel.SourceTableName, &rel.SourceFieldID, &rel.SourceFieldName,
			&rel.TargetTableID, &rel.TargetTableName, &rel.TargetDatabaseID, &rel.TargetDatabaseName, &relType,
			&rel.Composition); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		if rel.Type, err = schema.ParseRelationshipType(relType); err != nil {
			return nil, err
		}
		result = append(result, rel)
	}
	return result, rows.Err()
}

// Close closes the store
func (s *Store) Close() error {
	return s.db.Close()
}

func level(origin *schema.Origin) schema.Level {
	switch {
	case origin.ElementID != "":
		return schema.FieldLevel
	case origin.TableID != "":
		return schema.TableLevel
	}
	return schema.DatabaseLevel
}
