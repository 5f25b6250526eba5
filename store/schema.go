package store

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		database_id TEXT NOT NULL,
		database_name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		table_count INTEGER DEFAULT 0,
		field_count INTEGER DEFAULT 0,
		script_count INTEGER DEFAULT 0,
		dependency_count INTEGER DEFAULT 0,
		relationship_count INTEGER DEFAULT 0,
		unresolved_count INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS scripts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		database_id TEXT NOT NULL,
		database_name TEXT NOT NULL,
		table_id TEXT,
		table_name TEXT,
		element_id TEXT,
		element_name TEXT,
		code_type TEXT NOT NULL,
		code_category TEXT NOT NULL,
		code TEXT NOT NULL,
		preview TEXT,
		line_count INTEGER DEFAULT 0,
		hash TEXT NOT NULL,
		resolved INTEGER DEFAULT 0,
		unresolved INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS script_dependencies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		script_id INTEGER NOT NULL REFERENCES scripts(id),
		source_database_id TEXT NOT NULL,
		target_database_name TEXT,
		reference_type TEXT NOT NULL,
		snippet TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS table_references (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		script_id INTEGER NOT NULL REFERENCES scripts(id),
		table_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS relationships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		source_table_id TEXT NOT NULL,
		source_table_name TEXT NOT NULL,
		source_field_id TEXT NOT NULL,
		source_field_name TEXT NOT NULL,
		target_table_id TEXT NOT NULL,
		target_table_name TEXT NOT NULL,
		target_database_id TEXT,
		target_database_name TEXT,
		relationship_type TEXT NOT NULL,
		is_composition INTEGER DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scripts_run ON scripts(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dependencies_run ON script_dependencies(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_database ON runs(database_id)`,
	`CREATE INDEX IF NOT EXISTS idx_relationships_run ON relationships(run_id)`,
}
