package symbol

import (
	"fmt"
	"github.com/viant/nxscript/schema"
)

// Scope identifies a naming scope: the database scope holds table IDs, a table scope holds field IDs
type Scope struct {
	DatabaseID string
	TableID    string
}

// IsDatabase returns true for the database scope
func (s Scope) IsDatabase() bool {
	return s.TableID == ""
}

// Table returns the table scope within the same database
func (s Scope) Table(tableID string) Scope {
	return Scope{DatabaseID: s.DatabaseID, TableID: tableID}
}

// Database returns the enclosing database scope
func (s Scope) Database() Scope {
	return Scope{DatabaseID: s.DatabaseID}
}

func (s Scope) String() string {
	if s.IsDatabase() {
		return s.DatabaseID
	}
	return s.DatabaseID + "/" + s.TableID
}

// Warning reports a schema inconsistency found while building a table
type Warning struct {
	Scope   Scope
	RawID   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%v: %v: %v", w.Scope, w.RawID, w.Message)
}

// Table maps raw table and field IDs to display names; immutable once built
type Table struct {
	names   map[Scope]map[string]string
	targets map[Scope]map[string]Scope
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{names: map[Scope]map[string]string{}, targets: map[Scope]map[string]Scope{}}
}

// Build builds a table from a database schema. Duplicate raw IDs within a scope keep the first name.
func Build(db *schema.Database) (*Table, []Warning) {
	ret := NewTable()
	var warnings []Warning
	if db == nil {
		return ret, warnings
	}
	dbScope := Scope{DatabaseID: db.ID}
	for _, table := range db.Tables {
		if w := ret.add(dbScope, table.ID, table.Name); w != nil {
			warnings = append(warnings, *w)
		}
		tableScope := dbScope.Table(table.ID)
		for _, field := range table.Fields {
			if w := ret.add(tableScope, field.ID, field.Name); w != nil {
				warnings = append(warnings, *w)
				continue
			}
			if field.RefTableID != "" {
				target := dbScope.Table(field.RefTableID)
				if field.RefDatabaseID != "" {
					target.DatabaseID = field.RefDatabaseID
				}
				ret.link(tableScope, field.ID, target)
			}
		}
	}
	return ret, warnings
}

func (t *Table) add(scope Scope, rawID, name string) *Warning {
	switch {
	case rawID == "":
		return &Warning{Scope: scope, RawID: rawID, Message: fmt.Sprintf("skipped %q with empty id", name)}
	case name == "":
		return &Warning{Scope: scope, RawID: rawID, Message: "skipped empty name"}
	}
	names, ok := t.names[scope]
	if !ok {
		names = map[string]string{}
		t.names[scope] = names
	}
	if prev, ok := names[rawID]; ok {
		return &Warning{Scope: scope, RawID: rawID, Message: fmt.Sprintf("duplicate id: kept %q, ignored %q", prev, name)}
	}
	names[rawID] = name
	return nil
}

func (t *Table) link(scope Scope, fieldID string, target Scope) {
	targets, ok := t.targets[scope]
	if !ok {
		targets = map[string]Scope{}
		t.targets[scope] = targets
	}
	targets[fieldID] = target
}

// Resolve returns the display name of rawID in scope
func (t *Table) Resolve(scope Scope, rawID string) (string, bool) {
	name, ok := t.names[scope][rawID]
	return name, ok
}

// Target returns the table scope a reference field points to
func (t *Table) Target(scope Scope, fieldID string) (Scope, bool) {
	target, ok := t.targets[scope][fieldID]
	return target, ok
}

// Len returns the number of mapped IDs
func (t *Table) Len() int {
	count := 0
	for _, names := range t.names {
		count += len(names)
	}
	return count
}

// IsEmpty returns true when no ID is mapped
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}
