package schema

import "strings"

// minFormulaLength skips trivial formulas such as a bare field reference
const minFormulaLength = 3

type (
	// Database represents a Ninox database schema
	Database struct {
		ID     string   `yaml:"id" json:"id"`
		Name   string   `yaml:"name" json:"name"`
		Tables []*Table `yaml:"tables,omitempty" json:"tables,omitempty"`
		Code   []*Code  `yaml:"code,omitempty" json:"code,omitempty"`
	}

	// Table represents a Ninox table (schema type)
	Table struct {
		ID     string   `yaml:"id" json:"id"`
		Name   string   `yaml:"name" json:"name"`
		Fields []*Field `yaml:"fields,omitempty" json:"fields,omitempty"`
		Code   []*Code  `yaml:"code,omitempty" json:"code,omitempty"`
	}

	// Field represents a table field
	Field struct {
		ID              string  `yaml:"id" json:"id"`
		Name            string  `yaml:"name" json:"name"`
		Base            string  `yaml:"base,omitempty" json:"base,omitempty"`
		Required        bool    `yaml:"required,omitempty" json:"required,omitempty"`
		RefTableID      string  `yaml:"refTableId,omitempty" json:"refTableId,omitempty"`
		RefDatabaseID   string  `yaml:"refDatabaseId,omitempty" json:"refDatabaseId,omitempty"`
		RefDatabaseName string  `yaml:"refDatabaseName,omitempty" json:"refDatabaseName,omitempty"`
		Composition     bool    `yaml:"composition,omitempty" json:"composition,omitempty"`
		Code            []*Code `yaml:"code,omitempty" json:"code,omitempty"`
	}

	// Code represents a script attached to a schema element
	Code struct {
		Type CodeType `yaml:"type" json:"type"`
		Body string   `yaml:"body" json:"body"`
	}

	// Origin locates a script within a database
	Origin struct {
		DatabaseID   string   `yaml:"databaseId"`
		DatabaseName string   `yaml:"databaseName"`
		TableID      string   `yaml:"tableId,omitempty"`
		TableName    string   `yaml:"tableName,omitempty"`
		ElementID    string   `yaml:"elementId,omitempty"`
		ElementName  string   `yaml:"elementName,omitempty"`
		CodeType     CodeType `yaml:"codeType"`
		Category     Category `yaml:"category"`
	}

	// Script represents a script body with its location
	Script struct {
		Origin Origin
		Source string
	}
)

// Table returns a table by ID or nil
func (d *Database) Table(id string) *Table {
	for _, table := range d.Tables {
		if table.ID == id {
			return table
		}
	}
	return nil
}

// FieldCount returns the number of fields across all tables
func (d *Database) FieldCount() int {
	count := 0
	for _, table := range d.Tables {
		count += len(table.Fields)
	}
	return count
}

// Scripts enumerates non-blank scripts: database level first, then each table followed by its fields
func (d *Database) Scripts() []*Script {
	var result []*Script
	origin := Origin{DatabaseID: d.ID, DatabaseName: d.Name}
	result = appendScripts(result, origin, d.Code)
	for _, table := range d.Tables {
		tableOrigin := origin
		tableOrigin.TableID = table.ID
		tableOrigin.TableName = table.Name
		result = appendScripts(result, tableOrigin, table.Code)
		for _, field := range table.Fields {
			fieldOrigin := tableOrigin
			fieldOrigin.ElementID = field.ID
			fieldOrigin.ElementName = field.Name
			result = appendScripts(result, fieldOrigin, field.Code)
		}
	}
	return result
}

func appendScripts(result []*Script, origin Origin, codes []*Code) []*Script {
	for _, code := range codes {
		body := strings.TrimSpace(code.Body)
		if body == "" {
			continue
		}
		if code.Type == Formula && len(body) < minFormulaLength {
			continue
		}
		origin.CodeType = code.Type
		origin.Category = code.Type.Category()
		result = append(result, &Script{Origin: origin, Source: code.Body})
	}
	return result
}

// Field returns a field by ID or nil
func (t *Table) Field(id string) *Field {
	for _, field := range t.Fields {
		if field.ID == id {
			return field
		}
	}
	return nil
}
