package schema

import "fmt"

// ReferenceBase is the field base type of a link to another table
const ReferenceBase = "ref"

// RelationshipType classifies a link between tables
type RelationshipType string

const (
	ManyToOne     RelationshipType = "N:1"
	CrossDatabase RelationshipType = "CROSS_DB"
)

// Relationship represents a reference field linking a source table to a target table
type Relationship struct {
	SourceTableID      string           `yaml:"sourceTableId"`
	SourceTableName    string           `yaml:"sourceTableName"`
	SourceFieldID      string           `yaml:"sourceFieldId"`
	SourceFieldName    string           `yaml:"sourceFieldName"`
	TargetTableID      string           `yaml:"targetTableId"`
	TargetTableName    string           `yaml:"targetTableName"`
	TargetDatabaseID   string           `yaml:"targetDatabaseId,omitempty"`
	TargetDatabaseName string           `yaml:"targetDatabaseName,omitempty"`
	Type               RelationshipType `yaml:"type"`
	Composition        bool             `yaml:"composition,omitempty"`
}

// ParseRelationshipType parses a stored relationship type
func ParseRelationshipType(raw string) (RelationshipType, error) {
	switch candidate := RelationshipType(raw); candidate {
	case ManyToOne, CrossDatabase:
		return candidate, nil
	}
	return "", fmt.Errorf("unsupported relationship type: %q", raw)
}

// Relationships returns reference fields in table then field order.
// A target in another database is CROSS_DB; its table name falls back to the table ID.
func (d *Database) Relationships() []*Relationship {
	var result []*Relationship
	for _, table := range d.Tables {
		for _, field := range table.Fields {
			if field.Base != ReferenceBase || field.RefTableID == "" {
				continue
			}
			relationship := &Relationship{
				SourceTableID:      table.ID,
				SourceTableName:    table.Name,
				SourceFieldID:      field.ID,
				SourceFieldName:    field.Name,
				TargetTableID:      field.RefTableID,
				TargetTableName:    field.RefTableID,
				TargetDatabaseID:   field.RefDatabaseID,
				TargetDatabaseName: field.RefDatabaseName,
				Type:               ManyToOne,
				Composition:        field.Composition,
			}
			if field.RefDatabaseID != "" && field.RefDatabaseID != d.ID {
				relationship.Type = CrossDatabase
			} else if target := d.Table(field.RefTableID); target != nil {
				relationship.TargetTableName = target.Name
			}
			result = append(result, relationship)
		}
	}
	return result
}
