package analyzer

import (
	"github.com/viant/nxscript/dependency"
	"github.com/viant/nxscript/schema"
)

// PreviewLength is the maximum length of Result.Preview
const PreviewLength = 80

// Result represents an analyzed script
type Result struct {
	Origin       schema.Origin          `yaml:"origin"`                 // Script location
	Hash         string                 `yaml:"hash"`                   // Content hash of the raw script body
	Code         string                 `yaml:"code"`                   // Translated and formatted code
	Preview      string                 `yaml:"preview"`                // Single line excerpt of Code
	LineCount    int                    `yaml:"lineCount"`              // Number of lines in Code
	Resolved     int                    `yaml:"resolved"`               // Raw references replaced with names
	Unresolved   int                    `yaml:"unresolved"`             // Raw references kept as is
	Dependencies []dependency.Reference `yaml:"dependencies,omitempty"` // Cross database references
	Tables       []string               `yaml:"tables,omitempty"`       // Tables used by the script
}

// Stats summarizes an analysis run
type Stats struct {
	Databases     int `yaml:"databases,omitempty"`
	Tables        int `yaml:"tables"`
	Fields        int `yaml:"fields"`
	Scripts       int `yaml:"scripts"`
	Dependencies  int `yaml:"dependencies"`
	Relationships int `yaml:"relationships"`
	Unresolved    int `yaml:"unresolved"`
}

// Add accumulates other stats
func (s *Stats) Add(other Stats) {
	s.Databases += other.Databases
	s.Tables += other.Tables
	s.Fields += other.Fields
	s.Scripts += other.Scripts
	s.Dependencies += other.Dependencies
	s.Relationships += other.Relationships
	s.Unresolved += other.Unresolved
}

// DatabaseResult represents an analyzed database
type DatabaseResult struct {
	DatabaseID    string                 `yaml:"databaseId"`
	DatabaseName  string                 `yaml:"databaseName"`
	Scripts       []*Result              `yaml:"scripts"`
	Relationships []*schema.Relationship `yaml:"relationships,omitempty"` // Reference fields between tables
	Warnings      []string               `yaml:"warnings,omitempty"`      // Symbol table inconsistencies
	Stats         Stats                  `yaml:"stats"`
}

// Dependencies returns all dependency references in script order
func (r *DatabaseResult) Dependencies() []dependency.Reference {
	var result []dependency.Reference
	for _, script := range r.Scripts {
		result = append(result, script.Dependencies...)
	}
	return result
}
