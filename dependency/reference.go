package dependency

import "github.com/viant/nxscript/schema"

// Type classifies a cross database reference
type Type string

const (
	// ExplicitDatabase is a do as database 'Name' block
	ExplicitDatabase Type = "explicitDatabase"
	// ServerExecution is a do as server block
	ServerExecution Type = "serverExecution"
	// OpenDatabase is an openDatabase('Name') call
	OpenDatabase Type = "openDatabase"
)

// Reference represents a cross database or server execution reference found in a script
type Reference struct {
	SourceDatabaseID   string        `yaml:"sourceDatabaseId"`
	TargetDatabaseName string        `yaml:"targetDatabaseName,omitempty"`
	Type               Type          `yaml:"type"`
	Snippet            string        `yaml:"snippet"`
	Origin             schema.Origin `yaml:"origin"`
}

// ParseType converts a stored reference type
func ParseType(raw string) (Type, bool) {
	switch t := Type(raw); t {
	case ExplicitDatabase, ServerExecution, OpenDatabase:
		return t, true
	}
	return "", false
}
