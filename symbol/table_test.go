package symbol

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nxscript/schema"
	"testing"
)

func TestBuild(t *testing.T) {
	db := &schema.Database{ID: "db1", Name: "CRM", Tables: []*schema.Table{
		{ID: "A", Name: "Kunden", Fields: []*schema.Field{{ID: "A", Name: "Firma"}, {ID: "B", Name: "Ort"}}},
		{ID: "B", Name: "Rechnungen", Fields: []*schema.Field{{ID: "A", Name: "Betrag"}}},
	}}
	table, warnings := Build(db)
	require.Empty(t, warnings)
	assert.Equal(t, 5, table.Len())

	tests := []struct {
		description string
		scope       Scope
		rawID       string
		expect      string
		expectOK    bool
	}{
		{description: "table in database scope", scope: Scope{DatabaseID: "db1"}, rawID: "B", expect: "Rechnungen", expectOK: true},
		{description: "field in table scope", scope: Scope{DatabaseID: "db1", TableID: "A"}, rawID: "B", expect: "Ort", expectOK: true},
		{description: "same field id in other table", scope: Scope{DatabaseID: "db1", TableID: "B"}, rawID: "A", expect: "Betrag", expectOK: true},
		{description: "field id is not a table id", scope: Scope{DatabaseID: "db1", TableID: "B"}, rawID: "B"},
		{description: "unknown database", scope: Scope{DatabaseID: "db2"}, rawID: "A"},
		{description: "unknown table", scope: Scope{DatabaseID: "db1", TableID: "C"}, rawID: "A"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, ok := table.Resolve(tc.scope, tc.rawID)
			assert.Equal(t, tc.expectOK, ok)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestBuild_Inconsistent(t *testing.T) {
	db := &schema.Database{ID: "db1", Tables: []*schema.Table{
		{ID: "A", Name: "Kunden", Fields: []*schema.Field{{ID: "A", Name: "Firma"}, {ID: "A", Name: "Name"}, {ID: "", Name: "Lost"}}},
		{ID: "A", Name: "Clients"},
		{ID: "B", Name: ""},
	}}
	table, warnings := Build(db)
	require.Len(t, warnings, 4)
	assert.Equal(t, Scope{DatabaseID: "db1", TableID: "A"}, warnings[0].Scope)
	assert.Equal(t, "A", warnings[0].RawID)
	assert.Contains(t, warnings[0].String(), "db1/A")
	assert.Equal(t, Scope{DatabaseID: "db1"}, warnings[2].Scope)

	name, ok := table.Resolve(Scope{DatabaseID: "db1", TableID: "A"}, "A")
	assert.True(t, ok)
	assert.Equal(t, "Firma", name)
	name, _ = table.Resolve(Scope{DatabaseID: "db1"}, "A")
	assert.Equal(t, "Kunden", name)
	_, ok = table.Resolve(Scope{DatabaseID: "db1"}, "B")
	assert.False(t, ok)
}

func TestNewTable(t *testing.T) {
	table := NewTable()
	assert.True(t, table.IsEmpty())
	_, ok := table.Resolve(Scope{DatabaseID: "db1"}, "A")
	assert.False(t, ok)
	table, warnings := Build(nil)
	assert.True(t, table.IsEmpty())
	assert.Empty(t, warnings)
}

func TestScope(t *testing.T) {
	scope := Scope{DatabaseID: "db1", TableID: "A"}
	assert.False(t, scope.IsDatabase())
	assert.True(t, scope.Database().IsDatabase())
	assert.Equal(t, Scope{DatabaseID: "db1", TableID: "B"}, scope.Table("B"))
	assert.Equal(t, "db1/A", scope.String())
	assert.Equal(t, "db1", scope.Database().String())
}

func TestTable_Target(t *testing.T) {
	db := &schema.Database{ID: "db1", Tables: []*schema.Table{
		{ID: "A", Name: "Kunden", Fields: []*schema.Field{{ID: "A", Name: "Firma"}}},
		{ID: "B", Name: "Rechnungen", Fields: []*schema.Field{
			{ID: "C", Name: "Kunde", Base: "ref", RefTableID: "A"},
			{ID: "D", Name: "Mitarbeiter", Base: "ref", RefTableID: "F", RefDatabaseID: "db2"},
			{ID: "C", Name: "Duplicate", Base: "ref", RefTableID: "B"},
			{ID: "E", Name: "Datum"},
		}},
	}}
	table, warnings := Build(db)
	require.Len(t, warnings, 1)
	tests := []struct {
		description string
		fieldID     string
		expect      Scope
		expectOK    bool
	}{
		{description: "same database reference", fieldID: "C", expect: Scope{DatabaseID: "db1", TableID: "A"}, expectOK: true},
		{description: "cross database reference", fieldID: "D", expect: Scope{DatabaseID: "db2", TableID: "F"}, expectOK: true},
		{description: "plain field", fieldID: "E"},
		{description: "unknown field", fieldID: "Z"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, ok := table.Target(Scope{DatabaseID: "db1", TableID: "B"}, tc.fieldID)
			assert.Equal(t, tc.expectOK, ok)
			assert.Equal(t, tc.expect, actual)
		})
	}
	_, ok := NewTable().Target(Scope{DatabaseID: "db1", TableID: "B"}, "C")
	assert.False(t, ok)
}
