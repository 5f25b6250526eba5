package store

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nxscript/analyzer"
	"github.com/viant/nxscript/schema"
	"path/filepath"
	"testing"
)

func analyze(t *testing.T) *analyzer.DatabaseResult {
	db := &schema.Database{ID: "db1", Name: "CRM",
		Code: []*schema.Code{{Type: schema.AfterOpen, Body: "do as database 'Mitarbeiter'\nalert(cnt(select A))\nend"}},
		Tables: []*schema.Table{
			{ID: "A", Name: "Kunden", Fields: []*schema.Field{
				{ID: "A", Name: "Firma", Code: []*schema.Code{{Type: schema.OnClick, Body: "openDatabase(\"Lager\"); do as server B end"}}},
				{ID: "B", Name: "Ort"},
			}},
			{ID: "B", Name: "Rechnungen", Fields: []*schema.Field{
				{ID: "C", Name: "Kunde", Base: schema.ReferenceBase, RefTableID: "A", Composition: true},
				{ID: "D", Name: "Bearbeiter", Base: schema.ReferenceBase, RefTableID: "A", RefDatabaseID: "db2", RefDatabaseName: "Personal"},
			}},
		}}
	srv, err := analyzer.New()
	require.NoError(t, err)
	result, err := srv.AnalyzeDatabase(context.Background(), db)
	require.NoError(t, err)
	return result
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "nxscript.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.Init(ctx))

	runID, err := store.LatestRun(ctx, "db1")
	require.NoError(t, err)
	assert.Empty(t, runID)
	refs, err := store.Dependencies(ctx, "db1")
	require.NoError(t, err)
	assert.Empty(t, refs)
	relationships, err := store.Relationships(ctx, "db1")
	require.NoError(t, err)
	assert.Empty(t, relationships)

	result := analyze(t)
	require.Len(t, result.Dependencies(), 3)
	first, err := store.Save(ctx, result)
	require.NoError(t, err)
	second, err := store.Save(ctx, result)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runID, err = store.LatestRun(ctx, "db1")
	require.NoError(t, err)
	assert.Equal(t, second, runID)

	refs, err = store.Dependencies(ctx, "db1")
	require.NoError(t, err)
	assert.EqualValues(t, result.Dependencies(), refs)

	tables, err := store.Tables(ctx, "db1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kunden"}, tables)

	require.Len(t, result.Relationships, 2)
	relationships, err = store.Relationships(ctx, "db1")
	require.NoError(t, err)
	assert.EqualValues(t, result.Relationships, relationships)
	assert.Equal(t, schema.ManyToOne, relationships[0].Type)
	assert.Equal(t, schema.CrossDatabase, relationships[1].Type)

	var preview string
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT preview FROM scripts WHERE run_id = ? AND table_id = ''", second).Scan(&preview))
	assert.Equal(t, result.Scripts[0].Preview, preview)

	var scripts int
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scripts WHERE run_id = ?", second).Scan(&scripts))
	assert.Equal(t, 2, scripts)
}

func TestOpen_Invalid(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	assert.Error(t, err)
}
