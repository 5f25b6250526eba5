package analyzer

import (
	"context"
	"fmt"
	"github.com/viant/nxscript/schema"
)

// Load loads schemas from URLs; a directory URL loads every schema JSON file under it
func (a *Analyzer) Load(ctx context.Context, URLs ...string) ([]*schema.Database, error) {
	var databases []*schema.Database
	for _, URL := range URLs {
		object, err := a.fs.Object(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to locate %v: %w", URL, err)
		}
		if object.IsDir() {
			loaded, err := schema.LoadDir(ctx, a.fs, URL)
			if err != nil {
				return nil, err
			}
			databases = append(databases, loaded...)
			continue
		}
		db, err := schema.Load(ctx, a.fs, URL)
		if err != nil {
			return nil, err
		}
		databases = append(databases, db)
	}
	return databases, nil
}

// AnalyzeURL loads schemas from URLs and analyzes them
func (a *Analyzer) AnalyzeURL(ctx context.Context, URLs ...string) ([]*DatabaseResult, Stats, error) {
	databases, err := a.Load(ctx, URLs...)
	if err != nil {
		return nil, Stats{}, err
	}
	return a.AnalyzeAll(ctx, databases...)
}
