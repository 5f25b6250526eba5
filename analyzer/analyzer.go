package analyzer

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/nxscript/dependency"
	"github.com/viant/nxscript/formatter"
	"github.com/viant/nxscript/lexer"
	"github.com/viant/nxscript/schema"
	"github.com/viant/nxscript/symbol"
	"github.com/viant/nxscript/translator"
	"golang.org/x/sync/errgroup"
	"log"
	"runtime"
	"sort"
	"strings"
)

// MaxWorkers caps the default number of concurrent script workers
const MaxWorkers = 8

// Analyzer runs the script pipeline: tokenize, translate, format and extract dependencies
type Analyzer struct {
	fs        afs.Service
	lexer     *lexer.Lexer
	formatter *formatter.Formatter
	cache     *tokenCache
	cacheSize int
	workers   int
	logger    *log.Logger
	exporter  Exporter
}

// New creates an analyzer
func New(options ...Option) (*Analyzer, error) {
	ret := &Analyzer{
		fs:        afs.New(),
		lexer:     lexer.New(),
		formatter: formatter.New(),
		cacheSize: DefaultCacheSize,
		workers:   DefaultWorkers(),
		logger:    log.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.cacheSize > 0 {
		cache, err := newTokenCache(ret.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create token cache: %w", err)
		}
		ret.cache = cache
	}
	if ret.workers < 1 {
		ret.workers = DefaultWorkers()
	}
	return ret, nil
}

// DefaultWorkers returns number of CPUs capped at MaxWorkers
func DefaultWorkers() int {
	if workers := runtime.NumCPU(); workers < MaxWorkers {
		return workers
	}
	return MaxWorkers
}

// AnalyzeDatabase analyzes every script of db. The symbol table is built once and shared by workers;
// cancellation is checked between scripts.
func (a *Analyzer) AnalyzeDatabase(ctx context.Context, db *schema.Database) (*DatabaseResult, error) {
	table, warnings := symbol.Build(db)
	ret := &DatabaseResult{DatabaseID: db.ID, DatabaseName: db.Name}
	for _, warning := range warnings {
		a.logger.Printf("warning: %v", warning)
		ret.Warnings = append(ret.Warnings, warning.String())
	}
	known := tableNames(db)
	scripts := db.Scripts()
	results := make([]*Result, len(scripts))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.workers)
	for i, script := range scripts {
		if err := groupCtx.Err(); err != nil {
			break
		}
		i, script := i, script
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = a.analyze(table, known, script)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to analyze database %v: %w", db.ID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to analyze database %v: %w", db.ID, err)
	}
	sortResults(results)
	ret.Scripts = results
	ret.Relationships = db.Relationships()
	ret.Stats = Stats{Tables: len(db.Tables), Fields: db.FieldCount(), Scripts: len(results), Relationships: len(ret.Relationships)}
	for _, result := range results {
		ret.Stats.Dependencies += len(result.Dependencies)
		ret.Stats.Unresolved += result.Unresolved
	}
	return ret, nil
}

// AnalyzeAll analyzes databases in order and exports results when an exporter is configured
func (a *Analyzer) AnalyzeAll(ctx context.Context, databases ...*schema.Database) ([]*DatabaseResult, Stats, error) {
	var results = make([]*DatabaseResult, 0, len(databases))
	stats := Stats{}
	for _, db := range databases {
		result, err := a.AnalyzeDatabase(ctx, db)
		if err != nil {
			return nil, stats, err
		}
		results = append(results, result)
		stats.Add(result.Stats)
		stats.Databases++
	}
	if a.exporter != nil {
		if err := a.exporter.Export(ctx, results); err != nil {
			return nil, stats, fmt.Errorf("failed to export results: %w", err)
		}
	}
	return results, stats, nil
}

// AnalyzeScript analyzes a single script against table
func (a *Analyzer) AnalyzeScript(table *symbol.Table, script *schema.Script) *Result {
	return a.analyze(table, nil, script)
}

func (a *Analyzer) analyze(table *symbol.Table, known []string, script *schema.Script) *Result {
	ret := &Result{Origin: script.Origin}
	sum, err := Hash([]byte(script.Source))
	if err != nil {
		a.logger.Printf("warning: %v/%v: failed to hash script: %v", script.Origin.DatabaseID, script.Origin.TableID, err)
	}
	ret.Hash = fmt.Sprintf("%016x", sum)
	tokens, _ := a.cache.tokenize(a.lexer, sum, script.Source)
	scope := symbol.Scope{DatabaseID: script.Origin.DatabaseID, TableID: script.Origin.TableID}
	translated, stats := translator.TranslateWithStats(tokens, table, scope)
	ret.Resolved, ret.Unresolved = stats.Resolved, stats.Unresolved
	ret.Code = a.formatter.Format(translated)
	ret.Preview = formatter.Preview(ret.Code, PreviewLength)
	ret.LineCount = formatter.LineCount(ret.Code)
	if refs := dependency.Extract(tokens, script.Origin); len(refs) > 0 {
		ret.Dependencies = refs
	}
	if tables := dependency.ExtractTableReferences(translated, known); len(tables) > 0 {
		ret.Tables = tables
	}
	return ret
}

func tableNames(db *schema.Database) []string {
	var result = make([]string, 0, len(db.Tables))
	for _, table := range db.Tables {
		result = append(result, table.Name)
	}
	return result
}

// sortResults orders results by table name, element name and code type; database level scripts come first
func sortResults(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		left, right := results[i].Origin, results[j].Origin
		if c := strings.Compare(left.TableName, right.TableName); c != 0 {
			return c < 0
		}
		if c := strings.Compare(left.ElementName, right.ElementName); c != 0 {
			return c < 0
		}
		return left.CodeType < right.CodeType
	})
}
