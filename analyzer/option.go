package analyzer

import (
	"github.com/viant/afs"
	"github.com/viant/nxscript/formatter"
	"github.com/viant/nxscript/lexer"
	"log"
)

type Option func(*Analyzer)

// WithWorkers sets number of scripts analyzed concurrently, values below 1 select DefaultWorkers
func WithWorkers(workers int) Option {
	return func(a *Analyzer) {
		a.workers = workers
	}
}

// WithLogger sets logger used for symbol table warnings
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCacheSize sets number of tokenized sources to cache, 0 disables caching
func WithCacheSize(size int) Option {
	return func(a *Analyzer) {
		a.cacheSize = size
	}
}

// WithRefPattern sets the raw table/field reference rule
func WithRefPattern(pattern lexer.RefPattern) Option {
	return func(a *Analyzer) {
		a.lexer = lexer.New(lexer.WithRefPattern(pattern))
	}
}

// WithIndent sets number of spaces per indentation level of formatted code
func WithIndent(spaces int) Option {
	return func(a *Analyzer) {
		a.formatter = formatter.New(formatter.WithIndent(spaces))
	}
}

// WithFs sets file system used to load schemas
func WithFs(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithExporter registers an Exporter called with results of AnalyzeAll
func WithExporter(exporter Exporter) Option {
	return func(a *Analyzer) {
		a.exporter = exporter
	}
}
