package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Exporter defines an interface to export analysis results to a storage backend
type Exporter interface {
	Export(ctx context.Context, results []*DatabaseResult) error
}

// YAMLExporter writes one <databaseId>.yaml document per database under BaseURL
type YAMLExporter struct {
	fs      afs.Service
	BaseURL string
}

// Export uploads results as YAML
func (e *YAMLExporter) Export(ctx context.Context, results []*DatabaseResult) error {
	for _, result := range results {
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode %v: %w", result.DatabaseID, err)
		}
		URL := url.Join(e.BaseURL, result.DatabaseID+".yaml")
		if err = e.fs.Upload(ctx, URL, 0644, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to upload %v: %w", URL, err)
		}
	}
	return nil
}

// NewYAMLExporter creates a YAML exporter
func NewYAMLExporter(fs afs.Service, baseURL string) *YAMLExporter {
	if fs == nil {
		fs = afs.New()
	}
	return &YAMLExporter{fs: fs, BaseURL: baseURL}
}
