package schema

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

const schemaExt = ".json"

// Load downloads and decodes a database schema; the file name is used when the schema has no ID
func Load(ctx context.Context, fs afs.Service, URL string) (*Database, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download schema %v: %w", URL, err)
	}
	ret, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %v: %w", URL, err)
	}
	if ret.ID == "" {
		name := path.Base(URL)
		ret.ID = strings.TrimSuffix(name, path.Ext(name))
		if ret.Name == "" {
			ret.Name = ret.ID
		}
	}
	return ret, nil
}

// LoadDir loads every schema JSON file under baseURL, ordered by URL
func LoadDir(ctx context.Context, fs afs.Service, baseURL string) ([]*Database, error) {
	var URLs []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if strings.HasSuffix(strings.ToLower(info.Name()), schemaExt) {
			URLs = append(URLs, url.Join(baseURL, parent, info.Name()))
		}
		return true, nil
	}
	if err := fs.Walk(ctx, baseURL, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", baseURL, err)
	}
	sort.Strings(URLs)
	var result = make([]*Database, 0, len(URLs))
	for _, URL := range URLs {
		db, err := Load(ctx, fs, URL)
		if err != nil {
			return nil, err
		}
		result = append(result, db)
	}
	return result, nil
}
