package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

// Loader produces a table from some source.
type Loader interface {
	Load(ctx context.Context) (domain.Table, error)
}

// ObjectFetcher reads a remote object, such as s3://bucket/key, into memory.
type ObjectFetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// QueryStore runs a query and returns its result set as a table.
type QueryStore interface {
	Load(ctx context.Context, query string, args ...any) (domain.Table, error)
}

// FileLoader reads a local file, choosing the decoder from its extension.
type FileLoader struct {
	Path     string
	Registry Registry
}

func (l FileLoader) Load(_ context.Context) (domain.Table, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open %s: %w", l.Path, err)
	}
	defer f.Close()

	return l.Registry.Decode(FormatOf(l.Path), f)
}

// ObjectLoader fetches a remote object and decodes it by its key extension.
type ObjectLoader struct {
	URI      string
	Fetcher  ObjectFetcher
	Registry Registry
}

func (l ObjectLoader) Load(ctx context.Context) (domain.Table, error) {
	data, err := l.Fetcher.Fetch(ctx, l.URI)
	if err != nil {
		return domain.Table{}, err
	}
	return l.Registry.Decode(FormatOf(l.URI), bytes.NewReader(data))
}

// QueryLoader reads the table from a database query.
type QueryLoader struct {
	Store QueryStore
	Query string
}

func (l QueryLoader) Load(ctx context.Context) (domain.Table, error) {
	if strings.TrimSpace(l.Query) == "" {
		return domain.Table{}, fmt.Errorf("query cannot be empty")
	}
	return l.Store.Load(ctx, l.Query)
}

// IsObjectURI reports whether a source refers to object storage.
func IsObjectURI(source string) bool {
	return strings.HasPrefix(source, "s3://")
}
