package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

// Decoder parses a tabular document into a table.
type Decoder func(r io.Reader) (domain.Table, error)

// Registry manages decoders keyed by file format
type Registry interface {
	// Register adds a decoder for a format such as "csv"
	Register(format string, decoder Decoder) error
	// Decode parses r with the decoder registered for format
	Decode(format string, r io.Reader) (domain.Table, error)
	// ListFormats returns the registered formats, sorted
	ListFormats() []string
}

type registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry creates a registry seeded with the given decoders
func NewRegistry(decoders map[string]Decoder) Registry {
	r := &registry{decoders: make(map[string]Decoder, len(decoders))}
	for format, d := range decoders {
		r.decoders[strings.ToLower(format)] = d
	}
	return r
}

// DefaultRegistry knows CSV and XLSX.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]Decoder{
		FormatCSV:  DecodeCSV,
		FormatXLSX: DecodeXLSX,
	})
}

func (r *registry) Register(format string, decoder Decoder) error {
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if decoder == nil {
		return fmt.Errorf("decoder cannot be nil")
	}

	format = strings.ToLower(format)
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.decoders[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.decoders[format] = decoder
	return nil
}

func (r *registry) Decode(format string, rd io.Reader) (domain.Table, error) {
	r.mu.RLock()
	decoder, exists := r.decoders[strings.ToLower(format)]
	r.mu.RUnlock()

	if !exists {
		return domain.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return decoder(rd)
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.decoders))
	for format := range r.decoders {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// FormatOf derives the format from a file name extension.
func FormatOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
