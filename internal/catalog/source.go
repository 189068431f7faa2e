// Package catalog loads candidate entries (travelers, carriers, shoppers,
// commutes), filters them and tracks selection and joins on a Board.
package catalog

import (
	"context"
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/model"
)

//go:embed data/*.yaml
var embedded embed.FS

// Source yields the entries of one catalog kind.
type Source interface {
	Kind() model.CatalogKind
	Entries(ctx context.Context) ([]model.CatalogEntry, error)
}

// StaticSource serves a fixed slice.
type StaticSource struct {
	kind    model.CatalogKind
	entries []model.CatalogEntry
}

// NewStaticSource creates a source over entries, stamping their kind.
func NewStaticSource(kind model.CatalogKind, entries ...model.CatalogEntry) *StaticSource {
	out := make([]model.CatalogEntry, len(entries))
	for i, e := range entries {
		e.Kind = kind
		out[i] = e
	}
	return &StaticSource{kind: kind, entries: out}
}

// Kind returns the catalog kind.
func (s *StaticSource) Kind() model.CatalogKind { return s.kind }

// Entries returns a copy of the entries.
func (s *StaticSource) Entries(_ context.Context) ([]model.CatalogEntry, error) {
	return cloneEntries(s.entries), nil
}

type yamlCatalog struct {
	Entries []model.CatalogEntry `yaml:"entries"`
}

// ParseYAML decodes a catalog document. Every entry must validate and ids
// must be unique.
func ParseYAML(kind model.CatalogKind, data []byte) ([]model.CatalogEntry, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s catalog: %w", kind, err)
	}
	seen := make(map[int]bool, len(doc.Entries))
	for i := range doc.Entries {
		e := &doc.Entries[i]
		e.Kind = kind
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%s catalog: %w", kind, err)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%s catalog: id %d: %w", kind, e.ID, common.ErrDuplicateEntry)
		}
		seen[e.ID] = true
	}
	return doc.Entries, nil
}

// Embedded returns the built-in sample catalog of a kind.
func Embedded(kind model.CatalogKind) (*StaticSource, error) {
	data, err := embedded.ReadFile("data/" + string(kind) + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no built-in %s catalog: %w", kind, err)
	}
	entries, err := ParseYAML(kind, data)
	if err != nil {
		return nil, err
	}
	return &StaticSource{kind: kind, entries: entries}, nil
}

// FileSource reads a YAML catalog from disk on every call.
type FileSource struct {
	kind model.CatalogKind
	path string
}

// NewFileSource creates a source reading path.
func NewFileSource(kind model.CatalogKind, path string) *FileSource {
	return &FileSource{kind: kind, path: path}
}

// Kind returns the catalog kind.
func (s *FileSource) Kind() model.CatalogKind { return s.kind }

// Entries reads and parses the file.
func (s *FileSource) Entries(_ context.Context) ([]model.CatalogEntry, error) {
	// #nosec G304 - path comes from user configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s catalog: %w", s.kind, err)
	}
	return ParseYAML(s.kind, data)
}

// PrefixedSource puts entries produced at call time ahead of a base
// source's entries.
type PrefixedSource struct {
	base   Source
	prefix func(ctx context.Context) ([]model.CatalogEntry, error)
}

// NewPrefixedSource wraps base.
func NewPrefixedSource(base Source, prefix func(ctx context.Context) ([]model.CatalogEntry, error)) *PrefixedSource {
	return &PrefixedSource{base: base, prefix: prefix}
}

// Kind returns the base kind.
func (s *PrefixedSource) Kind() model.CatalogKind { return s.base.Kind() }

// Entries returns prefix entries followed by base entries.
func (s *PrefixedSource) Entries(ctx context.Context) ([]model.CatalogEntry, error) {
	first, err := s.prefix(ctx)
	if err != nil {
		return nil, err
	}
	rest, err := s.base.Entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.CatalogEntry, 0, len(first)+len(rest))
	for _, e := range first {
		e.Kind = s.base.Kind()
		out = append(out, e)
	}
	return append(out, rest...), nil
}

func cloneEntries(entries []model.CatalogEntry) []model.CatalogEntry {
	out := make([]model.CatalogEntry, len(entries))
	copy(out, entries)
	return out
}
