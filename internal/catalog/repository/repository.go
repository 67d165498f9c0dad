package repository

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

type document struct {
	Schemas   []Schema   `yaml:"schemas"`
	Mappings  []Mapping  `yaml:"mappings"`
	Endpoints []Endpoint `yaml:"endpoints"`
}

// Repo is a read-only catalog loaded from YAML.
type Repo struct {
	doc       document
	schemas   map[string]Schema
	mappings  map[string]Mapping
	endpoints map[string]Endpoint
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// New loads the built-in catalog.
func New() (*Repo, error) {
	return Parse(embedded)
}

// Load reads a catalog file from disk.
func Load(path string) (*Repo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog. References must be unique per kind.
func Parse(raw []byte) (*Repo, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	r := &Repo{
		doc:       doc,
		schemas:   make(map[string]Schema, len(doc.Schemas)),
		mappings:  make(map[string]Mapping, len(doc.Mappings)),
		endpoints: make(map[string]Endpoint, len(doc.Endpoints)),
	}
	for _, s := range doc.Schemas {
		if _, dup := r.schemas[s.Reference]; dup || s.Reference == "" {
			return nil, fmt.Errorf("catalog: invalid or duplicate schema reference %q", s.Reference)
		}
		r.schemas[s.Reference] = s
	}
	for _, m := range doc.Mappings {
		if _, dup := r.mappings[m.Reference]; dup || m.Reference == "" {
			return nil, fmt.Errorf("catalog: invalid or duplicate mapping reference %q", m.Reference)
		}
		r.mappings[m.Reference] = m
	}
	for _, e := range doc.Endpoints {
		if _, dup := r.endpoints[e.Reference]; dup || e.Reference == "" {
			return nil, fmt.Errorf("catalog: invalid or duplicate endpoint reference %q", e.Reference)
		}
		r.endpoints[e.Reference] = e
	}
	return r, nil
}

func (r *Repo) Schemas() []Schema     { return r.doc.Schemas }
func (r *Repo) Mappings() []Mapping   { return r.doc.Mappings }
func (r *Repo) Endpoints() []Endpoint { return r.doc.Endpoints }

func (r *Repo) Schema(reference string) (Schema, bool) {
	s, ok := r.schemas[reference]
	return s, ok
}

func (r *Repo) Mapping(reference string) (Mapping, bool) {
	m, ok := r.mappings[reference]
	return m, ok
}

func (r *Repo) Endpoint(reference string) (Endpoint, bool) {
	e, ok := r.endpoints[reference]
	return e, ok
}
