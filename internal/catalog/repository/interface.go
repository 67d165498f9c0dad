package repository

// Schema is a registered record schema.
type Schema struct {
	Reference   string `yaml:"reference" json:"reference"`
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// Mapping is a registered declarative transformation.
type Mapping struct {
	Reference string `yaml:"reference" json:"reference"`
	Name      string `yaml:"name" json:"name"`
	Version   string `yaml:"version" json:"version"`
	Source    string `yaml:"source" json:"source,omitempty"`
	Target    string `yaml:"target" json:"target,omitempty"`
}

// Endpoint is a registered HTTP endpoint. Path holds the URL segments below
// /api, with the record id as one of "id", "[id]" or "{id}".
type Endpoint struct {
	Reference string   `yaml:"reference" json:"reference"`
	Name      string   `yaml:"name" json:"name"`
	Path      []string `yaml:"path" json:"path"`
	Methods   []string `yaml:"methods" json:"methods"`
}

// Repository reads catalog entries.
type Repository interface {
	Schemas() []Schema
	Mappings() []Mapping
	Endpoints() []Endpoint
	Schema(reference string) (Schema, bool)
	Mapping(reference string) (Mapping, bool)
	Endpoint(reference string) (Endpoint, bool)
}
