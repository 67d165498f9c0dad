package transport

import "simxml_zgw_backend/internal/catalog/repository"

// CatalogResponse lists the registered catalog entries.
type CatalogResponse struct {
	Schemas   []repository.Schema   `json:"schemas"`
	Mappings  []repository.Mapping  `json:"mappings"`
	Endpoints []repository.Endpoint `json:"endpoints"`
}

// ReferenceRequest selects a single entry by reference.
type ReferenceRequest struct {
	Reference string `form:"reference" validate:"required,url"`
}
