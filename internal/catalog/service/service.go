// Package service resolves catalog entries by reference.
package service

import (
	"errors"
	"fmt"

	"simxml_zgw_backend/internal/catalog/repository"
	"simxml_zgw_backend/internal/catalog/transport"
	"simxml_zgw_backend/platform/apperr"
)

// ErrUnknownReference is returned for a reference absent from the catalog.
var ErrUnknownReference = errors.New("unknown catalog reference")

const codeUnknownReference = "unknown_reference"

// Service provides lookups over the catalog repository.
type Service struct {
	repo repository.Repository
}

// New creates a catalog service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

func unknown(kind, reference string) error {
	return apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("%s %s is not registered", kind, reference), ErrUnknownReference).
		WithCode(codeUnknownReference)
}

// SchemaByReference returns the schema registered under reference.
func (s *Service) SchemaByReference(reference string) (repository.Schema, error) {
	schema, ok := s.repo.Schema(reference)
	if !ok {
		return repository.Schema{}, unknown("schema", reference)
	}
	return schema, nil
}

// MappingByReference returns the mapping registered under reference.
func (s *Service) MappingByReference(reference string) (repository.Mapping, error) {
	mapping, ok := s.repo.Mapping(reference)
	if !ok {
		return repository.Mapping{}, unknown("mapping", reference)
	}
	return mapping, nil
}

// EndpointByReference returns the endpoint registered under reference.
func (s *Service) EndpointByReference(reference string) (repository.Endpoint, error) {
	endpoint, ok := s.repo.Endpoint(reference)
	if !ok {
		return repository.Endpoint{}, unknown("endpoint", reference)
	}
	return endpoint, nil
}

// RequireSchemas fails on the first reference that is not registered.
func (s *Service) RequireSchemas(references ...string) error {
	for _, ref := range references {
		if _, err := s.SchemaByReference(ref); err != nil {
			return err
		}
	}
	return nil
}

// Overview lists every registered entry.
func (s *Service) Overview() transport.CatalogResponse {
	return transport.CatalogResponse{
		Schemas:   s.repo.Schemas(),
		Mappings:  s.repo.Mappings(),
		Endpoints: s.repo.Endpoints(),
	}
}
