// Package catalog provides the registry of schemas, mappings and endpoints
// the intake engine resolves by reference.
package catalog

import (
	"simxml_zgw_backend/internal/catalog/handler"
	"simxml_zgw_backend/internal/catalog/repository"
	"simxml_zgw_backend/internal/catalog/service"
	apphttp "simxml_zgw_backend/internal/http"
	"simxml_zgw_backend/platform/validator"
)

// Module is the catalog module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule loads the built-in catalog.
func NewModule(val *validator.Validator) (*Module, error) {
	repo, err := repository.New()
	if err != nil {
		return nil, err
	}
	svc := service.New(repo)
	return &Module{handler: handler.New(svc, val), service: svc}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the lookup service for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/catalog"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
