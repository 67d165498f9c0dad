// Package intake wires the SimXML case intake: the SOAP endpoint, the ZGW
// read routes and the document content endpoints.
package intake

import (
	"simxml_zgw_backend/internal/adapters/storage"
	apphttp "simxml_zgw_backend/internal/http"
	"simxml_zgw_backend/internal/intake/handler"
	"simxml_zgw_backend/internal/intake/service"
	"simxml_zgw_backend/internal/mapping"
	"simxml_zgw_backend/internal/objectstore"
	"simxml_zgw_backend/internal/resolver"
	"simxml_zgw_backend/internal/searchindex"
	"simxml_zgw_backend/platform/config"
	"simxml_zgw_backend/platform/logger"
	"simxml_zgw_backend/platform/validator"
)

// Module is the intake module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the intake module with all its dependencies wired.
func NewModule(
	store objectstore.Store,
	index searchindex.Index,
	files storage.StorageService,
	bucket string,
	cat service.Catalog,
	val *validator.Validator,
	cfg config.IntakeConfig,
	log *logger.Logger,
) (*Module, error) {
	res := resolver.New(store, index, log)
	svc, err := service.New(res, files, mapping.New(), cat, val, service.Config{
		AppURL: cfg.GetAppURL(),
		Bucket: bucket,
	}, log)
	if err != nil {
		return nil, err
	}

	return &Module{
		handler: handler.New(svc, val, log, cfg.GetIntakeActionConfig()),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "intake"
}

// Service returns the intake service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts intake routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
