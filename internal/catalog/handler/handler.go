package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simxml_zgw_backend/internal/catalog/service"
	"simxml_zgw_backend/internal/catalog/transport"
	"simxml_zgw_backend/platform/httpkit"
	"simxml_zgw_backend/platform/validator"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the catalog routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Overview)
	rg.GET("/schemas", h.GetSchema)
	rg.GET("/mappings", h.GetMapping)
	rg.GET("/endpoints", h.GetEndpoint)
}

// Overview lists the catalog.
// GET /api/v1/catalog
func (h *Handler) Overview(c *gin.Context) {
	httpkit.OK(c, h.svc.Overview())
}

// GetSchema returns one schema.
// GET /api/v1/catalog/schemas?reference=...
func (h *Handler) GetSchema(c *gin.Context) {
	req, ok := h.bindReference(c)
	if !ok {
		return
	}
	result, err := h.svc.SchemaByReference(req.Reference)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetMapping returns one mapping.
// GET /api/v1/catalog/mappings?reference=...
func (h *Handler) GetMapping(c *gin.Context) {
	req, ok := h.bindReference(c)
	if !ok {
		return
	}
	result, err := h.svc.MappingByReference(req.Reference)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetEndpoint returns one endpoint.
// GET /api/v1/catalog/endpoints?reference=...
func (h *Handler) GetEndpoint(c *gin.Context) {
	req, ok := h.bindReference(c)
	if !ok {
		return
	}
	result, err := h.svc.EndpointByReference(req.Reference)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) bindReference(c *gin.Context) (transport.ReferenceRequest, bool) {
	var req transport.ReferenceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return req, false
	}
	return req, true
}
