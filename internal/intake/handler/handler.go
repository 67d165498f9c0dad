package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"simxml_zgw_backend/internal/envelope"
	"simxml_zgw_backend/internal/intake/service"
	"simxml_zgw_backend/internal/intake/transport"
	"simxml_zgw_backend/platform/httpkit"
	"simxml_zgw_backend/platform/logger"
	"simxml_zgw_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid document id"

	maxEnvelopeBytes = 64 << 20
)

// Handler handles HTTP requests for the SimXML intake.
type Handler struct {
	svc          *service.Service
	val          *validator.Validator
	log          *logger.Logger
	actionConfig map[string]any
}

// New creates a new intake handler. actionConfig is passed to every intake
// untouched.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger, actionConfig map[string]any) *Handler {
	return &Handler{svc: svc, val: val, log: log, actionConfig: actionConfig}
}

// ReceiveIntake ingests a SOAP intake notification.
// POST /api/v1/simxml/zaken
func (h *Handler) ReceiveIntake(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxEnvelopeBytes)
	defer body.Close()

	out, err := h.svc.Handle(c.Request.Context(), body, h.actionConfig)
	if err != nil {
		_ = c.Error(err)
	}
	c.Data(out.Status, envelope.ContentType, out.Envelope)
}

// GetZaak returns a persisted zaak.
// GET /api/v1/zrc/zaken/:identificatie
func (h *Handler) GetZaak(c *gin.Context) {
	identificatie := strings.TrimSpace(c.Param("identificatie"))
	if identificatie == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.GetZaak(c.Request.Context(), identificatie)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toZaakResponse(result))
}

// GetDocument returns a persisted document.
// GET /api/v1/drc/enkelvoudiginformatieobjecten/:id
func (h *Handler) GetDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetDocument(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toDocumentResponse(result))
}

// PutContent creates or replaces the content of a document. POST answers
// 201, PUT answers 200.
// POST|PUT /api/v1/drc/enkelvoudiginformatieobjecten/:id/inhoud
func (h *Handler) PutContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.UpsertContent(c.Request.Context(), id, service.Content{
		Inhoud:       req.Inhoud,
		Titel:        req.Titel,
		Formaat:      req.Formaat,
		Bestandsnaam: req.Bestandsnaam,
		Versie:       req.Versie,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	status := http.StatusOK
	if c.Request.Method == http.MethodPost {
		status = http.StatusCreated
	}
	httpkit.JSON(c, status, toDocumentResponse(result))
}

// DownloadContent streams the stored content of a document.
// GET /api/v1/drc/enkelvoudiginformatieobjecten/:id/download
func (h *Handler) DownloadContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, rc, err := h.svc.OpenContent(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	defer rc.Close()

	name := doc.Document.Bestandsnaam
	if name == "" {
		name = doc.Document.Identificatie
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", doc.Document.Formaat)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.log.Error("failed to stream document content", "document", id, "error", err)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

func toZaakResponse(s *service.StoredZaak) transport.ZaakResponse {
	z := s.Zaak
	resp := transport.ZaakResponse{
		ID:                     s.ID,
		Identificatie:          z.Identificatie,
		Omschrijving:           z.Omschrijving,
		Toelichting:            z.Toelichting,
		Startdatum:             z.Startdatum,
		Registratiedatum:       z.Registratiedatum,
		Bronorganisatie:        z.Bronorganisatie,
		Zaaktype:               z.Zaaktype,
		Eigenschappen:          make([]transport.EigenschapResponse, 0, len(z.Eigenschappen)),
		Rollen:                 make([]transport.RolResponse, 0, len(z.Rollen)),
		Zaakinformatieobjecten: make([]transport.ZaakInformatieObjectResponse, 0, len(s.Documents)),
		CreatedAt:              s.Record.CreatedAt,
		UpdatedAt:              s.Record.UpdatedAt,
	}
	for _, e := range z.Eigenschappen {
		resp.Eigenschappen = append(resp.Eigenschappen, transport.EigenschapResponse{
			Naam: e.Naam, Waarde: e.Waarde, Eigenschap: e.Eigenschap,
		})
	}
	for _, r := range z.Rollen {
		resp.Rollen = append(resp.Rollen, transport.RolResponse{
			Roltype:                 r.Roltype,
			Roltoelichting:          r.Roltoelichting,
			BetrokkeneType:          r.BetrokkeneType,
			BetrokkeneIdentificatie: r.BetrokkeneIdentificatie,
		})
	}
	for _, d := range s.Documents {
		resp.Zaakinformatieobjecten = append(resp.Zaakinformatieobjecten, transport.ZaakInformatieObjectResponse{
			ID:                            d.ID,
			Informatieobject:              d.Link.Informatieobject,
			InformatieobjectIdentificatie: d.Link.InformatieobjectIdentificatie,
			Titel:                         d.Link.Titel,
			Registratiedatum:              d.Link.Registratiedatum,
		})
	}
	return resp
}

func toDocumentResponse(s *service.StoredDocument) transport.DocumentResponse {
	d := s.Document
	return transport.DocumentResponse{
		ID:              s.ID,
		Identificatie:   d.Identificatie,
		Bronorganisatie: d.Bronorganisatie,
		Titel:           d.Titel,
		Formaat:         d.Formaat,
		Taal:            d.Taal,
		Creatiedatum:    d.Creatiedatum,
		Versie:          d.Versie,
		Inhoud:          d.Inhoud,
		Bestandsnaam:    d.Bestandsnaam,
		Bestandsomvang:  d.Bestandsomvang,
		CreatedAt:       s.Record.CreatedAt,
		UpdatedAt:       s.Record.UpdatedAt,
	}
}

// RegisterRoutes mounts the intake and read routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/simxml/zaken", h.ReceiveIntake)
	rg.GET("/zrc/zaken/:identificatie", h.GetZaak)

	docs := rg.Group("/drc/enkelvoudiginformatieobjecten")
	docs.GET("/:id", h.GetDocument)
	docs.GET("/:id/download", h.DownloadContent)
	docs.POST("/:id/inhoud", h.PutContent)
	docs.PUT("/:id/inhoud", h.PutContent)
}
