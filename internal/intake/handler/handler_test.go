package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"simxml_zgw_backend/internal/adapters/storage"
	"simxml_zgw_backend/internal/catalog/repository"
	catalogservice "simxml_zgw_backend/internal/catalog/service"
	"simxml_zgw_backend/internal/envelope"
	"simxml_zgw_backend/internal/intake/service"
	"simxml_zgw_backend/internal/intake/transport"
	"simxml_zgw_backend/internal/mapping"
	"simxml_zgw_backend/internal/objectstore"
	"simxml_zgw_backend/internal/resolver"
	"simxml_zgw_backend/internal/searchindex"
	"simxml_zgw_backend/platform/logger"
	"simxml_zgw_backend/platform/validator"
)

const testBucket = "drc-documenten"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.New()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	files := storage.NewMemoryService(0)
	if err := files.EnsureBucketExists(context.Background(), testBucket); err != nil {
		t.Fatalf("ensure bucket: %v", err)
	}
	val := validator.New()
	svc, err := service.New(
		resolver.New(objectstore.NewMemory(), searchindex.NewMemory(), logger.Discard()),
		files,
		mapping.New(),
		catalogservice.New(repo),
		val,
		service.Config{AppURL: "https://zgw.example.nl", Bucket: testBucket},
		logger.Discard(),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	engine := gin.New()
	New(svc, val, logger.Discard(), map[string]any{}).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func intakeMessage(identificatie string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ns2="http://www.centric.nl/simxml">
<SOAP-ENV:Body><ns2:OntvangenIntakeNotificatie><Body><SIMXML>
<ZAAKGEGEVENS><IDENTIFICATIE>` + identificatie + `</IDENTIFICATIE><BRONORGANISATIE>002220647</BRONORGANISATIE></ZAAKGEGEVENS>
<ZAAKTYPE><CODE>T1</CODE></ZAAKTYPE>
<ELEMENTEN><LOCATIE>Dorpsstraat 1</LOCATIE></ELEMENTEN>
<BIJLAGEN><BIJLAGE><IDENTIFICATIE>D-1</IDENTIFICATIE><TITEL>Aanvraag</TITEL><FORMAAT>application/pdf</FORMAAT><INHOUD>JVBERi0xLjQK</INHOUD><BESTANDSNAAM>aanvraag.pdf</BESTANDSNAAM></BIJLAGE></BIJLAGEN>
</SIMXML></Body></ns2:OntvangenIntakeNotificatie></SOAP-ENV:Body></SOAP-ENV:Envelope>`
}

func do(engine *gin.Engine, method, path, contentType, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	engine.ServeHTTP(rec, req)
	return rec
}

func submit(t *testing.T, engine *gin.Engine, identificatie string) *httptest.ResponseRecorder {
	t.Helper()
	return do(engine, http.MethodPost, "/api/v1/simxml/zaken", envelope.ContentType, intakeMessage(identificatie))
}

func getZaak(t *testing.T, engine *gin.Engine, identificatie string) transport.ZaakResponse {
	t.Helper()
	rec := do(engine, http.MethodGet, "/api/v1/zrc/zaken/"+identificatie, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for zaak, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp transport.ZaakResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode zaak: %v", err)
	}
	return resp
}

func TestReceiveIntakeAnswersWithBv03(t *testing.T) {
	engine := newRouter(t)

	rec := submit(t, engine, "Z-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != envelope.ContentType {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(rec.Body.String(), "Bv03Bericht") || !strings.Contains(rec.Body.String(), "Z-1") {
		t.Fatalf("expected Bv03 acknowledgement, got %s", rec.Body.String())
	}
}

func TestReceiveIntakeRejectsDuplicate(t *testing.T) {
	engine := newRouter(t)
	if rec := submit(t, engine, "Z-1"); rec.Code != http.StatusOK {
		t.Fatalf("first submit: expected 200, got %d", rec.Code)
	}

	rec := submit(t, engine, "Z-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The case with id Z-1 already exists") {
		t.Fatalf("expected duplicate message, got %s", rec.Body.String())
	}
}

func TestReceiveIntakeRejectsMalformedBody(t *testing.T) {
	engine := newRouter(t)

	rec := do(engine, http.MethodPost, "/api/v1/simxml/zaken", envelope.ContentType, "not xml")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<Error>") {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestReadBackZaakAndDownloadDocument(t *testing.T) {
	engine := newRouter(t)
	if rec := submit(t, engine, "Z-1"); rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d", rec.Code)
	}

	resp := getZaak(t, engine, "Z-1")
	if len(resp.Zaakinformatieobjecten) != 1 {
		t.Fatalf("expected one linked document, got %d", len(resp.Zaakinformatieobjecten))
	}
	link := resp.Zaakinformatieobjecten[0]
	if link.InformatieobjectIdentificatie != "Z-1-D-1" {
		t.Fatalf("expected renamed document, got %q", link.InformatieobjectIdentificatie)
	}

	docPath := "/api/v1/drc/enkelvoudiginformatieobjecten/" + link.Informatieobject.String()
	rec := do(engine, http.MethodGet, docPath, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for document, got %d", rec.Code)
	}
	var doc transport.DocumentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Versie != 1 || doc.Bestandsomvang != 9 {
		t.Fatalf("unexpected document versie=%d size=%d", doc.Versie, doc.Bestandsomvang)
	}
	if !strings.HasSuffix(doc.Inhoud, "/enkelvoudiginformatieobjecten/"+doc.ID.String()+"/download") {
		t.Fatalf("expected download url, got %q", doc.Inhoud)
	}

	rec = do(engine, http.MethodGet, docPath+"/download", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for download, got %d", rec.Code)
	}
	if rec.Body.String() != "%PDF-1.4\n" {
		t.Fatalf("unexpected content %q", rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "aanvraag.pdf") {
		t.Fatalf("expected file name in disposition, got %q", rec.Header().Get("Content-Disposition"))
	}
}

func TestPutContentStatusFollowsMethod(t *testing.T) {
	engine := newRouter(t)
	if rec := submit(t, engine, "Z-1"); rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d", rec.Code)
	}
	id := getZaak(t, engine, "Z-1").Zaakinformatieobjecten[0].Informatieobject.String()
	path := "/api/v1/drc/enkelvoudiginformatieobjecten/" + id + "/inhoud"

	rec := do(engine, http.MethodPost, path, "application/json", `{"inhoud":"aGFsbG8="}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for POST, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(engine, http.MethodPut, path, "application/json", `{"inhoud":"aGFsbG8gd2VyZWxk"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for PUT, got %d: %s", rec.Code, rec.Body.String())
	}
	var doc transport.DocumentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Bestandsomvang != int64(len("hallo wereld")) {
		t.Fatalf("expected replaced content size, got %d", doc.Bestandsomvang)
	}
}

func TestPutContentValidation(t *testing.T) {
	engine := newRouter(t)
	path := "/api/v1/drc/enkelvoudiginformatieobjecten/"

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "invalid id", path: path + "abc/inhoud", body: `{"inhoud":"aGFsbG8="}`, want: http.StatusBadRequest},
		{name: "missing inhoud", path: path + "00000000-0000-0000-0000-000000000001/inhoud", body: `{}`, want: http.StatusBadRequest},
		{name: "negative versie", path: path + "00000000-0000-0000-0000-000000000001/inhoud", body: `{"inhoud":"aGFsbG8=","versie":-1}`, want: http.StatusBadRequest},
		{name: "unknown document", path: path + "00000000-0000-0000-0000-000000000001/inhoud", body: `{"inhoud":"aGFsbG8="}`, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(engine, http.MethodPut, tt.path, "application/json", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetZaakUnknownIsNotFound(t *testing.T) {
	engine := newRouter(t)
	if rec := do(engine, http.MethodGet, "/api/v1/zrc/zaken/Z-404", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
