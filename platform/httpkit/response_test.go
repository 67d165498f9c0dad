package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"simxml_zgw_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

func runHandleError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if !HandleError(c, err) {
		t.Fatalf("expected error to be handled")
	}
	var body ErrorResponse
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode body: %v", decodeErr)
	}
	return rec, body
}

func TestHandleErrorMapsDomainKind(t *testing.T) {
	rec, body := runHandleError(t, apperr.NotFound("zaak not found").WithCode("not_found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body.Error != "zaak not found" || body.Code != "not_found" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHandleErrorHidesInternalDetails(t *testing.T) {
	rec, body := runHandleError(t, apperr.Wrap(apperr.KindInternal, "persist failed", errors.New("pq: secret")))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("expected generic message, got %q", body.Error)
	}
}

func TestHandleErrorNilIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if HandleError(c, nil) {
		t.Fatalf("expected nil error to be ignored")
	}
}
