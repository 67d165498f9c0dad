package service

import (
	"errors"
	"testing"

	"simxml_zgw_backend/internal/catalog/repository"
	"simxml_zgw_backend/internal/zaak"
	"simxml_zgw_backend/platform/apperr"
)

func newService(t *testing.T) *Service {
	t.Helper()
	repo, err := repository.New()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return New(repo)
}

func TestRequireSchemasAcceptsIntakeSchemas(t *testing.T) {
	if err := newService(t).RequireSchemas(zaak.Schemas...); err != nil {
		t.Fatalf("expected all intake schemas registered: %v", err)
	}
}

func TestLookupsReportUnknownReference(t *testing.T) {
	svc := newService(t)

	_, err := svc.MappingByReference("https://example.com/missing.mapping.json")
	if !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found kind, got %v", apperr.GetKind(err))
	}

	if _, err := svc.MappingByReference(zaak.MappingZgwZaakToBv03); err != nil {
		t.Fatalf("expected Bv03 mapping registered: %v", err)
	}
	if _, err := svc.EndpointByReference(zaak.EndpointDownloadInformatieObject); err != nil {
		t.Fatalf("expected download endpoint registered: %v", err)
	}
}
