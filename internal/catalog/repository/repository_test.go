package repository

import (
	"strings"
	"testing"
)

func TestBuiltInCatalogRegistersIntakeReferences(t *testing.T) {
	repo, err := New()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if _, ok := repo.Schema("https://vng.opencatalogi.nl/schemas/zrc.zaak.schema.json"); !ok {
		t.Fatalf("expected zaak schema to be registered")
	}
	endpoint, ok := repo.Endpoint("https://vng.opencatalogi.nl/endpoints/drc.downloadEnkelvoudigInformatieObject.endpoint.json")
	if !ok {
		t.Fatalf("expected download endpoint to be registered")
	}
	if strings.Join(endpoint.Path, "/") != "v1/drc/enkelvoudiginformatieobjecten/{id}/download" {
		t.Fatalf("unexpected endpoint path %v", endpoint.Path)
	}
}

func TestParseRejectsDuplicateReferences(t *testing.T) {
	raw := []byte(`
schemas:
  - reference: https://example.com/a.json
  - reference: https://example.com/a.json
`)
	if _, err := Parse(raw); err == nil {
		t.Fatalf("expected duplicate reference error")
	}
}
