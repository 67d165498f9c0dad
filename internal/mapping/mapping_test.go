package mapping

import (
	"encoding/xml"
	"os"
	"strings"
	"testing"
	"time"

	"simxml_zgw_backend/internal/envelope"
	"simxml_zgw_backend/internal/zaak"
)

func fixedMapper() *SimXML {
	return &SimXML{
		now:    func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) },
		newRef: func() string { return "ref-1" },
	}
}

func flatFixture(t *testing.T) envelope.Flat {
	t.Helper()
	f, err := os.Open("../envelope/testdata/intake.xml")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	simxml, err := envelope.DecodeIntake(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return envelope.Flatten(simxml)
}

func TestToIntakeMapsCaseFields(t *testing.T) {
	in := fixedMapper().ToIntake(flatFixture(t))

	if in.Identificatie != "Z-100" || in.Bronorganisatie != "002220647" {
		t.Fatalf("unexpected case fields %+v", in)
	}
	if in.Registratiedatum != "2024-03-01" {
		t.Fatalf("expected default registratiedatum, got %q", in.Registratiedatum)
	}
	if in.Zaaktype == nil || in.Zaaktype.Identificatie != "T1" {
		t.Fatalf("expected zaaktype T1, got %+v", in.Zaaktype)
	}
	if len(in.Rollen) != 1 || in.Rollen[0].Roltype.OmschrijvingGeneriek != "initiator" {
		t.Fatalf("unexpected rollen %+v", in.Rollen)
	}
}

func TestToIntakeEscapesDottedPropertyNames(t *testing.T) {
	in := fixedMapper().ToIntake(flatFixture(t))

	if len(in.Eigenschappen) != 3 {
		t.Fatalf("expected 3 eigenschappen, got %d", len(in.Eigenschappen))
	}
	first := in.Eigenschappen[0]
	if first.Naam != "AANVRAGER&#46;NAAM" || first.Waarde != "Jansen" {
		t.Fatalf("unexpected first eigenschap %+v", first)
	}
	if first.Eigenschap.Naam != first.Naam {
		t.Fatalf("expected definition name to follow property name")
	}
}

func TestToIntakeMapsDocumentsAndReferences(t *testing.T) {
	in := fixedMapper().ToIntake(flatFixture(t))

	if len(in.Documenten) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(in.Documenten))
	}
	full := in.Documenten[0].Informatieobject
	if full.IsReference() || full.Formaat != "application/pdf" || full.Bronorganisatie != "002220647" {
		t.Fatalf("unexpected full document %+v", full)
	}
	ref := in.Documenten[1].Informatieobject
	if !ref.IsReference() || ref.Identificatie != "D-2" {
		t.Fatalf("expected bare reference D-2, got %+v", ref)
	}
}

func TestToIntakeLeavesEigenschappenNilWithoutElementen(t *testing.T) {
	node, err := envelope.Decode(strings.NewReader(`<SIMXML><ZAAKGEGEVENS><IDENTIFICATIE>Z</IDENTIFICATIE></ZAAKGEGEVENS></SIMXML>`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	in := fixedMapper().ToIntake(envelope.Flatten(node))
	if in.Eigenschappen != nil {
		t.Fatalf("expected nil eigenschappen, got %+v", in.Eigenschappen)
	}
	if in.Zaaktype != nil {
		t.Fatalf("expected nil zaaktype")
	}

	node, _ = envelope.Decode(strings.NewReader(`<SIMXML><ELEMENTEN/></SIMXML>`))
	in = fixedMapper().ToIntake(envelope.Flatten(node))
	if in.Eigenschappen == nil || len(in.Eigenschappen) != 0 {
		t.Fatalf("expected empty non-nil eigenschappen, got %+v", in.Eigenschappen)
	}
}

func TestToBv03CrossReferencesCase(t *testing.T) {
	ack := fixedMapper().ToBv03(zaak.Zaak{Identificatie: "Z-100", Bronorganisatie: "002220647"})

	if ack.Stuurgegevens.Berichtcode != "Bv03" || ack.Stuurgegevens.CrossRefnummer != "Z-100" {
		t.Fatalf("unexpected stuurgegevens %+v", ack.Stuurgegevens)
	}
	if ack.Stuurgegevens.Tijdstipbericht != "20240301093000000" {
		t.Fatalf("unexpected tijdstip %q", ack.Stuurgegevens.Tijdstipbericht)
	}

	out, err := xml.Marshal(ack)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(out), "<ZKN:Bv03Bericht") {
		t.Fatalf("unexpected element name in %s", out)
	}
}
