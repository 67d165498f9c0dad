package service

import (
	"testing"

	"simxml_zgw_backend/internal/zaak"
	"simxml_zgw_backend/platform/apperr"
)

func TestNormalizeDotsVariants(t *testing.T) {
	cases := map[string]string{
		"A&#46;B":         "A.B",
		"A&amp;#46;B":     "A.B",
		"A&amp;amp;#46;B": "A.B",
		"A.B":             "A.B",
		"A&#46;B&#46;C":   "A.B.C",
		"geen punt":       "geen punt",
	}
	for in, want := range cases {
		if got := NormalizeDots(in); got != want {
			t.Fatalf("NormalizeDots(%q) = %q, want %q", in, got, want)
		}
		if again := NormalizeDots(NormalizeDots(in)); again != want {
			t.Fatalf("NormalizeDots not idempotent for %q: %q", in, again)
		}
	}
}

func TestNormalizeEigenschappenRewritesNameAndDefinition(t *testing.T) {
	in := zaak.Intake{Eigenschappen: []zaak.EigenschapInput{{
		Naam:   "AANVRAGER&amp;#46;NAAM",
		Waarde: "a&#46;b",
		Eigenschap: zaak.EigenschapDefinitie{
			Naam:      "AANVRAGER&#46;NAAM",
			Definitie: "AANVRAGER&amp;amp;#46;NAAM",
		},
	}}}

	if err := NormalizeEigenschappen(&in); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	e := in.Eigenschappen[0]
	if e.Naam != "AANVRAGER.NAAM" || e.Eigenschap.Naam != "AANVRAGER.NAAM" || e.Eigenschap.Definitie != "AANVRAGER.NAAM" {
		t.Fatalf("unexpected normalized eigenschap %+v", e)
	}
	if e.Waarde != "a&#46;b" {
		t.Fatalf("expected value to be left untouched, got %q", e.Waarde)
	}
}

func TestNormalizeEigenschappenRequiresList(t *testing.T) {
	err := NormalizeEigenschappen(&zaak.Intake{})
	if !apperr.HasCode(err, zaak.CodeMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
	if err := NormalizeEigenschappen(&zaak.Intake{Eigenschappen: []zaak.EigenschapInput{}}); err != nil {
		t.Fatalf("expected empty list to be accepted, got %v", err)
	}
}
