package service

import (
	"strings"

	"simxml_zgw_backend/internal/zaak"
)

// Longest variant first so a partial replacement never leaves a shorter
// encoded form behind.
var dotReplacer = strings.NewReplacer(
	"&amp;amp;#46;", ".",
	"&amp;#46;", ".",
	"&#46;", ".",
)

// NormalizeEigenschappen restores escaped dots in property names and in the
// name and text of their definitions. The eigenschappen list must be present.
func NormalizeEigenschappen(in *zaak.Intake) error {
	if in.Eigenschappen == nil {
		return zaak.MalformedInputError("eigenschappen")
	}
	for i := range in.Eigenschappen {
		e := &in.Eigenschappen[i]
		e.Naam = NormalizeDots(e.Naam)
		e.Eigenschap.Naam = NormalizeDots(e.Eigenschap.Naam)
		e.Eigenschap.Definitie = NormalizeDots(e.Eigenschap.Definitie)
	}
	return nil
}

// NormalizeDots replaces every encoded dot variant in s with ".".
func NormalizeDots(s string) string {
	return dotReplacer.Replace(s)
}
