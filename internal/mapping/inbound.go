// Package mapping transforms SimXML messages to the intake representation
// and persisted cases to StUF Bv03 acknowledgements.
package mapping

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/envelope"
	"simxml_zgw_backend/internal/zaak"
)

// EscapedDot replaces "." in property names produced from dotted element
// paths.
const EscapedDot = "&#46;"

// SimXML maps SimXML intake messages. The clock and reference generator are
// replaceable for tests.
type SimXML struct {
	now    func() time.Time
	newRef func() string
}

// New creates a SimXML mapper.
func New() *SimXML {
	return &SimXML{
		now:    time.Now,
		newRef: func() string { return uuid.NewString() },
	}
}

// ToIntake maps a flattened SIMXML element to an intake. Fields that are
// absent stay empty; structural checks happen during validation.
func (m *SimXML) ToIntake(f envelope.Flat) zaak.Intake {
	in := zaak.Intake{
		Identificatie:    f.Get("ZAAKGEGEVENS.IDENTIFICATIE"),
		Omschrijving:     f.Get("ZAAKGEGEVENS.OMSCHRIJVING"),
		Toelichting:      f.Get("ZAAKGEGEVENS.TOELICHTING"),
		Startdatum:       f.Get("ZAAKGEGEVENS.STARTDATUM"),
		Registratiedatum: f.Get("ZAAKGEGEVENS.REGISTRATIEDATUM"),
		Bronorganisatie:  f.Get("ZAAKGEGEVENS.BRONORGANISATIE"),
	}
	if in.Registratiedatum == "" {
		in.Registratiedatum = m.now().Format(time.DateOnly)
	}

	if code, ok := f.Lookup("ZAAKTYPE.CODE"); ok {
		in.Zaaktype = &zaak.ZaakTypeInput{
			Identificatie: code,
			Omschrijving:  f.Get("ZAAKTYPE.OMSCHRIJVING"),
		}
	}

	in.Eigenschappen = eigenschappen(f)

	for _, b := range f.List("BETROKKENEN.BETROKKENE") {
		in.Rollen = append(in.Rollen, zaak.RolInput{
			Roltype: zaak.RolTypeInput{
				Omschrijving:         b.Get("ROL"),
				OmschrijvingGeneriek: b.Get("ROLGENERIEK"),
			},
			Roltoelichting:          b.Get("TOELICHTING"),
			BetrokkeneType:          b.Get("TYPE"),
			BetrokkeneIdentificatie: b.Get("IDENTIFICATIE"),
		})
	}

	for _, b := range f.List("BIJLAGEN.BIJLAGE") {
		in.Documenten = append(in.Documenten, document(b, in))
	}
	return in
}

// eigenschappen turns every element below ELEMENTEN into a property. The
// list is nil when the message has no ELEMENTEN element at all.
func eigenschappen(f envelope.Flat) []zaak.EigenschapInput {
	elementen := f.Sub("ELEMENTEN")
	if _, bare := f.Lookup("ELEMENTEN"); !bare && elementen.Len() == 0 {
		return nil
	}

	out := make([]zaak.EigenschapInput, 0, elementen.Len())
	for _, e := range elementen.Entries {
		naam := strings.ReplaceAll(e.Key, ".", EscapedDot)
		out = append(out, zaak.EigenschapInput{
			Naam:   naam,
			Waarde: e.Value,
			Eigenschap: zaak.EigenschapDefinitie{
				Naam:      naam,
				Definitie: naam,
			},
		})
	}
	return out
}

func document(b envelope.Flat, in zaak.Intake) zaak.DocumentInput {
	obj := zaak.InformatieObjectInput{
		Identificatie:   b.Get("IDENTIFICATIE"),
		Bronorganisatie: b.Get("BRONORGANISATIE"),
		Titel:           b.Get("TITEL"),
		Formaat:         b.Get("FORMAAT"),
		Taal:            b.Get("TAAL"),
		Creatiedatum:    b.Get("CREATIEDATUM"),
		Inhoud:          b.Get("INHOUD"),
		Bestandsnaam:    b.Get("BESTANDSNAAM"),
	}
	if obj.Bronorganisatie == "" {
		obj.Bronorganisatie = in.Bronorganisatie
	}
	if raw, ok := b.Lookup("VERSIE"); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			obj.Versie = &v
		}
	}

	return zaak.DocumentInput{
		Titel:            obj.Titel,
		Registratiedatum: in.Registratiedatum,
		Informatieobject: obj,
	}
}
