package zaak

import "github.com/google/uuid"

// Intake is the typed intermediate case representation produced by the
// inbound mapping. Resolved* fields are filled by reconciliation.
type Intake struct {
	Identificatie    string `validate:"required"`
	Omschrijving     string
	Toelichting      string
	Startdatum       string
	Registratiedatum string
	Bronorganisatie  string

	Zaaktype         *ZaakTypeInput `validate:"required"`
	ResolvedZaaktype uuid.UUID

	Eigenschappen []EigenschapInput `validate:"required,dive"`
	Rollen        []RolInput        `validate:"dive"`
	Documenten    []DocumentInput   `validate:"dive"`
}

// ZaakTypeInput carries the inbound zaaktype fields.
type ZaakTypeInput struct {
	Identificatie string `validate:"required"`
	Omschrijving  string
}

// EigenschapInput is one declared property of the inbound case.
type EigenschapInput struct {
	Naam               string
	Waarde             string
	Eigenschap         EigenschapDefinitie
	ResolvedEigenschap uuid.UUID
}

// EigenschapDefinitie carries the inbound definition of a property.
type EigenschapDefinitie struct {
	Naam      string `validate:"required"`
	Definitie string
}

// RolInput is one declared role of the inbound case.
type RolInput struct {
	Roltype                 RolTypeInput
	ResolvedRoltype         uuid.UUID
	Roltoelichting          string
	BetrokkeneType          string
	BetrokkeneIdentificatie string
}

// RolTypeInput carries the inbound role-type fields.
type RolTypeInput struct {
	Omschrijving         string
	OmschrijvingGeneriek string `validate:"required"`
}

// DocumentInput is one attached document of the inbound case.
type DocumentInput struct {
	Titel            string
	Registratiedatum string
	Informatieobject InformatieObjectInput
}

// InformatieObjectInput carries the inbound document payload.
type InformatieObjectInput struct {
	Identificatie   string `validate:"required"`
	Bronorganisatie string
	Titel           string
	Formaat         string
	Taal            string
	Creatiedatum    string
	Versie          *int
	Inhoud          string
	Bestandsnaam    string
}

// IsReference reports whether the payload only points at an existing
// document instead of carrying a new one.
func (d InformatieObjectInput) IsReference() bool {
	return d.Titel == "" && d.Formaat == "" && d.Inhoud == "" && d.Bestandsnaam == ""
}

// ZaakRecord builds the zaak record from a fully reconciled intake.
func (in Intake) ZaakRecord(links []uuid.UUID) Zaak {
	z := Zaak{
		Identificatie:          in.Identificatie,
		Omschrijving:           in.Omschrijving,
		Toelichting:            in.Toelichting,
		Startdatum:             in.Startdatum,
		Registratiedatum:       in.Registratiedatum,
		Bronorganisatie:        in.Bronorganisatie,
		Zaaktype:               in.ResolvedZaaktype,
		Eigenschappen:          make([]ZaakEigenschap, 0, len(in.Eigenschappen)),
		Rollen:                 make([]Rol, 0, len(in.Rollen)),
		Zaakinformatieobjecten: links,
	}
	if z.Zaakinformatieobjecten == nil {
		z.Zaakinformatieobjecten = []uuid.UUID{}
	}
	for _, e := range in.Eigenschappen {
		z.Eigenschappen = append(z.Eigenschappen, ZaakEigenschap{
			Naam:       e.Naam,
			Waarde:     e.Waarde,
			Eigenschap: e.ResolvedEigenschap,
		})
	}
	for _, r := range in.Rollen {
		z.Rollen = append(z.Rollen, Rol{
			Roltype:                 r.ResolvedRoltype,
			Roltoelichting:          r.Roltoelichting,
			BetrokkeneType:          r.BetrokkeneType,
			BetrokkeneIdentificatie: r.BetrokkeneIdentificatie,
		})
	}
	return z
}
