package zaak

import "github.com/google/uuid"

// ZaakType is the shared template a Zaak belongs to.
// Eigenschappen and Roltypen only ever grow.
type ZaakType struct {
	Identificatie string      `json:"identificatie"`
	Omschrijving  string      `json:"omschrijving,omitempty"`
	Eigenschappen []uuid.UUID `json:"eigenschappen"`
	Roltypen      []uuid.UUID `json:"roltypen"`
}

// Eigenschap is a property definition scoped to a zaaktype.
type Eigenschap struct {
	Naam      string    `json:"naam"`
	Definitie string    `json:"definitie,omitempty"`
	Zaaktype  uuid.UUID `json:"zaaktype"`
}

// RolType is a role-type definition scoped to a zaaktype.
type RolType struct {
	Omschrijving         string    `json:"omschrijving,omitempty"`
	OmschrijvingGeneriek string    `json:"omschrijvingGeneriek"`
	Zaaktype             uuid.UUID `json:"zaaktype"`
}

// ZaakEigenschap is a property value on a zaak.
type ZaakEigenschap struct {
	Naam       string    `json:"naam"`
	Waarde     string    `json:"waarde"`
	Eigenschap uuid.UUID `json:"eigenschap"`
}

// Rol is a party association on a zaak.
type Rol struct {
	Roltype                 uuid.UUID `json:"roltype"`
	Roltoelichting          string    `json:"roltoelichting,omitempty"`
	BetrokkeneType          string    `json:"betrokkeneType,omitempty"`
	BetrokkeneIdentificatie string    `json:"betrokkeneIdentificatie,omitempty"`
}

// Zaak is the case record. Identificatie is unique and never changes after
// creation.
type Zaak struct {
	Identificatie          string           `json:"identificatie"`
	Omschrijving           string           `json:"omschrijving,omitempty"`
	Toelichting            string           `json:"toelichting,omitempty"`
	Startdatum             string           `json:"startdatum,omitempty"`
	Registratiedatum       string           `json:"registratiedatum,omitempty"`
	Bronorganisatie        string           `json:"bronorganisatie,omitempty"`
	Zaaktype               uuid.UUID        `json:"zaaktype"`
	Eigenschappen          []ZaakEigenschap `json:"eigenschappen"`
	Rollen                 []Rol            `json:"rollen"`
	Zaakinformatieobjecten []uuid.UUID      `json:"zaakinformatieobjecten"`
}

// InformatieObject is an enkelvoudig informatieobject (document).
type InformatieObject struct {
	Identificatie   string `json:"identificatie"`
	Bronorganisatie string `json:"bronorganisatie,omitempty"`
	Titel           string `json:"titel,omitempty"`
	Formaat         string `json:"formaat,omitempty"`
	Taal            string `json:"taal,omitempty"`
	Creatiedatum    string `json:"creatiedatum,omitempty"`
	Versie          int    `json:"versie,omitempty"`
	Inhoud          string `json:"inhoud,omitempty"`
	Bestandsnaam    string `json:"bestandsnaam,omitempty"`
	Bestandsomvang  int64  `json:"bestandsomvang,omitempty"`
	BestandsKey     string `json:"bestandsKey,omitempty"`
}

// ZaakInformatieObject links a document to a zaak. A placeholder link has a
// nil Informatieobject and only carries the referenced identificatie until
// the document linker resolves it.
type ZaakInformatieObject struct {
	Zaak                          uuid.UUID `json:"zaak"`
	Informatieobject              uuid.UUID `json:"informatieobject"`
	InformatieobjectIdentificatie string    `json:"informatieobjectIdentificatie"`
	Titel                         string    `json:"titel,omitempty"`
	Registratiedatum              string    `json:"registratiedatum,omitempty"`
}

// IsPlaceholder reports whether the link still awaits a document.
func (z ZaakInformatieObject) IsPlaceholder() bool {
	return z.Informatieobject == uuid.Nil
}

// LinkedDocumentIdentificatie is the identifier a document gets once it is
// linked under a zaak.
func LinkedDocumentIdentificatie(zaakIdentificatie, documentIdentificatie string) string {
	return zaakIdentificatie + "-" + documentIdentificatie
}
