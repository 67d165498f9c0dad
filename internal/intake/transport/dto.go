package transport

import (
	"time"

	"github.com/google/uuid"
)

// ContentRequest creates or replaces the content of a document.
type ContentRequest struct {
	Inhoud       string `json:"inhoud" validate:"required"`
	Titel        string `json:"titel" validate:"max=200"`
	Formaat      string `json:"formaat" validate:"max=255"`
	Bestandsnaam string `json:"bestandsnaam" validate:"max=255"`
	Versie       *int   `json:"versie" validate:"omitempty,min=0"`
}

type EigenschapResponse struct {
	Naam       string    `json:"naam"`
	Waarde     string    `json:"waarde"`
	Eigenschap uuid.UUID `json:"eigenschap"`
}

type RolResponse struct {
	Roltype                 uuid.UUID `json:"roltype"`
	Roltoelichting          string    `json:"roltoelichting,omitempty"`
	BetrokkeneType          string    `json:"betrokkeneType,omitempty"`
	BetrokkeneIdentificatie string    `json:"betrokkeneIdentificatie,omitempty"`
}

type ZaakInformatieObjectResponse struct {
	ID                            uuid.UUID `json:"id"`
	Informatieobject              uuid.UUID `json:"informatieobject"`
	InformatieobjectIdentificatie string    `json:"informatieobjectIdentificatie"`
	Titel                         string    `json:"titel,omitempty"`
	Registratiedatum              string    `json:"registratiedatum,omitempty"`
}

type ZaakResponse struct {
	ID                     uuid.UUID                      `json:"id"`
	Identificatie          string                         `json:"identificatie"`
	Omschrijving           string                         `json:"omschrijving,omitempty"`
	Toelichting            string                         `json:"toelichting,omitempty"`
	Startdatum             string                         `json:"startdatum,omitempty"`
	Registratiedatum       string                         `json:"registratiedatum,omitempty"`
	Bronorganisatie        string                         `json:"bronorganisatie,omitempty"`
	Zaaktype               uuid.UUID                      `json:"zaaktype"`
	Eigenschappen          []EigenschapResponse           `json:"eigenschappen"`
	Rollen                 []RolResponse                  `json:"rollen"`
	Zaakinformatieobjecten []ZaakInformatieObjectResponse `json:"zaakinformatieobjecten"`
	CreatedAt              time.Time                      `json:"createdAt"`
	UpdatedAt              time.Time                      `json:"updatedAt"`
}

type DocumentResponse struct {
	ID              uuid.UUID `json:"id"`
	Identificatie   string    `json:"identificatie"`
	Bronorganisatie string    `json:"bronorganisatie,omitempty"`
	Titel           string    `json:"titel,omitempty"`
	Formaat         string    `json:"formaat,omitempty"`
	Taal            string    `json:"taal,omitempty"`
	Creatiedatum    string    `json:"creatiedatum,omitempty"`
	Versie          int       `json:"versie"`
	Inhoud          string    `json:"inhoud,omitempty"`
	Bestandsnaam    string    `json:"bestandsnaam,omitempty"`
	Bestandsomvang  int64     `json:"bestandsomvang"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
