package mapping

import (
	"encoding/xml"

	"simxml_zgw_backend/internal/zaak"
)

// StUF namespaces of the Bv03 acknowledgement.
const (
	NamespaceZKN  = "http://www.egem.nl/StUF/sector/zkn/0310"
	NamespaceStUF = "http://www.egem.nl/StUF/StUF0301"
)

const stufTimestamp = "20060102150405"

// Bv03 is the StUF acknowledgement returned for an accepted intake.
type Bv03 struct {
	XMLName       xml.Name      `xml:"ZKN:Bv03Bericht"`
	NSZKN         string        `xml:"xmlns:ZKN,attr"`
	NSStUF        string        `xml:"xmlns:StUF,attr"`
	Stuurgegevens Stuurgegevens `xml:"ZKN:stuurgegevens"`
}

// Stuurgegevens is the StUF routing header.
type Stuurgegevens struct {
	Berichtcode      string  `xml:"StUF:berichtcode"`
	Zender           Systeem `xml:"StUF:zender"`
	Ontvanger        Systeem `xml:"StUF:ontvanger"`
	Referentienummer string  `xml:"StUF:referentienummer"`
	Tijdstipbericht  string  `xml:"StUF:tijdstipBericht"`
	CrossRefnummer   string  `xml:"StUF:crossRefnummer"`
}

// Systeem identifies a sending or receiving application.
type Systeem struct {
	Organisatie string `xml:"StUF:organisatie,omitempty"`
	Applicatie  string `xml:"StUF:applicatie"`
}

// ToBv03 builds the acknowledgement for a persisted case. The cross
// reference carries the case identificatie.
func (m *SimXML) ToBv03(z zaak.Zaak) Bv03 {
	return Bv03{
		NSZKN:  NamespaceZKN,
		NSStUF: NamespaceStUF,
		Stuurgegevens: Stuurgegevens{
			Berichtcode:      "Bv03",
			Zender:           Systeem{Organisatie: z.Bronorganisatie, Applicatie: "ZGW"},
			Ontvanger:        Systeem{Applicatie: "SIMXML"},
			Referentienummer: m.newRef(),
			Tijdstipbericht:  m.now().Format(stufTimestamp) + "000",
			CrossRefnummer:   z.Identificatie,
		},
	}
}
