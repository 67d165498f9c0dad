// Package zaak holds the ZGW domain records persisted by the intake engine
// and the typed intermediate case representation produced by the SimXML
// mapping.
package zaak

// Schema references of the record kinds the intake engine reads and writes.
const (
	SchemaEigenschap           = "https://vng.opencatalogi.nl/schemas/ztc.eigenschap.schema.json"
	SchemaRolType              = "https://vng.opencatalogi.nl/schemas/ztc.rolType.schema.json"
	SchemaZaakType             = "https://vng.opencatalogi.nl/schemas/ztc.zaakType.schema.json"
	SchemaZaak                 = "https://vng.opencatalogi.nl/schemas/zrc.zaak.schema.json"
	SchemaZaakInformatieObject = "https://vng.opencatalogi.nl/schemas/zrc.zaakInformatieObject.schema.json"
	SchemaInformatieObject     = "https://vng.opencatalogi.nl/schemas/drc.enkelvoudigInformatieObject.schema.json"
)

// Schemas lists every schema reference the engine needs at startup.
var Schemas = []string{
	SchemaEigenschap,
	SchemaRolType,
	SchemaZaakType,
	SchemaZaak,
	SchemaZaakInformatieObject,
	SchemaInformatieObject,
}

// Mapping references used by the intake flow.
const (
	MappingSimxmlZaakToZgwZaak = "https://simxml.nl/mapping/simxml.simxmlZaakToZgwZaak.mapping.json"
	MappingZdsDocumentToZgw    = "https://zds.nl/mapping/zds.zdsDocumentToZgwDocument.mapping.json"
	MappingZgwZaakToBv03       = "https://simxml.nl/mapping/simxml.zgwZaakToBv03.mapping.json"
)

// EndpointDownloadInformatieObject is the endpoint whose path template is used
// to build document download URLs.
const EndpointDownloadInformatieObject = "https://vng.opencatalogi.nl/endpoints/drc.downloadEnkelvoudigInformatieObject.endpoint.json"
