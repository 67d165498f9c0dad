package service

import (
	"context"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/objectstore"
	"simxml_zgw_backend/internal/resolver"
	"simxml_zgw_backend/internal/zaak"
)

// createDocuments persists a link for every inbound document of the zaak
// that is about to be created. Payloads with content or metadata become a
// new document first; bare references stay placeholder links.
func (s *Service) createDocuments(ctx context.Context, ing *Ingestion) ([]uuid.UUID, error) {
	for _, doc := range ing.Intake.Documenten {
		if err := s.checkPayload(doc.Informatieobject); err != nil {
			return nil, err
		}
	}

	ids := make([]uuid.UUID, 0, len(ing.Intake.Documenten))
	for _, doc := range ing.Intake.Documenten {
		obj := doc.Informatieobject
		link := zaak.ZaakInformatieObject{
			Zaak:                          ing.ZaakID,
			InformatieobjectIdentificatie: obj.Identificatie,
			Titel:                         doc.Titel,
			Registratiedatum:              doc.Registratiedatum,
		}

		if !obj.IsReference() {
			docID, err := s.CreateDocument(ctx, obj)
			if err != nil {
				return nil, err
			}
			link.Informatieobject = docID
		}

		rec, err := s.resolver.CreateAndPersist(ctx, zaak.SchemaZaakInformatieObject, uuid.Nil, link)
		if err != nil {
			return nil, err
		}
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

// CreateDocument persists a new document from an inbound payload, storing
// its content when present.
func (s *Service) CreateDocument(ctx context.Context, in zaak.InformatieObjectInput) (uuid.UUID, error) {
	id := uuid.New()
	doc := zaak.InformatieObject{
		Identificatie:   in.Identificatie,
		Bronorganisatie: in.Bronorganisatie,
		Titel:           in.Titel,
		Formaat:         in.Formaat,
		Taal:            in.Taal,
		Creatiedatum:    in.Creatiedatum,
		Bestandsnaam:    in.Bestandsnaam,
	}
	if err := s.applyContent(ctx, id, &doc, Content{Inhoud: in.Inhoud, Versie: in.Versie}); err != nil {
		return uuid.Nil, err
	}

	if _, err := s.resolver.CreateAndPersist(ctx, zaak.SchemaInformatieObject, id, doc); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// linkDocuments resolves every link of the persisted zaak to its document.
// Found documents are renamed to <zaak>-<document> and the
// link is pointed at them. Missing documents are recorded on the ingestion
// and skipped; the zaak stays persisted.
func (s *Service) linkDocuments(ctx context.Context, ing *Ingestion) error {
	for _, linkID := range ing.Zaak.Zaakinformatieobjecten {
		linkRec, err := s.resolver.Load(ctx, zaak.SchemaZaakInformatieObject, linkID)
		if err != nil {
			return err
		}
		link, err := resolver.Decode[zaak.ZaakInformatieObject](linkRec)
		if err != nil {
			return err
		}

		docRec, found, err := s.linkTarget(ctx, link)
		if err != nil {
			return err
		}
		if !found {
			s.log.Warn("referenced document missing",
				"zaak", ing.Intake.Identificatie,
				"document", link.InformatieobjectIdentificatie)
			ing.fail(zaak.ReferencedDocumentMissingError(link.InformatieobjectIdentificatie))
			continue
		}

		doc, err := resolver.Decode[zaak.InformatieObject](docRec)
		if err != nil {
			return err
		}
		doc.Identificatie = zaak.LinkedDocumentIdentificatie(ing.Zaak.Identificatie, doc.Identificatie)
		if _, err := s.resolver.Update(ctx, docRec, doc); err != nil {
			return err
		}

		link.Zaak = ing.ZaakID
		link.Informatieobject = docRec.ID
		link.InformatieobjectIdentificatie = doc.Identificatie
		if _, err := s.resolver.Update(ctx, linkRec, link); err != nil {
			return err
		}
		ing.Documents = append(ing.Documents, link)
	}
	return nil
}

// linkTarget returns the document a link points at. A link created with its
// document loads it by id; a placeholder resolves by identificatie.
func (s *Service) linkTarget(ctx context.Context, link zaak.ZaakInformatieObject) (objectstore.Record, bool, error) {
	if !link.IsPlaceholder() {
		rec, err := s.resolver.Load(ctx, zaak.SchemaInformatieObject, link.Informatieobject)
		if objectstore.IsNotFound(err) {
			return objectstore.Record{}, false, nil
		}
		return rec, err == nil, err
	}
	return s.resolver.Resolve(ctx, zaak.SchemaInformatieObject,
		map[string]string{"identificatie": link.InformatieobjectIdentificatie})
}
