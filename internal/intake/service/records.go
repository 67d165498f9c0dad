package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/adapters/storage"
	"simxml_zgw_backend/internal/objectstore"
	"simxml_zgw_backend/internal/resolver"
	"simxml_zgw_backend/internal/zaak"
	"simxml_zgw_backend/platform/apperr"
)

// StoredZaak is a persisted zaak with its document links.
type StoredZaak struct {
	ID        uuid.UUID
	Record    objectstore.Record
	Zaak      zaak.Zaak
	Documents []StoredLink
}

// StoredLink is a persisted zaakinformatieobject.
type StoredLink struct {
	ID   uuid.UUID
	Link zaak.ZaakInformatieObject
}

// StoredDocument is a persisted document.
type StoredDocument struct {
	ID       uuid.UUID
	Record   objectstore.Record
	Document zaak.InformatieObject
}

// GetZaak loads a zaak by identificatie.
func (s *Service) GetZaak(ctx context.Context, identificatie string) (*StoredZaak, error) {
	rec, found, err := s.resolver.Resolve(ctx, zaak.SchemaZaak, map[string]string{"identificatie": identificatie})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("zaak not found").WithDetails(map[string]string{"identificatie": identificatie})
	}

	z, err := resolver.Decode[zaak.Zaak](rec)
	if err != nil {
		return nil, err
	}

	out := &StoredZaak{ID: rec.ID, Record: rec, Zaak: z, Documents: make([]StoredLink, 0, len(z.Zaakinformatieobjecten))}
	for _, id := range z.Zaakinformatieobjecten {
		linkRec, err := s.resolver.Load(ctx, zaak.SchemaZaakInformatieObject, id)
		if objectstore.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		link, err := resolver.Decode[zaak.ZaakInformatieObject](linkRec)
		if err != nil {
			return nil, err
		}
		out.Documents = append(out.Documents, StoredLink{ID: id, Link: link})
	}
	return out, nil
}

// GetDocument loads a document by id.
func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*StoredDocument, error) {
	rec, err := s.resolver.Load(ctx, zaak.SchemaInformatieObject, id)
	if err != nil {
		return nil, err
	}
	doc, err := resolver.Decode[zaak.InformatieObject](rec)
	if err != nil {
		return nil, err
	}
	return &StoredDocument{ID: id, Record: rec, Document: doc}, nil
}

// UpsertContent creates or replaces the content of an existing document.
func (s *Service) UpsertContent(ctx context.Context, id uuid.UUID, c Content) (*StoredDocument, error) {
	stored, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyContent(ctx, id, &stored.Document, c); err != nil {
		return nil, err
	}
	rec, err := s.resolver.Update(ctx, stored.Record, stored.Document)
	if err != nil {
		return nil, err
	}
	stored.Record = rec
	return stored, nil
}

// OpenContent opens the stored content of a document. The caller closes the
// reader.
func (s *Service) OpenContent(ctx context.Context, id uuid.UUID) (*StoredDocument, io.ReadCloser, error) {
	stored, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if stored.Document.BestandsKey == "" {
		return nil, nil, apperr.NotFound("document has no content")
	}

	rc, err := s.files.DownloadFile(ctx, s.bucket, stored.Document.BestandsKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, apperr.NotFound("document content is missing from storage")
	}
	if err != nil {
		return nil, nil, zaak.StorageFailureError("intake.OpenContent", err)
	}
	return stored, rc, nil
}
