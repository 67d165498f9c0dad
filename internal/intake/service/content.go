package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/adapters/storage"
	"simxml_zgw_backend/internal/zaak"
	"simxml_zgw_backend/platform/apperr"
)

const defaultFormaat = "application/pdf"

// Content is a document content assignment.
type Content struct {
	Inhoud       string
	Titel        string
	Formaat      string
	Bestandsnaam string
	Versie       *int
}

// applyContent assigns content to a document. A document without stored
// file gets a new versie: 1 when absent, otherwise the given versie plus one.
// Base64 content is uploaded; URL content is left where it is. Inhoud always
// ends up as the download URL of the document.
func (s *Service) applyContent(ctx context.Context, id uuid.UUID, doc *zaak.InformatieObject, c Content) error {
	if c.Titel != "" {
		doc.Titel = c.Titel
	}
	if c.Formaat != "" {
		doc.Formaat = c.Formaat
	}
	if c.Bestandsnaam != "" {
		doc.Bestandsnaam = c.Bestandsnaam
	}

	if doc.BestandsKey == "" {
		if c.Versie == nil {
			doc.Versie = 1
		} else {
			doc.Versie = *c.Versie + 1
		}
		if doc.Formaat == "" {
			doc.Formaat = defaultFormaat
		}
	}

	if c.Inhoud != "" && !isURL(c.Inhoud) {
		if err := s.storeContent(ctx, id, doc, c.Inhoud); err != nil {
			return err
		}
	}

	doc.Inhoud = storage.DownloadURL(s.appURL, s.downloadPath, id.String())
	return nil
}

// decodeContent decodes base64 content and checks its size. A formaat
// outside the allow-list is logged and stored anyway.
func (s *Service) decodeContent(formaat, inhoud string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(inhoud))
	if err != nil {
		return nil, apperr.BadRequest("inhoud is not valid base64").WithCode(zaak.CodeMalformedInput)
	}
	if err := s.files.ValidateFileSize(int64(len(data))); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err.Error(), err)
	}
	if err := s.files.ValidateContentType(formaat); err != nil {
		s.log.Warn("storing document with unlisted formaat", "formaat", formaat)
	}
	return data, nil
}

// checkPayload rejects inbound document content that storeContent would
// refuse, so that nothing is persisted for an intake that fails on it.
func (s *Service) checkPayload(in zaak.InformatieObjectInput) error {
	if in.Inhoud == "" || isURL(in.Inhoud) {
		return nil
	}
	formaat := in.Formaat
	if formaat == "" {
		formaat = defaultFormaat
	}
	_, err := s.decodeContent(formaat, in.Inhoud)
	return err
}

func (s *Service) storeContent(ctx context.Context, id uuid.UUID, doc *zaak.InformatieObject, inhoud string) error {
	data, err := s.decodeContent(doc.Formaat, inhoud)
	if err != nil {
		return err
	}

	name := doc.Bestandsnaam
	if name == "" {
		name = doc.Titel
	}
	folder := path.Join("enkelvoudiginformatieobjecten", id.String())
	key, err := s.files.UploadFile(ctx, s.bucket, folder, name, doc.Formaat, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return zaak.StorageFailureError("intake.storeContent", err)
	}

	if previous := doc.BestandsKey; previous != "" && previous != key {
		if err := s.files.DeleteObject(ctx, s.bucket, previous); err != nil {
			s.log.Warn("failed to remove replaced document content", "key", previous, "error", err)
		}
	}
	doc.BestandsKey = key
	doc.Bestandsomvang = int64(len(data))
	return nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
