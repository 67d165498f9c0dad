// Package service implements the SimXML case intake: reconciliation of the
// inbound case against existing ZGW records and creation of what is missing.
package service

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/adapters/storage"
	"simxml_zgw_backend/internal/catalog/repository"
	"simxml_zgw_backend/internal/envelope"
	"simxml_zgw_backend/internal/mapping"
	"simxml_zgw_backend/internal/objectstore"
	"simxml_zgw_backend/internal/resolver"
	"simxml_zgw_backend/internal/zaak"
	"simxml_zgw_backend/platform/apperr"
	"simxml_zgw_backend/platform/logger"
	"simxml_zgw_backend/platform/validator"
)

const (
	opHandle = "intake.Handle"

	msgInternal = "internal server error"
)

// Mapper converts between SimXML messages and ZGW records.
type Mapper interface {
	ToIntake(f envelope.Flat) zaak.Intake
	ToBv03(z zaak.Zaak) mapping.Bv03
}

// Catalog resolves registered resources by reference.
type Catalog interface {
	RequireSchemas(references ...string) error
	MappingByReference(reference string) (repository.Mapping, error)
	EndpointByReference(reference string) (repository.Endpoint, error)
}

// Config holds the intake settings.
type Config struct {
	AppURL string
	Bucket string
}

// Service is the case ingestion orchestrator.
type Service struct {
	resolver     *resolver.Resolver
	files        storage.StorageService
	mapper       Mapper
	val          *validator.Validator
	log          *logger.Logger
	appURL       string
	bucket       string
	downloadPath []string
}

// New creates the intake service. Every schema, mapping and endpoint the
// intake uses must be registered in the catalog.
func New(res *resolver.Resolver, files storage.StorageService, mapper Mapper, cat Catalog, val *validator.Validator, cfg Config, log *logger.Logger) (*Service, error) {
	if err := cat.RequireSchemas(zaak.Schemas...); err != nil {
		return nil, err
	}
	for _, ref := range []string{zaak.MappingSimxmlZaakToZgwZaak, zaak.MappingZdsDocumentToZgw, zaak.MappingZgwZaakToBv03} {
		if _, err := cat.MappingByReference(ref); err != nil {
			return nil, err
		}
	}
	download, err := cat.EndpointByReference(zaak.EndpointDownloadInformatieObject)
	if err != nil {
		return nil, err
	}

	return &Service{
		resolver:     res,
		files:        files,
		mapper:       mapper,
		val:          val,
		log:          log,
		appURL:       cfg.AppURL,
		bucket:       cfg.Bucket,
		downloadPath: download.Path,
	}, nil
}

// Handle ingests one SOAP intake notification. Business outcomes (malformed
// input, duplicate case, missing document) are reported in the returned
// envelope. A non-nil error is a storage failure; the outcome then holds a
// 500 envelope and nothing already written is rolled back.
func (s *Service) Handle(ctx context.Context, inbound io.Reader, configuration map[string]any) (Outcome, error) {
	log := s.log.WithContext(ctx)
	ing := newIngestion(configuration, log)

	if err := s.normalize(inbound, ing); err != nil {
		return s.respond(ing, http.StatusBadRequest, err), nil
	}

	if err := s.reconcileZaaktype(ctx, ing); err != nil {
		return s.abort(ing, err)
	}
	ing.transition(StateTypeResolved)

	_, exists, err := s.resolver.Resolve(ctx, zaak.SchemaZaak,
		map[string]string{"identificatie": ing.Intake.Identificatie})
	if err != nil {
		return s.abort(ing, err)
	}
	ing.transition(StateExistenceChecked)

	if exists {
		ing.transition(StateConflict)
		return s.respond(ing, http.StatusBadRequest, zaak.DuplicateCaseError(ing.Intake.Identificatie)), nil
	}

	if err := s.create(ctx, ing); err != nil {
		if apperr.HasCode(err, objectstore.CodeUniqueViolation) {
			ing.transition(StateConflict)
			return s.respond(ing, http.StatusBadRequest, zaak.DuplicateCaseError(ing.Intake.Identificatie)), nil
		}
		return s.abort(ing, err)
	}
	ing.transition(StateCreated)

	if len(ing.failures) > 0 {
		return s.respond(ing, http.StatusBadRequest, ing.failures[0]), nil
	}
	return s.respond(ing, http.StatusOK, nil), nil
}

// normalize decodes, flattens and maps the inbound message, then validates
// and normalizes the intake.
func (s *Service) normalize(inbound io.Reader, ing *Ingestion) error {
	simxml, err := envelope.DecodeIntake(inbound)
	if err != nil {
		return zaak.MalformedEnvelopeError(err)
	}
	ing.Intake = s.mapper.ToIntake(envelope.Flatten(simxml))

	if err := NormalizeEigenschappen(&ing.Intake); err != nil {
		return err
	}
	if err := s.val.Struct(ing.Intake); err != nil {
		return apperr.Wrap(apperr.KindBadRequest, "intake is missing required fields", err).
			WithCode(zaak.CodeMalformedInput).
			WithDetails(validator.FieldErrors(err))
	}
	ing.transition(StateNormalized)
	return nil
}

// create persists the document links, the zaak and then links documents to
// the persisted zaak.
func (s *Service) create(ctx context.Context, ing *Ingestion) error {
	ing.ZaakID = uuid.New()

	links, err := s.createDocuments(ctx, ing)
	if err != nil {
		return err
	}

	ing.Zaak = ing.Intake.ZaakRecord(links)
	if _, err := s.resolver.CreateAndPersist(ctx, zaak.SchemaZaak, ing.ZaakID, ing.Zaak); err != nil {
		return err
	}

	return s.linkDocuments(ctx, ing)
}

// abort turns a failure after normalization into an outcome. Bad requests
// raised while storing content are business outcomes; anything else is a
// storage failure and is returned.
func (s *Service) abort(ing *Ingestion, err error) (Outcome, error) {
	if apperr.Is(err, apperr.KindBadRequest) {
		return s.respond(ing, http.StatusBadRequest, err), nil
	}

	ing.log.DatabaseError(opHandle, err)
	if !apperr.HasCode(err, zaak.CodeStorageFailure) {
		err = zaak.StorageFailureError(opHandle, err)
	}
	out := s.outcome(ing, http.StatusInternalServerError, err)
	out.Envelope, _ = envelope.EncodeError(msgInternal)
	ing.transition(StateResponded)
	out.State = ing.State
	return out, err
}

// respond encodes the envelope for a terminal state. Errors become a single
// <Error> element; success is the Bv03 acknowledgement of the zaak.
func (s *Service) respond(ing *Ingestion, status int, failure error) Outcome {
	out := s.outcome(ing, status, failure)

	var body []byte
	var err error
	if failure != nil {
		body, err = envelope.EncodeError(errorMessage(failure))
	} else {
		body, err = envelope.Encode(s.mapper.ToBv03(ing.Zaak))
	}
	if err != nil {
		ing.log.Error("failed to encode response envelope", "error", err)
		out.Status = http.StatusInternalServerError
		body = []byte(msgInternal)
	}
	out.Envelope = body

	ing.transition(StateResponded)
	out.State = ing.State
	return out
}

func (s *Service) outcome(ing *Ingestion, status int, failure error) Outcome {
	out := Outcome{
		Status:        status,
		ZaakID:        ing.ZaakID,
		Documents:     ing.Documents,
		Configuration: ing.Configuration,
		Err:           failure,
	}
	if ing.ZaakID != uuid.Nil && ing.State == StateCreated {
		z := ing.Zaak
		out.Zaak = &z
	}
	return out
}

func errorMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
