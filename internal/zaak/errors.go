package zaak

import (
	"fmt"

	"simxml_zgw_backend/platform/apperr"
)

// Stable error codes of the intake error taxonomy.
const (
	CodeMalformedInput            = "malformed_input"
	CodeDuplicateCase             = "duplicate_case"
	CodeReferencedDocumentMissing = "referenced_document_missing"
	CodeStorageFailure            = "storage_failure"
)

// MalformedInputError reports a required structural field missing from the
// inbound representation.
func MalformedInputError(field string) *apperr.Error {
	return apperr.BadRequest(fmt.Sprintf("required field %s is missing", field)).
		WithCode(CodeMalformedInput)
}

// DuplicateCaseError reports a zaak identificatie that already exists.
// Conflicts are answered with 400, so the kind is BadRequest.
func DuplicateCaseError(identificatie string) *apperr.Error {
	return apperr.BadRequest(fmt.Sprintf("The case with id %s already exists", identificatie)).
		WithCode(CodeDuplicateCase)
}

// ReferencedDocumentMissingError reports a link to a document identifier
// that is not in storage.
func ReferencedDocumentMissingError(identificatie string) *apperr.Error {
	return apperr.BadRequest(fmt.Sprintf("The document with id %s does not exist", identificatie)).
		WithCode(CodeReferencedDocumentMissing)
}

// StorageFailureError wraps a failed persist, find or index operation.
func StorageFailureError(op string, err error) *apperr.Error {
	return apperr.Wrap(apperr.KindInternal, "storage operation failed", err).
		WithOp(op).
		WithCode(CodeStorageFailure)
}

// MalformedEnvelopeError reports an inbound message that could not be
// decoded into the intake representation.
func MalformedEnvelopeError(err error) *apperr.Error {
	return apperr.Wrap(apperr.KindBadRequest, err.Error(), err).
		WithCode(CodeMalformedInput)
}
