package service

import (
	"github.com/google/uuid"

	"simxml_zgw_backend/internal/resolver"
	"simxml_zgw_backend/internal/zaak"
	"simxml_zgw_backend/platform/logger"
)

// State of one case ingestion.
type State string

const (
	StateReceived         State = "received"
	StateNormalized       State = "normalized"
	StateTypeResolved     State = "type_resolved"
	StateExistenceChecked State = "existence_checked"
	StateCreated          State = "created"
	StateConflict         State = "conflict"
	StateResponded        State = "responded"
)

// Ingestion is the request-scoped state threaded through every step of one
// intake. It is discarded after the response is encoded.
type Ingestion struct {
	State         State
	Intake        zaak.Intake
	Zaaktype      resolver.Resolved[zaak.ZaakType]
	ZaakID        uuid.UUID
	Zaak          zaak.Zaak
	Documents     []zaak.ZaakInformatieObject
	Configuration map[string]any

	// failures are non-fatal business errors recorded after the zaak exists.
	failures []error
	log      *logger.Logger
}

func newIngestion(configuration map[string]any, log *logger.Logger) *Ingestion {
	return &Ingestion{
		State:         StateReceived,
		Configuration: configuration,
		log:           log,
	}
}

func (in *Ingestion) transition(to State) {
	in.log.IntakeTransition(in.Intake.Identificatie, string(in.State), string(to))
	in.State = to
}

func (in *Ingestion) fail(err error) {
	in.failures = append(in.failures, err)
}

// Outcome is the result of Handle.
type Outcome struct {
	State         State
	Status        int
	Envelope      []byte
	ZaakID        uuid.UUID
	Zaak          *zaak.Zaak
	Documents     []zaak.ZaakInformatieObject
	Configuration map[string]any
	// Err is the business error reported in the envelope, if any.
	Err error
}
