package service

import (
	"context"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/resolver"
	"simxml_zgw_backend/internal/zaak"
)

// reconcileZaaktype resolves the zaaktype by identificatie, creating it when
// absent. An existing zaaktype is never updated from the inbound payload
// apart from growing its association sets.
func (s *Service) reconcileZaaktype(ctx context.Context, ing *Ingestion) error {
	in := ing.Intake.Zaaktype
	zt, err := resolver.ResolveOrCreate(ctx, s.resolver, zaak.SchemaZaakType,
		map[string]string{"identificatie": in.Identificatie},
		func() zaak.ZaakType {
			return zaak.ZaakType{
				Identificatie: in.Identificatie,
				Omschrijving:  in.Omschrijving,
				Eigenschappen: []uuid.UUID{},
				Roltypen:      []uuid.UUID{},
			}
		})
	if err != nil {
		return err
	}
	ing.Intake.ResolvedZaaktype = zt.ID()

	eigenschappen, err := s.reconcileEigenschappen(ctx, &ing.Intake, zt.ID())
	if err != nil {
		return err
	}
	roltypen, err := s.reconcileRoltypen(ctx, &ing.Intake, zt.ID())
	if err != nil {
		return err
	}

	addedEigenschappen := union(&zt.Value.Eigenschappen, eigenschappen)
	addedRoltypen := union(&zt.Value.Roltypen, roltypen)
	if addedEigenschappen || addedRoltypen {
		rec, err := s.resolver.Update(ctx, zt.Record, zt.Value)
		if err != nil {
			return err
		}
		zt.Record = rec
	}

	ing.Zaaktype = zt
	return nil
}

// union appends the ids of add missing from set, keeping order. Reports
// whether set changed.
func union(set *[]uuid.UUID, add []uuid.UUID) bool {
	present := make(map[uuid.UUID]struct{}, len(*set))
	for _, id := range *set {
		present[id] = struct{}{}
	}
	changed := false
	for _, id := range add {
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		*set = append(*set, id)
		changed = true
	}
	return changed
}
