package service

import (
	"context"

	"github.com/google/uuid"

	"simxml_zgw_backend/internal/resolver"
	"simxml_zgw_backend/internal/zaak"
)

// reconcileEigenschappen resolves every declared property, in declaration
// order, to a definition keyed by (naam, zaaktype). Returns the resolved
// definition ids.
func (s *Service) reconcileEigenschappen(ctx context.Context, in *zaak.Intake, zaaktypeID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(in.Eigenschappen))
	for i := range in.Eigenschappen {
		e := &in.Eigenschappen[i]
		def, err := resolver.ResolveOrCreate(ctx, s.resolver, zaak.SchemaEigenschap,
			map[string]string{
				"naam":     e.Eigenschap.Naam,
				"zaaktype": zaaktypeID.String(),
			},
			func() zaak.Eigenschap {
				return zaak.Eigenschap{
					Naam:      e.Eigenschap.Naam,
					Definitie: e.Eigenschap.Definitie,
					Zaaktype:  zaaktypeID,
				}
			})
		if err != nil {
			return nil, err
		}
		e.ResolvedEigenschap = def.ID()
		ids = append(ids, def.ID())
	}
	return ids, nil
}

// reconcileRoltypen resolves every declared role to a role type keyed by
// (omschrijvingGeneriek, zaaktype). Returns the resolved role type ids.
func (s *Service) reconcileRoltypen(ctx context.Context, in *zaak.Intake, zaaktypeID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(in.Rollen))
	for i := range in.Rollen {
		r := &in.Rollen[i]
		rt, err := resolver.ResolveOrCreate(ctx, s.resolver, zaak.SchemaRolType,
			map[string]string{
				"omschrijvingGeneriek": r.Roltype.OmschrijvingGeneriek,
				"zaaktype":             zaaktypeID.String(),
			},
			func() zaak.RolType {
				return zaak.RolType{
					Omschrijving:         r.Roltype.Omschrijving,
					OmschrijvingGeneriek: r.Roltype.OmschrijvingGeneriek,
					Zaaktype:             zaaktypeID,
				}
			})
		if err != nil {
			return nil, err
		}
		r.ResolvedRoltype = rt.ID()
		ids = append(ids, rt.ID())
	}
	return ids, nil
}
