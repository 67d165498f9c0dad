package objectstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"simxml_zgw_backend/platform/apperr"
)

const opSave = "objectstore.Save"

// Postgres stores records in the zgw_objects table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Compile-time check that Postgres implements Store.
var _ Store = (*Postgres)(nil)

func (p *Postgres) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO zgw_objects (id, schema_ref, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data,
			updated_at = now()
		RETURNING id, schema_ref, data, created_at, updated_at`

	var out Record
	if err := p.pool.QueryRow(ctx, query, rec.ID, rec.Schema, []byte(rec.Data)).Scan(
		&out.ID, &out.Schema, &out.Data, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Record{}, apperr.Wrap(apperr.KindConflict, "object violates a unique constraint", err).
				WithOp(opSave).
				WithCode(CodeUniqueViolation)
		}
		return Record{}, fmt.Errorf("save object: %w", err)
	}
	return out, nil
}

func (p *Postgres) Find(ctx context.Context, schema string, id uuid.UUID) (Record, error) {
	query := `
		SELECT id, schema_ref, data, created_at, updated_at
		FROM zgw_objects
		WHERE id = $1 AND schema_ref = $2`

	var out Record
	if err := p.pool.QueryRow(ctx, query, id, schema).Scan(
		&out.ID, &out.Schema, &out.Data, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, NotFound(schema, id)
		}
		return Record{}, fmt.Errorf("find object: %w", err)
	}
	return out, nil
}
