package searchindex

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"simxml_zgw_backend/internal/objectstore"
)

// Redis keeps the index in Redis:
//
//	<prefix>:seq                              insertion counter
//	<prefix>:ord:<schema>                     sorted set of ids by first index
//	<prefix>:fields:<id>                      hash of indexed field values
//	<prefix>:idx:<schema>:<field>:<value>     set of ids with that value
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed index. Keys are namespaced by prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "zgw"
	}
	return &Redis{client: client, prefix: prefix}
}

var _ Index = (*Redis)(nil)

func (r *Redis) seqKey() string                { return r.prefix + ":seq" }
func (r *Redis) orderKey(schema string) string { return r.prefix + ":ord:" + schema }
func (r *Redis) fieldsKey(id uuid.UUID) string { return r.prefix + ":fields:" + id.String() }
func (r *Redis) valueKey(schema, field, value string) string {
	return r.prefix + ":idx:" + schema + ":" + field + ":" + value
}

func (r *Redis) Index(ctx context.Context, rec objectstore.Record) error {
	fields, err := Fields(rec.Data)
	if err != nil {
		return err
	}

	id := rec.ID.String()
	previous, err := r.client.HGetAll(ctx, r.fieldsKey(rec.ID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("load indexed fields: %w", err)
	}

	var seq int64
	if len(previous) == 0 {
		if seq, err = r.client.Incr(ctx, r.seqKey()).Result(); err != nil {
			return fmt.Errorf("allocate index sequence: %w", err)
		}
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for field, value := range previous {
			pipe.SRem(ctx, r.valueKey(rec.Schema, field, value), id)
		}
		pipe.Del(ctx, r.fieldsKey(rec.ID))
		for field, value := range fields {
			pipe.SAdd(ctx, r.valueKey(rec.Schema, field, value), id)
		}
		if len(fields) > 0 {
			values := make([]any, 0, len(fields)*2)
			for field, value := range fields {
				values = append(values, field, value)
			}
			pipe.HSet(ctx, r.fieldsKey(rec.ID), values...)
		}
		if seq > 0 {
			pipe.ZAddNX(ctx, r.orderKey(rec.Schema), redis.Z{Score: float64(seq), Member: id})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("index record: %w", err)
	}
	return nil
}

func (r *Redis) Search(ctx context.Context, schema string, filter map[string]string) ([]uuid.UUID, error) {
	if len(filter) == 0 {
		members, err := r.client.ZRange(ctx, r.orderKey(schema), 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("list index: %w", err)
		}
		return parseIDs(members)
	}

	keys := make([]string, 0, len(filter))
	for field, value := range filter {
		keys = append(keys, r.valueKey(schema, field, value))
	}
	members, err := r.client.SInter(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if len(members) == 0 {
		return []uuid.UUID{}, nil
	}

	pipe := r.client.Pipeline()
	scores := make([]*redis.FloatCmd, len(members))
	for i, m := range members {
		scores[i] = pipe.ZScore(ctx, r.orderKey(schema), m)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("order search hits: %w", err)
	}

	type hit struct {
		member string
		score  float64
	}
	hits := make([]hit, len(members))
	for i, m := range members {
		hits[i] = hit{member: m, score: scores[i].Val()}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	ordered := make([]string, len(hits))
	for i, h := range hits {
		ordered[i] = h.member
	}
	return parseIDs(ordered)
}

func parseIDs(members []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			return nil, fmt.Errorf("parse indexed id %q: %w", m, err)
		}
		out = append(out, id)
	}
	return out, nil
}
