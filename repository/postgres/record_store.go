package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/repository"
)

type recordStore struct {
	pool *pgxpool.Pool
}

// NewRecordStore instantiates the Postgres-backed generic record store. Every
// logical table lives in one physical table keyed by (table_name, id) with a
// JSONB fields column, so link fields stay denormalized exactly as stored.
func NewRecordStore(pool *pgxpool.Pool) repository.RecordStore {
	return &recordStore{pool: pool}
}

func (s *recordStore) Find(ctx context.Context, table, id string) (*repository.Record, error) {
	const query = `
		SELECT fields
		FROM records
		WHERE table_name = $1 AND id = $2
	`
	row := s.pool.QueryRow(ctx, query, table, id)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return decodeRecord(id, raw)
}

func (s *recordStore) Query(ctx context.Context, table string, filter repository.Filter) ([]repository.Record, error) {
	query, args, err := buildQuery(table, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []repository.Record
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		rec, err := decodeRecord(id, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *recordStore) Create(ctx context.Context, table string, fields map[string]interface{}) (*repository.Record, error) {
	raw, err := marshalFields(fields)
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO records (table_name, id, fields)
		VALUES ($1, $2, $3)
		RETURNING fields
	`
	id := uuid.NewString()
	row := s.pool.QueryRow(ctx, query, table, id, raw)

	var stored []byte
	if err := row.Scan(&stored); err != nil {
		return nil, err
	}
	return decodeRecord(id, stored)
}

func (s *recordStore) Update(ctx context.Context, table, id string, fields map[string]interface{}) (*repository.Record, error) {
	raw, err := marshalFields(fields)
	if err != nil {
		return nil, err
	}

	const query = `
		UPDATE records
		SET fields = fields || $3::jsonb, updated_at = NOW()
		WHERE table_name = $1 AND id = $2
		RETURNING fields
	`
	row := s.pool.QueryRow(ctx, query, table, id, raw)

	var stored []byte
	if err := row.Scan(&stored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return decodeRecord(id, stored)
}

func (s *recordStore) Destroy(ctx context.Context, table, id string) error {
	const query = `
		DELETE FROM records
		WHERE table_name = $1 AND id = $2
	`
	tag, err := s.pool.Exec(ctx, query, table, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// buildQuery renders the flat filter as JSONB predicates. A containment check
// against both the scalar and the single-element array form covers scalar
// equality and link-field membership with one clause; the store offers
// nothing richer, which is why relationship traversal filters in-process.
func buildQuery(table string, filter repository.Filter) (string, []interface{}, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, fields FROM records WHERE table_name = $1`)
	args := []interface{}{table}

	for key, value := range filter {
		scalar, err := json.Marshal(value)
		if err != nil {
			return "", nil, err
		}
		wrapped, err := json.Marshal([]interface{}{value})
		if err != nil {
			return "", nil, err
		}
		args = append(args, key, string(scalar), string(wrapped))
		n := len(args)
		fmt.Fprintf(&sb, " AND (fields->$%d::text @> $%d::jsonb OR fields->$%d::text @> $%d::jsonb)", n-2, n-1, n-2, n)
	}

	// Insertion order is the only ordering the store promises; callers treat
	// it as stable-but-unspecified.
	sb.WriteString(" ORDER BY created_at, id")
	return sb.String(), args, nil
}

func decodeRecord(id string, raw []byte) (*repository.Record, error) {
	fields := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
	}
	return &repository.Record{ID: id, Fields: fields}, nil
}

func marshalFields(fields map[string]interface{}) ([]byte, error) {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return json.Marshal(fields)
}
