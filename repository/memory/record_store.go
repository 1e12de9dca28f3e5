package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/repository"
)

// Store is an in-memory record store used in development mode and tests.
// Queries iterate in insertion order, which callers must treat as
// stable-but-unspecified, matching the durable store's contract.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]repository.Record
}

func NewStore() *Store {
	return &Store{tables: make(map[string][]repository.Record)}
}

// Seed inserts a record with a caller-chosen id, replacing any existing
// record with the same id. Intended for fixtures and dev bootstrap.
func (s *Store) Seed(table string, rec repository.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	for i := range rows {
		if rows[i].ID == rec.ID {
			rows[i] = rec.Clone()
			return
		}
	}
	s.tables[table] = append(rows, rec.Clone())
}

func (s *Store) Find(ctx context.Context, table, id string) (*repository.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.tables[table] {
		if rec.ID == id {
			clone := rec.Clone()
			return &clone, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (s *Store) Query(ctx context.Context, table string, filter repository.Filter) ([]repository.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []repository.Record
	for _, rec := range s.tables[table] {
		if matches(rec, filter) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, table string, fields map[string]interface{}) (*repository.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec := repository.Record{ID: uuid.NewString(), Fields: fields}
	clone := rec.Clone()
	s.mu.Lock()
	s.tables[table] = append(s.tables[table], clone)
	s.mu.Unlock()
	result := clone.Clone()
	return &result, nil
}

func (s *Store) Update(ctx context.Context, table, id string, fields map[string]interface{}) (*repository.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	for i := range rows {
		if rows[i].ID != id {
			continue
		}
		updated := rows[i].Clone()
		for k, v := range fields {
			updated.Fields[k] = v
		}
		rows[i] = updated
		clone := updated.Clone()
		return &clone, nil
	}
	return nil, domain.ErrRecordNotFound
}

func (s *Store) Destroy(ctx context.Context, table, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	for i := range rows {
		if rows[i].ID == id {
			s.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

// matches applies the flat filter: link fields match by containment, scalar
// fields by string equality.
func matches(rec repository.Record, filter repository.Filter) bool {
	for key, want := range filter {
		wanted := fmt.Sprint(want)
		if refs := rec.Strings(key); len(refs) > 0 {
			if !contains(refs, wanted) {
				return false
			}
			continue
		}
		if fmt.Sprint(rec.Fields[key]) != wanted {
			return false
		}
	}
	return true
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

var _ repository.RecordStore = (*Store)(nil)
