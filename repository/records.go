package repository

import (
	"context"
	"fmt"
)

// Logical table names in the record store.
const (
	TableContacts       = "contacts"
	TableParticipations = "participations"
	TableCohorts        = "cohorts"
	TableInitiatives    = "initiatives"
	TableTeams          = "teams"
	TableMembers        = "members"
	TableInvites        = "invites"
	TableMilestones     = "milestones"
	TableSubmissions    = "submissions"
)

// Field names shared between mappers and filters.
const (
	FieldContact  = "contact"
	FieldCohort   = "cohort"
	FieldTeam     = "team"
	FieldMember   = "member"
	FieldStatus   = "status"
	FieldCapacity = "capacity"
)

// Record is one entry in a named table: an opaque id plus loosely typed
// fields. Link fields hold other records' ids and are denormalized on both
// ends of a relation; the store enforces no referential integrity.
type Record struct {
	ID     string
	Fields map[string]interface{}
}

// String returns the field as a string, or empty when absent or not a string.
func (r Record) String(key string) string {
	switch v := r.Fields[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

// Strings returns the field as a string slice. Link fields arrive as
// []string, as []interface{} after JSON decoding, or occasionally as a bare
// string; all three shapes normalize to a slice.
func (r Record) Strings(key string) []string {
	switch v := r.Fields[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Bool returns the field as a bool, tolerating the string forms upstream data
// entry produces.
func (r Record) Bool(key string) bool {
	switch v := r.Fields[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "True" || v == "checked"
	default:
		return false
	}
}

// Clone deep-copies the record so callers can mutate fields safely.
func (r Record) Clone() Record {
	fields := make(map[string]interface{}, len(r.Fields))
	for k, v := range r.Fields {
		switch value := v.(type) {
		case []string:
			fields[k] = append([]string(nil), value...)
		case []interface{}:
			fields[k] = append([]interface{}(nil), value...)
		default:
			fields[k] = v
		}
	}
	return Record{ID: r.ID, Fields: fields}
}

// Filter is a flat field match: a scalar field matches by equality, a link
// field matches when it contains the value. The filter language cannot
// express joins; traversing a link means fetching the other record.
type Filter map[string]interface{}

func (f Filter) String() string {
	return fmt.Sprintf("%v", map[string]interface{}(f))
}

// RecordStore is the generic relational-table API. Updates merge fields into
// the existing record; there are no multi-record transactions and link-field
// updates become visible eventually on both endpoints of a relation.
type RecordStore interface {
	Find(ctx context.Context, table, id string) (*Record, error)
	Query(ctx context.Context, table string, filter Filter) ([]Record, error)
	Create(ctx context.Context, table string, fields map[string]interface{}) (*Record, error)
	Update(ctx context.Context, table, id string, fields map[string]interface{}) (*Record, error)
	Destroy(ctx context.Context, table, id string) error
}
