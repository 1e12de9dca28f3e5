package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/internal/infrastructure/journal"
	"github.com/campusboard/backend/usecase"
)

// JournalRecorder bridges the use-case journal port to the BoltDB store.
type JournalRecorder struct {
	store  *journal.Store
	logger *zap.Logger
}

func NewJournalRecorder(store *journal.Store, logger *zap.Logger) *JournalRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalRecorder{store: store, logger: logger}
}

func (r *JournalRecorder) Record(ctx context.Context, record domain.OperationRecord) error {
	if r.store == nil {
		return domain.ErrInvalidPayload
	}
	entry := journal.Entry{
		ContactID: record.ContactID,
		Operation: record.Operation,
		Targets:   record.Targets,
		Updated:   record.Updated,
		Failures:  record.Failures,
	}
	return r.store.Append(entry)
}

var _ usecase.OperationJournal = (*JournalRecorder)(nil)
