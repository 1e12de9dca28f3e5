package usecase

import (
	"context"

	"github.com/campusboard/backend/domain"
)

// OperationJournal abstracts the saga journal so use cases stay
// storage-agnostic. Recording is best-effort: consistency operations log a
// failed append and carry on.
type OperationJournal interface {
	Record(ctx context.Context, record domain.OperationRecord) error
}
