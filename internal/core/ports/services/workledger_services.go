package services

import (
	"context"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/dto"
)

// WorkLedgerSvcFacade records daily labor ("apontamentos"). Mutations are
// rejected with apperrors.ErrLocked once the entry is tied to a paid payment.
type WorkLedgerSvcFacade interface {
	RecordWork(ctx context.Context, req dto.RecordWorkRequest, actorID string) (*domain.WorkEntry, error)
	UpdateWork(ctx context.Context, workEntryID string, req dto.UpdateWorkRequest, actorID string) (*domain.WorkEntry, error)
	DeleteWork(ctx context.Context, workEntryID string, actorID string) error
	GetWorkEntry(ctx context.Context, workEntryID string) (*domain.WorkEntry, bool, error)
	ListWorkEntriesByJob(ctx context.Context, jobID string, limit int, nextToken *string) ([]domain.WorkEntry, *string, error)
}
