package contract

import (
	"context"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error // hard delete
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Batch operations run as a single statement so the whole batch
	// succeeds or fails at the store, never row by row.
	ArchiveAllByIds(ctx context.Context, userId uuid.UUID, ids []uuid.UUID) error
	DeleteAllByIds(ctx context.Context, userId uuid.UUID, ids []uuid.UUID) error
	DeleteAllByNotebookId(ctx context.Context, notebookId uuid.UUID) error
}
