package implementation

import (
	"context"
	"errors"

	"notevault-be/internal/apperror"
	"notevault-be/internal/entity"
	"notevault-be/internal/mapper"
	"notevault-be/internal/model"
	"notevault-be/internal/repository/contract"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Store(err)
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return apperror.Store(err)
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Note{}, id).Error; err != nil {
		return apperror.Store(err)
	}
	return nil
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Store(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.Store(err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperror.Store(err)
	}
	return count, nil
}

// ArchiveAllByIds flips the given notes to archived in one UPDATE.
func (r *NoteRepositoryImpl) ArchiveAllByIds(ctx context.Context, userId uuid.UUID, ids []uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("user_id = ? AND id IN ?", userId, ids).
		Update("lifecycle_state", entity.LifecycleArchived).Error
	if err != nil {
		return apperror.Store(err)
	}
	return nil
}

// DeleteAllByIds removes the given notes in one DELETE.
func (r *NoteRepositoryImpl) DeleteAllByIds(ctx context.Context, userId uuid.UUID, ids []uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userId, ids).
		Delete(&model.Note{}).Error
	if err != nil {
		return apperror.Store(err)
	}
	return nil
}

// DeleteAllByNotebookId removes every note of a notebook regardless of state.
// Used by the cascading permanent delete.
func (r *NoteRepositoryImpl) DeleteAllByNotebookId(ctx context.Context, notebookId uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("notebook_id = ?", notebookId).
		Delete(&model.Note{}).Error
	if err != nil {
		return apperror.Store(err)
	}
	return nil
}
