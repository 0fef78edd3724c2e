package service

import (
	"context"
	"strings"
	"time"

	"notevault-be/internal/apperror"
	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// INoteService owns the note side of the lifecycle: active <-> archived,
// and immediate permanent deletion. Notes have no trash of their own; a
// note disappears from listings while its parent notebook sits in the
// trash and reappears with its stored state on restore.
type INoteService interface {
	ListByNotebook(ctx context.Context, userId, notebookId uuid.UUID, state entity.LifecycleState) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Autosave(ctx context.Context, userId uuid.UUID, req *dto.AutosaveNoteRequest) (*dto.NoteResponse, error)
	Archive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Restore(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	BulkArchive(ctx context.Context, userId uuid.UUID, req *dto.BulkNoteRequest) error
	BulkDelete(ctx context.Context, userId uuid.UUID, req *dto.BulkNoteRequest) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (c *noteService) ListByNotebook(ctx context.Context, userId, notebookId uuid.UUID, state entity.LifecycleState) ([]*dto.NoteResponse, error) {
	if state != entity.LifecycleActive && state != entity.LifecycleArchived {
		return nil, apperror.Validationf("notes have no %q view", state)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwnedNotebook(ctx, uow, userId, notebookId)
	if err != nil {
		return nil, err
	}
	// A trashed notebook never shows its notes in normal or archived views.
	if notebook.State == entity.LifecycleTrashed {
		return nil, apperror.NotFoundf("notebook %s", notebookId)
	}

	specs := []specification.Specification{
		specification.ByNotebookID{NotebookID: notebookId},
		specification.OwnedBy{UserID: userId},
		specification.ByLifecycleState{State: state},
	}
	if state == entity.LifecycleActive {
		specs = append(specs, specification.OrderBySortOrderAndTitle{})
	} else {
		specs = append(specs, specification.OrderBy{Field: "updated_at", Desc: true})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return dto.NewNoteResponses(notes), nil
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validationf("note title must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwnedNotebook(ctx, uow, userId, req.NotebookId)
	if err != nil {
		return nil, err
	}
	// Defensive: the UI only offers note creation inside an active notebook.
	if notebook.State != entity.LifecycleActive {
		return nil, apperror.Validationf("notebook %s is not active", notebook.Id)
	}

	// New notes land at the end; archived siblings keep their slots, so
	// the whole notebook counts toward the position.
	count, err := uow.NoteRepository().Count(ctx,
		specification.ByNotebookID{NotebookID: notebook.Id},
	)
	if err != nil {
		return nil, err
	}

	note := entity.Note{
		Id:         uuid.New(),
		Title:      title,
		Content:    req.Content,
		NotebookId: notebook.Id,
		UserId:     userId,
		SortOrder:  int(count),
		State:      entity.LifecycleActive,
		CreatedAt:  time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	c.publish(ctx, "NOTE_CREATED", &note)
	return dto.NewNoteResponse(&note), nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return dto.NewNoteResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validationf("note title must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = req.Content
	c.touch(note)
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return dto.NewNoteResponse(note), nil
}

// Autosave is the debounced editor write path. It tolerates an empty title
// (the editor may flush mid-edit) by keeping the stored one.
func (c *noteService) Autosave(ctx context.Context, userId uuid.UUID, req *dto.AutosaveNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		note.Title = title
	}
	note.Content = req.Content
	c.touch(note)
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return dto.NewNoteResponse(note), nil
}

func (c *noteService) Archive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if note.State == entity.LifecycleArchived {
		return dto.NewNoteResponse(note), nil // idempotent
	}

	note.State = entity.LifecycleArchived
	c.touch(note)
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	c.publish(ctx, "NOTE_ARCHIVED", note)
	return dto.NewNoteResponse(note), nil
}

func (c *noteService) Restore(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if note.State == entity.LifecycleActive {
		return dto.NewNoteResponse(note), nil // idempotent
	}

	note.State = entity.LifecycleActive
	c.touch(note)
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	c.publish(ctx, "NOTE_RESTORED", note)
	return dto.NewNoteResponse(note), nil
}

// Delete is permanent and immediate, from any state.
func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}

	c.publish(ctx, "NOTE_DELETED", note)
	return nil
}

// BulkArchive applies archive to every id in one store-level statement;
// the batch succeeds or fails as a whole.
func (c *noteService) BulkArchive(ctx context.Context, userId uuid.UUID, req *dto.BulkNoteRequest) error {
	if len(req.NoteIds) == 0 {
		return apperror.Validationf("note_ids must not be empty")
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)
	affected, err := c.findOwnedBatch(ctx, uow, userId, req.NoteIds)
	if err != nil {
		return err
	}
	if err := uow.NoteRepository().ArchiveAllByIds(ctx, userId, req.NoteIds); err != nil {
		return err
	}
	for _, note := range affected {
		if note.State == entity.LifecycleArchived {
			continue // already archived, no transition happened
		}
		c.publish(ctx, "NOTE_ARCHIVED", note)
	}
	return nil
}

func (c *noteService) BulkDelete(ctx context.Context, userId uuid.UUID, req *dto.BulkNoteRequest) error {
	if len(req.NoteIds) == 0 {
		return apperror.Validationf("note_ids must not be empty")
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)
	affected, err := c.findOwnedBatch(ctx, uow, userId, req.NoteIds)
	if err != nil {
		return err
	}
	if err := uow.NoteRepository().DeleteAllByIds(ctx, userId, req.NoteIds); err != nil {
		return err
	}
	for _, note := range affected {
		c.publish(ctx, "NOTE_DELETED", note)
	}
	return nil
}

// findOwnedBatch resolves the caller-owned subset of a batch so bulk
// transitions can announce what they actually touched.
func (c *noteService) findOwnedBatch(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, ids []uuid.UUID) ([]*entity.Note, error) {
	return uow.NoteRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.OwnedBy{UserID: userId},
	)
}

func (c *noteService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFoundf("note %s", id)
	}
	return note, nil
}

func (c *noteService) findOwnedNotebook(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Notebook, error) {
	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFoundf("notebook %s", id)
	}
	return notebook, nil
}

func (c *noteService) touch(n *entity.Note) {
	now := time.Now()
	n.UpdatedAt = &now
}

func (c *noteService) publish(ctx context.Context, eventType string, n *entity.Note) {
	if c.publisherService == nil {
		return
	}
	msg := dto.LifecycleEventMessage{
		EventType:  eventType,
		EntityKind: "note",
		EntityId:   n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		OccurredAt: time.Now(),
	}
	if err := c.publisherService.PublishLifecycle(ctx, msg); err != nil {
		c.logger.Warn("NoteService", "Failed to publish lifecycle event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
