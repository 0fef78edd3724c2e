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

// INotebookService owns the notebook side of the lifecycle state machine:
// active -> archived -> trashed -> gone, with restore transitions. Trashing
// hides child notes by parentage; only permanent delete cascades to them.
type INotebookService interface {
	ListActive(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error)
	ListArchived(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error)
	ListTrashed(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error)
	Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderNotebookRequest) (*dto.NotebookResponse, error)
	Archive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error)
	Trash(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error)
	Restore(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error)
	PermanentlyDelete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type notebookService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) INotebookService {
	return &notebookService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (c *notebookService) ListActive(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByLifecycleState{State: entity.LifecycleActive},
		specification.OrderBySortOrderAndTitle{},
	)
	if err != nil {
		return nil, err
	}
	return dto.NewNotebookResponses(notebooks), nil
}

func (c *notebookService) ListArchived(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByLifecycleState{State: entity.LifecycleArchived},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return dto.NewNotebookResponses(notebooks), nil
}

func (c *notebookService) ListTrashed(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByLifecycleState{State: entity.LifecycleTrashed},
		specification.OrderBy{Field: "trashed_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return dto.NewNotebookResponses(notebooks), nil
}

func (c *notebookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validationf("notebook title must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Append-to-end: new notebooks sort after the owner's existing active ones.
	count, err := uow.NotebookRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByLifecycleState{State: entity.LifecycleActive},
	)
	if err != nil {
		return nil, err
	}

	notebook := entity.Notebook{
		Id:        uuid.New(),
		Title:     title,
		UserId:    userId,
		SortOrder: int(count),
		State:     entity.LifecycleActive,
		CreatedAt: time.Now(),
	}

	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, err
	}

	c.publish(ctx, "NOTEBOOK_CREATED", &notebook)
	return dto.NewNotebookResponse(&notebook), nil
}

func (c *notebookService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return dto.NewNotebookResponse(notebook), nil
}

func (c *notebookService) Rename(ctx context.Context, userId uuid.UUID, req *dto.UpdateNotebookRequest) (*dto.NotebookResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validationf("notebook title must not be empty")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	notebook.Title = title
	c.touch(notebook)
	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, err
	}

	return dto.NewNotebookResponse(notebook), nil
}

func (c *notebookService) Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderNotebookRequest) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	notebook.SortOrder = req.SortOrder
	c.touch(notebook)
	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, err
	}

	return dto.NewNotebookResponse(notebook), nil
}

func (c *notebookService) Archive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if notebook.State == entity.LifecycleArchived {
		return dto.NewNotebookResponse(notebook), nil // idempotent
	}
	if notebook.State == entity.LifecycleTrashed {
		return nil, apperror.Preconditionf("cannot archive a trashed notebook")
	}

	// Archiving a notebook does not touch its notes.
	notebook.State = entity.LifecycleArchived
	c.touch(notebook)
	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, err
	}

	c.publish(ctx, "NOTEBOOK_ARCHIVED", notebook)
	return dto.NewNotebookResponse(notebook), nil
}

func (c *notebookService) Trash(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if notebook.State == entity.LifecycleTrashed {
		return dto.NewNotebookResponse(notebook), nil // idempotent
	}

	// Child notes keep their stored state; the parent's trashed state hides
	// them from every listing until restore.
	now := time.Now()
	notebook.State = entity.LifecycleTrashed
	notebook.TrashedAt = &now
	c.touch(notebook)
	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, err
	}

	c.publish(ctx, "NOTEBOOK_TRASHED", notebook)
	return dto.NewNotebookResponse(notebook), nil
}

func (c *notebookService) Restore(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if notebook.State == entity.LifecycleActive {
		return dto.NewNotebookResponse(notebook), nil // idempotent
	}

	// Restore from trash always lands on active; the pre-trash
	// archived/active distinction is not preserved.
	notebook.State = entity.LifecycleActive
	notebook.TrashedAt = nil
	c.touch(notebook)
	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, err
	}

	c.publish(ctx, "NOTEBOOK_RESTORED", notebook)
	return dto.NewNotebookResponse(notebook), nil
}

func (c *notebookService) PermanentlyDelete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notebook, err := c.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if notebook.State != entity.LifecycleTrashed {
		return apperror.Preconditionf("notebook must be trashed before permanent deletion")
	}

	// Notebook and every descendant note go together or not at all.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().DeleteAllByNotebookId(ctx, id); err != nil {
		return err
	}
	if err := uow.NotebookRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	c.publish(ctx, "NOTEBOOK_DELETED", notebook)
	return nil
}

func (c *notebookService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Notebook, error) {
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

func (c *notebookService) touch(n *entity.Notebook) {
	now := time.Now()
	n.UpdatedAt = &now
}

func (c *notebookService) publish(ctx context.Context, eventType string, n *entity.Notebook) {
	if c.publisherService == nil {
		return
	}
	msg := dto.LifecycleEventMessage{
		EventType:  eventType,
		EntityKind: "notebook",
		EntityId:   n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		OccurredAt: time.Now(),
	}
	// Notifications are auxiliary; a publish failure never fails the request.
	if err := c.publisherService.PublishLifecycle(ctx, msg); err != nil {
		c.logger.Warn("NotebookService", "Failed to publish lifecycle event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
