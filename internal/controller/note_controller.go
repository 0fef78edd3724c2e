package controller

import (
	"notevault-be/internal/autosave"
	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/pkg/serverutils"
	"notevault-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	GetByNotebook(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	SaveContent(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	BulkArchive(ctx *fiber.Ctx) error
	BulkDelete(ctx *fiber.Ctx) error
}

type noteController struct {
	service   service.INoteService
	debouncer *autosave.Debouncer
	jwt       fiber.Handler
}

func NewNoteController(service service.INoteService, debouncer *autosave.Debouncer, jwt fiber.Handler) INoteController {
	return &noteController{
		service:   service,
		debouncer: debouncer,
		jwt:       jwt,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(c.jwt)
	h.Get("", c.GetByNotebook)
	h.Post("", c.Create)
	h.Post("/bulk-archive", c.BulkArchive)
	h.Post("/bulk-delete", c.BulkDelete)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Patch(":id/content", c.SaveContent)
	h.Post(":id/archive", c.Archive)
	h.Post(":id/restore", c.Restore)
	h.Delete(":id", c.Delete)
}

func (c *noteController) GetByNotebook(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	notebookId, _ := uuid.Parse(ctx.Query("notebook_id"))

	view := entity.LifecycleState(ctx.Query("view", string(entity.LifecycleActive)))

	res, err := c.service.ListByNotebook(ctx.Context(), userId, notebookId, view)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get notes", res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

// SaveContent is the editor's autosave path. The write is debounced, so the
// handler acknowledges the payload without waiting for the database; the
// note must exist and be visible to the caller for the queue to accept it.
func (c *noteController) SaveContent(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.AutosaveNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if _, err := c.service.Show(ctx.Context(), userId, id); err != nil {
		return err
	}

	c.debouncer.Queue(userId, &req)

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Autosave queued", nil))
}

func (c *noteController) Archive(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Archive(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success archive note", res))
}

func (c *noteController) Restore(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.service.Restore(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success restore note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	// Settle any pending autosave now so its timer cannot fire after the
	// row is gone.
	c.debouncer.Flush(id)

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

func (c *noteController) BulkArchive(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.BulkNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.BulkArchive(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success archive notes", nil))
}

func (c *noteController) BulkDelete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.BulkNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.BulkDelete(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete notes", nil))
}
