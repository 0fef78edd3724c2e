package dto

import (
	"time"

	"notevault-be/internal/entity"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdateNotebookRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
}

type ReorderNotebookRequest struct {
	Id        uuid.UUID
	SortOrder int `json:"sort_order"`
}

// NotebookResponse is the full record as returned by every notebook
// operation.
type NotebookResponse struct {
	Id        uuid.UUID              `json:"id"`
	Title     string                 `json:"title"`
	SortOrder int                    `json:"sort_order"`
	State     entity.LifecycleState  `json:"lifecycle_state"`
	TrashedAt *time.Time             `json:"trashed_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt *time.Time             `json:"updated_at"`
}

func NewNotebookResponse(n *entity.Notebook) *NotebookResponse {
	return &NotebookResponse{
		Id:        n.Id,
		Title:     n.Title,
		SortOrder: n.SortOrder,
		State:     n.State,
		TrashedAt: n.TrashedAt,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func NewNotebookResponses(notebooks []*entity.Notebook) []*NotebookResponse {
	result := make([]*NotebookResponse, len(notebooks))
	for i, n := range notebooks {
		result[i] = NewNotebookResponse(n)
	}
	return result
}
