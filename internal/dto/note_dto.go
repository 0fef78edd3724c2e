package dto

import (
	"time"

	"notevault-be/internal/entity"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title      string    `json:"title" validate:"required"`
	Content    string    `json:"content"`
	NotebookId uuid.UUID `json:"notebook_id" validate:"required"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// AutosaveNoteRequest is the debounced editor payload. Unlike a manual
// update, an autosave never fails validation on title: the editor may pass
// through an empty title mid-edit.
type AutosaveNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title"`
	Content string `json:"content"`
}

type BulkNoteRequest struct {
	NoteIds []uuid.UUID `json:"note_ids" validate:"required,min=1"`
}

type NoteResponse struct {
	Id         uuid.UUID             `json:"id"`
	Title      string                `json:"title"`
	Content    string                `json:"content"`
	NotebookId uuid.UUID             `json:"notebook_id"`
	SortOrder  int                   `json:"sort_order"`
	State      entity.LifecycleState `json:"lifecycle_state"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  *time.Time            `json:"updated_at"`
}

func NewNoteResponse(n *entity.Note) *NoteResponse {
	return &NoteResponse{
		Id:         n.Id,
		Title:      n.Title,
		Content:    n.Content,
		NotebookId: n.NotebookId,
		SortOrder:  n.SortOrder,
		State:      n.State,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func NewNoteResponses(notes []*entity.Note) []*NoteResponse {
	result := make([]*NoteResponse, len(notes))
	for i, n := range notes {
		result[i] = NewNoteResponse(n)
	}
	return result
}
