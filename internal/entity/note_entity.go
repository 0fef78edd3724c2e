package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note has no trashed state of its own: deletion is immediate and permanent.
// A note under a trashed notebook keeps its stored state and is hidden by
// the parent's state until the notebook is restored.
type Note struct {
	Id         uuid.UUID
	Title      string
	Content    string
	NotebookId uuid.UUID
	UserId     uuid.UUID
	SortOrder  int
	State      LifecycleState
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
