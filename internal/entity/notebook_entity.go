package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id        uuid.UUID
	Title     string
	UserId    uuid.UUID
	SortOrder int
	State     LifecycleState
	TrashedAt *time.Time // set only while State == LifecycleTrashed
	CreatedAt time.Time
	UpdatedAt *time.Time
}
