package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Content        string    `gorm:"type:text"`
	NotebookId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	SortOrder      int       `gorm:"not null;default:0"`
	LifecycleState string    `gorm:"type:varchar(16);not null;default:'active';index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
