package model

import (
	"time"

	"github.com/google/uuid"
)

type Notebook struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string     `gorm:"type:varchar(255);not null"`
	UserId         uuid.UUID  `gorm:"type:uuid;not null;index"`
	SortOrder      int        `gorm:"not null;default:0"`
	LifecycleState string     `gorm:"type:varchar(16);not null;default:'active';index"`
	TrashedAt      *time.Time `gorm:"index"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (Notebook) TableName() string {
	return "notebooks"
}
