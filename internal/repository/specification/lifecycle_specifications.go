package specification

import (
	"notevault-be/internal/entity"

	"gorm.io/gorm"
)

// ByLifecycleState filters notebooks or notes on the lifecycle column.
type ByLifecycleState struct {
	State entity.LifecycleState
}

func (s ByLifecycleState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lifecycle_state = ?", s.State)
}

// OrderBySortOrderAndTitle is the canonical display order: sort_order
// ascending, ties broken by title case-insensitively.
type OrderBySortOrderAndTitle struct{}

func (s OrderBySortOrderAndTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("LOWER(title) ASC")
}
