package entity

// LifecycleState is the single enumerated visibility status of a notebook
// or note. Collapsing the legacy is_archived/is_deleted flag pair into one
// enumeration makes conflicting combinations unrepresentable.
type LifecycleState string

const (
	LifecycleActive   LifecycleState = "active"
	LifecycleArchived LifecycleState = "archived"
	LifecycleTrashed  LifecycleState = "trashed"
)

func (s LifecycleState) Valid() bool {
	switch s {
	case LifecycleActive, LifecycleArchived, LifecycleTrashed:
		return true
	}
	return false
}
