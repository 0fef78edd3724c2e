package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// StateRepository holds short-lived OAuth state nonces so the callback can
// reject requests that did not originate from our login redirect.
type StateRepository struct {
	cache *cache.Cache
}

func NewStateRepository() *StateRepository {
	// states are only valid for the duration of one login round trip
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &StateRepository{
		cache: c,
	}
}

func (r *StateRepository) Save(state string) {
	r.cache.Set(state, struct{}{}, cache.DefaultExpiration)
}

// Consume returns true if the state was issued by us and removes it, so a
// state can be redeemed at most once.
func (r *StateRepository) Consume(state string) bool {
	if _, found := r.cache.Get(state); !found {
		return false
	}
	r.cache.Delete(state)
	return true
}
